// Package notifier is the host-facing entry point for notification bars. It
// owns at most one visible bar at a time, replaces it when a new message
// arrives, and records each bar in the history.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jmylchreest/notibar/internal/animation"
	"github.com/jmylchreest/notibar/internal/bar"
	"github.com/jmylchreest/notibar/internal/button"
	"github.com/jmylchreest/notibar/internal/history"
	"github.com/jmylchreest/notibar/internal/layout"
	"github.com/jmylchreest/notibar/internal/style"
	"github.com/jmylchreest/notibar/internal/view"
)

// SoundPlayer plays the sound configured for a preset.
type SoundPlayer interface {
	PlayPreset(p style.Preset) error
}

// Options configures a Notifier. All fields are optional.
type Options struct {
	Style    style.Style
	Animator *animation.Animator // Stepped by Tick
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Sound    SoundPlayer
	History  *history.Store
	Source   string           // Recorded with history entries
	Now      func() time.Time // Clock for auto-hide; defaults to time.Now
}

type request struct {
	message string
	preset  style.Preset
}

// active is the bar currently attached to the host.
type active struct {
	bar     *bar.Bar
	preset  style.Preset
	entryID string
	span    trace.Span
	hideAt  time.Time // zero when not auto-hiding
}

// Notifier shows notification bars on a host view. It is confined to the UI
// goroutine, like the views it manages.
type Notifier struct {
	host     *view.View
	style    style.Style
	guide    bar.LayoutGuide
	animator *animation.Animator
	logger   *slog.Logger
	tracer   trace.Tracer
	sound    SoundPlayer
	history  *history.Store
	source   string
	now      func() time.Time

	current *active
	pending *request
}

// New creates a Notifier that attaches bars to host.
func New(host *view.View, opts Options) *Notifier {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer("notibar")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Notifier{
		host:     host,
		style:    opts.Style,
		animator: opts.Animator,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
		sound:    opts.Sound,
		history:  opts.History,
		source:   opts.Source,
		now:      opts.Now,
	}
}

// Style returns the base style for new bars.
func (n *Notifier) Style() style.Style {
	return n.style
}

// SetStyle replaces the base style. A visible bar keeps its style.
func (n *Notifier) SetStyle(st style.Style) {
	n.style = st
}

// SetLayoutGuide anchors future bars to g instead of the host's edge.
func (n *Notifier) SetLayoutGuide(g bar.LayoutGuide) {
	n.guide = g
}

// RemoveLayoutGuide anchors future bars to the host's edge again.
func (n *Notifier) RemoveLayoutGuide() {
	n.guide = nil
}

// LayoutGuide returns the current guide, or nil.
func (n *Notifier) LayoutGuide() bar.LayoutGuide {
	return n.guide
}

// Visible reports whether a bar is attached.
func (n *Notifier) Visible() bool {
	return n.current != nil
}

// Bar returns the attached bar, or nil.
func (n *Notifier) Bar() *bar.Bar {
	if n.current == nil {
		return nil
	}
	return n.current.bar
}

// Show displays message with the base style.
func (n *Notifier) Show(message string) error {
	return n.ShowPreset(message, style.PresetDefault)
}

// Info displays message with the info preset.
func (n *Notifier) Info(message string) error {
	return n.ShowPreset(message, style.PresetInfo)
}

// Success displays message with the success preset.
func (n *Notifier) Success(message string) error {
	return n.ShowPreset(message, style.PresetSuccess)
}

// Warning displays message with the warning preset.
func (n *Notifier) Warning(message string) error {
	return n.ShowPreset(message, style.PresetWarning)
}

// Error displays message with the error preset.
func (n *Notifier) Error(message string) error {
	return n.ShowPreset(message, style.PresetError)
}

// ShowPreset displays message with preset applied to the base style. A bar
// that is already visible is hidden first; the new bar appears once the hide
// animation completes. Only the latest waiting message is kept.
func (n *Notifier) ShowPreset(message string, preset style.Preset) error {
	if n.current == nil {
		return n.present(message, preset)
	}

	n.pending = &request{message: message, preset: preset}
	n.logger.Debug("replacing visible bar", "state", n.current.bar.State())

	err := n.hideCurrent()
	if errors.Is(err, bar.ErrHideInProgress) {
		// The running hide will present the pending request
		return nil
	}
	return err
}

// Hide hides the visible bar and drops any message waiting to replace it.
func (n *Notifier) Hide() error {
	n.pending = nil
	if n.current == nil {
		return bar.ErrNotShown
	}
	if err := n.hideCurrent(); err != nil && !errors.Is(err, bar.ErrHideInProgress) {
		return err
	}
	return nil
}

// Tap forwards a tap on the bar itself. It reports whether the tap hid the
// bar.
func (n *Notifier) Tap() bool {
	a := n.current
	if a == nil {
		return false
	}
	return a.bar.Tap(func() { n.hidden(a) })
}

// TapButton taps the left (0) or right (1) button of the visible bar.
func (n *Notifier) TapButton(index int) bool {
	if n.current == nil {
		return false
	}
	buttons := n.current.bar.Buttons()
	if index < 0 || index >= len(buttons) {
		return false
	}
	buttons[index].Tap()
	return true
}

// ButtonTapped runs the button's action and hides the bar when the button
// asks for it. Buttons of a bar that is no longer current never hide the
// current one.
func (n *Notifier) ButtonTapped(b *button.View) {
	st := b.Style()
	n.logger.Debug("button tapped", "button", b.View().Name, "label", st.AccessibilityLabel)

	if st.OnTap != nil {
		st.OnTap()
	}
	if !st.HideOnTap {
		return
	}
	if n.current == nil || !slices.Contains(n.current.bar.Buttons(), b) {
		n.logger.Debug("hide on tap ignored, button is not on the visible bar")
		return
	}
	if err := n.hideCurrent(); err != nil {
		n.logger.Debug("hide on tap ignored", "error", err)
	}
}

// Tick advances animations and fires auto-hide timers. Call it from the UI
// loop for every frame.
func (n *Notifier) Tick(now time.Time) {
	if n.animator != nil {
		n.animator.Step(now)
	}

	a := n.current
	if a == nil || a.hideAt.IsZero() || now.Before(a.hideAt) {
		return
	}
	if a.bar.State() != bar.StateShown {
		return
	}
	a.hideAt = time.Time{}
	n.logger.Debug("auto-hiding bar", "entry", a.entryID)
	if err := n.hideCurrent(); err != nil {
		n.logger.Warn("auto-hide failed", "error", err)
	}
}

// Active reports whether Tick has work to do: a running animation or a
// pending auto-hide.
func (n *Notifier) Active() bool {
	if n.animator != nil && n.animator.Running() {
		return true
	}
	return n.current != nil && !n.current.hideAt.IsZero()
}

func (n *Notifier) present(message string, preset style.Preset) error {
	st := preset.Apply(n.style)

	b := bar.New(st, layout.Builder{}, n.logger)
	b.SetLayoutGuide(n.guide)
	b.SetDelegate(n)

	_, span := n.tracer.Start(context.Background(), "notibar.show",
		trace.WithAttributes(
			attribute.String("notibar.preset", string(preset)),
			attribute.Int("notibar.message.length", len(message)),
			attribute.Bool("notibar.location.top", st.Bar.LocationTop),
			attribute.Int("notibar.buttons", len(st.ButtonStyles())),
		),
	)

	a := &active{bar: b, preset: preset, span: span}
	n.current = a
	if err := b.Show(n.host, message); err != nil {
		n.current = nil
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return fmt.Errorf("show bar: %w", err)
	}

	if d := st.Bar.HideAfterDelay; d > 0 {
		a.hideAt = n.now().Add(d)
	}

	n.record(a, message)
	if n.sound != nil {
		if err := n.sound.PlayPreset(preset); err != nil {
			n.logger.Warn("failed to play sound", "preset", preset, "error", err)
		}
	}

	n.logger.Info("notification shown", "preset", preset, "entry", a.entryID)
	return nil
}

func (n *Notifier) record(a *active, message string) {
	if n.history == nil {
		return
	}
	e, err := history.NewEntry(message, string(a.preset), n.source)
	if err != nil {
		n.logger.Warn("failed to create history entry", "error", err)
		return
	}
	if err := n.history.Add(e); err != nil {
		n.logger.Warn("failed to record history", "error", err)
		return
	}
	a.entryID = e.ID
	a.span.SetAttributes(attribute.String("notibar.entry.id", e.ID))
}

func (n *Notifier) hideCurrent() error {
	a := n.current
	a.hideAt = time.Time{}
	return a.bar.Hide(func() { n.hidden(a) })
}

// hidden runs once a's hide animation has completed and its bar is
// detached.
func (n *Notifier) hidden(a *active) {
	if n.current == a {
		n.current = nil
	}

	if n.history != nil && a.entryID != "" {
		if err := n.history.MarkHidden(a.entryID, n.now()); err != nil {
			n.logger.Warn("failed to update history", "entry", a.entryID, "error", err)
		}
	}
	a.span.AddEvent("hidden")
	a.span.End()
	n.logger.Debug("notification hidden", "entry", a.entryID)

	if p := n.pending; p != nil {
		n.pending = nil
		if err := n.present(p.message, p.preset); err != nil {
			n.logger.Error("failed to show queued notification", "error", err)
		}
	}
}
