// Package bar implements the notification bar: attaching to a parent view,
// styling, constraint layout of the bar, its label and side buttons, and the
// animated show/hide lifecycle.
package bar

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/notibar/internal/button"
	"github.com/jmylchreest/notibar/internal/style"
	"github.com/jmylchreest/notibar/internal/view"
)

// Errors returned by Show and Hide.
var (
	ErrNoParent               = errors.New("parent view is nil")
	ErrUnsupportedButtonCount = errors.New("label layout supports exactly zero or two buttons")
	ErrNotShown               = errors.New("bar is not shown")
	ErrHideInProgress         = errors.New("hide already in progress")
)

// State is the lifecycle state of a bar.
type State int

const (
	StateDetached State = iota
	StateShowing
	StateShown
	StateHiding
)

func (s State) String() string {
	switch s {
	case StateDetached:
		return "detached"
	case StateShowing:
		return "showing"
	case StateShown:
		return "shown"
	case StateHiding:
		return "hiding"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// LayoutGuide is a reserved edge region of the host, such as a status line.
// The bar only reads its frame.
type LayoutGuide interface {
	view.Anchorable
}

// Constrainer builds and installs layout constraints.
type Constrainer interface {
	button.Constrainer
	FillParent(v, parent *view.View, margin int, vertically bool) []view.Constraint
	ViewsNextToEachOther(views []*view.View, container *view.View, margin int, vertically bool) []view.Constraint
	AlignVerticallyToLayoutGuide(v *view.View, onTop bool, guide view.Anchorable, container *view.View, margin int) []view.Constraint
}

// Bar is a transient notification bar overlaid on a parent view. It is
// confined to the UI thread.
type Bar struct {
	style       style.Style
	layoutGuide LayoutGuide
	delegate    button.Delegate
	constrainer Constrainer
	logger      *slog.Logger

	view    *view.View
	label   *view.View
	buttons []*button.View
	state   State

	hideQueued bool
	queuedDone func()
}

// New creates a detached bar with the given style.
func New(st style.Style, constrainer Constrainer, logger *slog.Logger) *Bar {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bar{
		style:       st,
		constrainer: constrainer,
		logger:      logger,
		view:        view.New("bar"),
	}
}

// SetLayoutGuide sets the optional guide the bar is anchored to. Nil anchors
// the bar to the parent's edge. Takes effect on the next Show.
func (b *Bar) SetLayoutGuide(g LayoutGuide) {
	b.layoutGuide = g
}

// SetDelegate sets the receiver of button taps. Required when the style has
// buttons.
func (b *Bar) SetDelegate(d button.Delegate) {
	b.delegate = d
}

// Style returns the bar style.
func (b *Bar) Style() style.Style {
	return b.style
}

// State returns the lifecycle state.
func (b *Bar) State() State {
	return b.state
}

// View returns the bar's view.
func (b *Bar) View() *view.View {
	return b.view
}

// Label returns the message label, or nil when detached.
func (b *Bar) Label() *view.View {
	return b.label
}

// Buttons returns the side buttons, left first.
func (b *Bar) Buttons() []*button.View {
	return b.buttons
}

// Show attaches the bar to parent with message and starts the show
// animation. Calling Show on a bar that is not detached does nothing.
//
// Show panics if the style has buttons but no delegate is set.
func (b *Bar) Show(parent *view.View, message string) error {
	if b.view.Superview() != nil || b.state != StateDetached {
		b.logger.Debug("bar already shown, ignoring show", "state", b.state)
		return nil
	}
	if parent == nil {
		return ErrNoParent
	}

	descriptors := b.style.ButtonStyles()
	if n := len(descriptors); n != 0 && n != 2 {
		return fmt.Errorf("%w: got %d", ErrUnsupportedButtonCount, n)
	}
	if len(descriptors) > 0 && b.delegate == nil {
		panic("bar: button delegate can not be nil")
	}

	parent.AddSubview(b.view)
	b.applyStyle()
	b.layoutBarInSuperview()

	buttons := b.createButtons(descriptors)
	b.createLabel(message, buttons)

	b.state = StateShowing
	b.logger.Debug("showing bar",
		"message_len", len(message),
		"buttons", len(buttons),
		"location_top", b.style.Bar.LocationTop,
		"layout_guide", b.layoutGuide != nil,
	)
	b.style.Bar.ShowAnimation()(b.view, b.style.Bar.AnimationShowDuration, b.style.Bar.LocationTop, b.showCompleted)
	return nil
}

func (b *Bar) showCompleted() {
	if b.state != StateShowing {
		return
	}
	b.state = StateShown
	if b.hideQueued {
		done := b.queuedDone
		b.hideQueued = false
		b.queuedDone = nil
		b.startHide(done)
	}
}

// Hide runs the hide animation; once it completes the bar is detached from
// its parent and then onAnimationCompleted is called. A hide requested while
// the show animation runs is queued until it finishes.
func (b *Bar) Hide(onAnimationCompleted func()) error {
	switch b.state {
	case StateDetached:
		return ErrNotShown
	case StateHiding:
		return ErrHideInProgress
	case StateShowing:
		if b.hideQueued {
			return ErrHideInProgress
		}
		b.hideQueued = true
		b.queuedDone = onAnimationCompleted
		b.logger.Debug("hide queued until show completes")
		return nil
	}
	b.startHide(onAnimationCompleted)
	return nil
}

func (b *Bar) startHide(onAnimationCompleted func()) {
	b.state = StateHiding
	b.style.Bar.HideAnimation()(b.view, b.style.Bar.AnimationHideDuration, b.style.Bar.LocationTop, func() {
		b.detach()
		if onAnimationCompleted != nil {
			onAnimationCompleted()
		}
	})
}

func (b *Bar) detach() {
	b.view.RemoveFromSuperview()
	b.view.RemoveAllSubviews()
	b.view.RemoveAllConstraints()
	b.label = nil
	b.buttons = nil
	b.state = StateDetached
	b.logger.Debug("bar detached")
}

// Tap handles a tap on the bar itself. When the style hides on tap, the bar
// is hidden as by Hide(onAnimationCompleted). It reports whether a hide was
// started.
func (b *Bar) Tap(onAnimationCompleted func()) bool {
	if b.state != StateShown || !b.style.Bar.HideOnTap {
		return false
	}
	return b.Hide(onAnimationCompleted) == nil
}

func (b *Bar) applyStyle() {
	bs := b.style.Bar
	b.view.Background = bs.BackgroundColor
	b.view.CornerRadius = bs.CornerRadius
	b.view.ClipsToBounds = true
	b.view.Alpha = 1
	b.view.Translation = view.Offset{}

	if bs.HasBorder() {
		b.view.BorderColor = bs.BorderColor
		b.view.BorderWidth = bs.BorderWidth
	} else {
		b.view.BorderColor = ""
		b.view.BorderWidth = 0
	}
}

// verticalMargin is the offset used to anchor the bar's edge. It is negated
// for top placement so the bar always sits inward of the anchor edge.
func (b *Bar) verticalMargin() int {
	m := b.style.Bar.MarginToSuperview.Height
	if b.style.Bar.LocationTop {
		return -m
	}
	return m
}

func (b *Bar) layoutBarInSuperview() {
	superview := b.view.Superview()
	if superview == nil {
		return
	}

	// Stretch the bar to the width of its superview
	b.constrainer.FillParent(b.view, superview, b.style.Bar.MarginToSuperview.Width, false)

	top := b.style.Bar.LocationTop
	margin := b.verticalMargin()

	if guide := b.guideWithin(superview); guide != nil {
		// Align with the edge of a reserved region (status line, header)
		b.constrainer.AlignVerticallyToLayoutGuide(b.view, top, guide, superview, margin)
		return
	}

	attr := view.AttrBottom
	if top {
		attr = view.AttrTop
	}
	b.constrainer.AlignSameAttributes(superview, b.view, superview, attr, margin)
}

// guideWithin returns the layout guide, or nil when it is a view that is
// not part of superview's tree. The solver cannot place such a view, so the
// bar falls back to the superview's edge.
func (b *Bar) guideWithin(superview *view.View) LayoutGuide {
	if v, ok := b.layoutGuide.(*view.View); ok {
		if v == nil || !v.IsDescendant(superview) {
			b.logger.Debug("layout guide not in tree, using superview edge", "guide", guideName(v))
			return nil
		}
	}
	return b.layoutGuide
}

func guideName(v *view.View) string {
	if v == nil {
		return ""
	}
	return v.Name
}

func (b *Bar) createButtons(descriptors []*button.Style) []*button.View {
	buttons := button.CreateMany(descriptors)
	for i, btn := range buttons {
		b.view.AddSubview(btn.View())
		btn.SetDelegate(b.delegate)
		btn.DoLayout(i == 0, b.constrainer)

		if b.style.Bar.DebugMode {
			btn.View().Background = style.DebugButtonColor
		}
	}
	b.buttons = buttons
	return buttons
}

func (b *Bar) createLabel(message string, buttons []*button.View) {
	ls := b.style.Label
	label := view.NewLabel("label", message)
	label.Foreground = ls.Color
	label.TextAlign = lipgloss.Center
	label.NumberOfLines = ls.NumberOfLines
	label.Bold = ls.Bold
	label.Italic = ls.Italic

	if b.style.Bar.DebugMode {
		label.Background = style.DebugLabelColor
	}
	if ls.ShadowColor != "" {
		label.ShadowColor = ls.ShadowColor
		label.ShadowOffset = ls.ShadowOffset
	}

	b.view.AddSubview(label)
	b.label = label
	b.layoutLabel(label, buttons)
}

func (b *Bar) layoutLabel(label *view.View, buttons []*button.View) {
	margin := b.style.Label.HorizontalMargin

	// Stretch the label vertically
	b.constrainer.FillParent(label, b.view, margin, true)

	superview := b.view.Superview()
	if superview == nil {
		return
	}

	if len(buttons) == 0 {
		// Without buttons the label may use the full width of the parent
		b.constrainer.FillParent(label, superview, margin, false)
		return
	}

	views := []*view.View{buttons[0].View(), label, buttons[1].View()}
	b.constrainer.ViewsNextToEachOther(views, superview, margin, false)
}
