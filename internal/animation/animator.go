// Package animation provides frame-driven show and hide animations for
// views. An Animator is stepped from the UI loop; completions fire inside
// Step on the same goroutine.
package animation

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jmylchreest/notibar/internal/style"
	"github.com/jmylchreest/notibar/internal/view"
)

// Kind names an animation in configuration.
type Kind string

const (
	KindNone            Kind = "none"
	KindSlideVertically Kind = "slide-vertically"
	KindSlideLeft       Kind = "slide-left"
	KindSlideRight      Kind = "slide-right"
	KindFade            Kind = "fade"
)

// ValidKinds returns all animation kinds.
func ValidKinds() []Kind {
	return []Kind{KindNone, KindSlideVertically, KindSlideLeft, KindSlideRight, KindFade}
}

// ParseKind converts a config name into a Kind. Empty means none.
func ParseKind(name string) (Kind, error) {
	if name == "" {
		return KindNone, nil
	}
	k := Kind(strings.ToLower(name))
	for _, valid := range ValidKinds() {
		if k == valid {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("invalid animation %q, must be one of: %v", name, ValidKinds())
}

// applyFunc sets the view's animated properties for progress in [0, 1].
type applyFunc func(v *view.View, progress float64)

type running struct {
	view      *view.View
	duration  time.Duration
	start     time.Time
	started   bool
	apply     applyFunc
	completed func()
}

// Animator advances running animations. It is not safe for concurrent use.
type Animator struct {
	logger  *slog.Logger
	running []*running
}

// New creates an Animator.
func New(logger *slog.Logger) *Animator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Animator{logger: logger}
}

// Running reports whether any animation is in progress.
func (a *Animator) Running() bool {
	return len(a.running) > 0
}

// Step advances every animation to now. The first step of an animation
// marks its start. Completions run after all animations have been advanced
// and may start new animations.
func (a *Animator) Step(now time.Time) {
	if len(a.running) == 0 {
		return
	}

	var done []*running
	kept := a.running[:0]
	for _, r := range a.running {
		if !r.started {
			r.start = now
			r.started = true
		}
		p := 1.0
		if r.duration > 0 {
			p = math.Min(float64(now.Sub(r.start))/float64(r.duration), 1)
		}
		r.apply(r.view, easeOutCubic(p))
		if p >= 1 {
			done = append(done, r)
			continue
		}
		kept = append(kept, r)
	}
	a.running = kept

	for _, r := range done {
		if r.completed != nil {
			r.completed()
		}
	}
}

// Finish completes every running animation immediately.
func (a *Animator) Finish() {
	for a.Running() {
		pending := a.running
		a.running = nil
		for _, r := range pending {
			r.apply(r.view, 1)
			if r.completed != nil {
				r.completed()
			}
		}
	}
}

func (a *Animator) start(v *view.View, d time.Duration, apply applyFunc, completed func()) {
	apply(v, 0)
	a.running = append(a.running, &running{
		view:      v,
		duration:  d,
		apply:     apply,
		completed: completed,
	})
	a.logger.Debug("animation started", "view", v.Name, "duration", d)
}

// ShowFunc returns the show animation for kind.
func (a *Animator) ShowFunc(kind Kind) style.AnimationFunc {
	switch kind {
	case KindSlideVertically:
		return a.SlideVerticallyIn
	case KindSlideLeft:
		return a.SlideLeftIn
	case KindSlideRight:
		return a.SlideRightIn
	case KindFade:
		return a.FadeIn
	default:
		return style.NoAnimation
	}
}

// HideFunc returns the hide animation for kind.
func (a *Animator) HideFunc(kind Kind) style.AnimationFunc {
	switch kind {
	case KindSlideVertically:
		return a.SlideVerticallyOut
	case KindSlideLeft:
		return a.SlideLeftOut
	case KindSlideRight:
		return a.SlideRightOut
	case KindFade:
		return a.FadeOut
	default:
		return style.NoAnimation
	}
}

// solvedFrame lays out the tree v belongs to and returns v's frame along
// with the size of the root. Offsets are computed from resolved frames.
func solvedFrame(v *view.View) (frame, root view.Rect) {
	r := v.Root()
	view.Solve(r)
	return v.Frame(), r.Frame()
}

// offscreenY is the vertical translation that moves v just past the edge it
// is anchored to.
func offscreenY(v *view.View, locationTop bool) int {
	f, root := solvedFrame(v)
	if locationTop {
		return -f.Bottom()
	}
	return root.Height - f.Y
}

func offscreenRight(v *view.View) int {
	f, root := solvedFrame(v)
	return root.Width - f.X
}

func offscreenLeft(v *view.View) int {
	f, _ := solvedFrame(v)
	return -f.Right()
}

func (a *Animator) slide(v *view.View, d time.Duration, vertical bool, from, to int, completed func()) {
	a.start(v, d, func(v *view.View, p float64) {
		if vertical {
			v.Translation.DY = lerp(from, to, p)
		} else {
			v.Translation.DX = lerp(from, to, p)
		}
	}, completed)
}

// SlideVerticallyIn slides v in from the edge it is anchored to.
func (a *Animator) SlideVerticallyIn(v *view.View, d time.Duration, locationTop bool, completed func()) {
	a.slide(v, d, true, offscreenY(v, locationTop), 0, completed)
}

// SlideVerticallyOut slides v out past the edge it is anchored to.
func (a *Animator) SlideVerticallyOut(v *view.View, d time.Duration, locationTop bool, completed func()) {
	a.slide(v, d, true, 0, offscreenY(v, locationTop), completed)
}

// SlideLeftIn moves v in from the right edge.
func (a *Animator) SlideLeftIn(v *view.View, d time.Duration, _ bool, completed func()) {
	a.slide(v, d, false, offscreenRight(v), 0, completed)
}

// SlideLeftOut moves v out past the left edge.
func (a *Animator) SlideLeftOut(v *view.View, d time.Duration, _ bool, completed func()) {
	a.slide(v, d, false, 0, offscreenLeft(v), completed)
}

// SlideRightIn moves v in from the left edge.
func (a *Animator) SlideRightIn(v *view.View, d time.Duration, _ bool, completed func()) {
	a.slide(v, d, false, offscreenLeft(v), 0, completed)
}

// SlideRightOut moves v out past the right edge.
func (a *Animator) SlideRightOut(v *view.View, d time.Duration, _ bool, completed func()) {
	a.slide(v, d, false, 0, offscreenRight(v), completed)
}

// FadeIn raises alpha from 0 to 1.
func (a *Animator) FadeIn(v *view.View, d time.Duration, _ bool, completed func()) {
	a.start(v, d, func(v *view.View, p float64) {
		v.Alpha = p
	}, completed)
}

// FadeOut lowers alpha from 1 to 0.
func (a *Animator) FadeOut(v *view.View, d time.Duration, _ bool, completed func()) {
	a.start(v, d, func(v *view.View, p float64) {
		v.Alpha = 1 - p
	}, completed)
}

func lerp(from, to int, p float64) int {
	return from + int(math.Round(float64(to-from)*p))
}

func easeOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}
