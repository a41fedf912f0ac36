// Package style holds the appearance and behaviour of a notification bar.
package style

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/notibar/internal/button"
	"github.com/jmylchreest/notibar/internal/view"
)

// AnimationFunc animates v in or out over duration and calls completed when
// done. locationTop tells the animation which edge the bar is anchored to.
// Implementations must call completed exactly once, on the UI thread.
type AnimationFunc func(v *view.View, duration time.Duration, locationTop bool, completed func())

// NoAnimation completes immediately.
func NoAnimation(_ *view.View, _ time.Duration, _ bool, completed func()) {
	completed()
}

// Colors used to tint subviews in debug mode.
const (
	DebugLabelColor  = lipgloss.Color("#FF0000")
	DebugButtonColor = lipgloss.Color("#FFFF00")
)

// Margin is a horizontal and vertical distance in cells.
type Margin struct {
	Width  int
	Height int
}

// BarStyle configures the bar container.
type BarStyle struct {
	BackgroundColor   lipgloss.Color
	CornerRadius      int
	BorderColor       lipgloss.Color // Empty = no border
	BorderWidth       int
	MarginToSuperview Margin
	LocationTop       bool
	DebugMode         bool

	AnimationShow         AnimationFunc
	AnimationHide         AnimationFunc
	AnimationShowDuration time.Duration
	AnimationHideDuration time.Duration

	HideAfterDelay time.Duration // 0 = stay until hidden
	HideOnTap      bool
}

// HasBorder reports whether a border should be drawn: both a color and a
// positive width are required.
func (b BarStyle) HasBorder() bool {
	return b.BorderColor != "" && b.BorderWidth > 0
}

// ShowAnimation returns the configured show animation, or NoAnimation.
func (b BarStyle) ShowAnimation() AnimationFunc {
	if b.AnimationShow == nil {
		return NoAnimation
	}
	return b.AnimationShow
}

// HideAnimation returns the configured hide animation, or NoAnimation.
func (b BarStyle) HideAnimation() AnimationFunc {
	if b.AnimationHide == nil {
		return NoAnimation
	}
	return b.AnimationHide
}

// LabelStyle configures the message label.
type LabelStyle struct {
	Color            lipgloss.Color
	NumberOfLines    int // 0 = unlimited
	HorizontalMargin int // Also used as the vertical inset inside the bar
	ShadowColor      lipgloss.Color
	ShadowOffset     view.Offset
	Bold             bool
	Italic           bool
}

// Style is the complete configuration of a bar.
type Style struct {
	Bar         BarStyle
	Label       LabelStyle
	LeftButton  *button.Style
	RightButton *button.Style
}

// Default returns the default style: a dark bar at the bottom with no
// buttons and no animation.
func Default() Style {
	return Style{
		Bar: BarStyle{
			BackgroundColor:       lipgloss.Color("#333333"),
			CornerRadius:          0,
			BorderWidth:           0,
			MarginToSuperview:     Margin{Width: 2, Height: 1},
			LocationTop:           false,
			AnimationShowDuration: 300 * time.Millisecond,
			AnimationHideDuration: 300 * time.Millisecond,
		},
		Label: LabelStyle{
			Color:            lipgloss.Color("#FFFFFF"),
			NumberOfLines:    3,
			HorizontalMargin: 1,
		},
	}
}

// Clone returns a deep copy. Button descriptors are copied so the clone can
// be modified without affecting the original.
func (s Style) Clone() Style {
	c := s
	c.LeftButton = s.LeftButton.Clone()
	c.RightButton = s.RightButton.Clone()
	return c
}

// ButtonStyles returns the configured descriptors, left first, omitting
// unset sides.
func (s Style) ButtonStyles() []*button.Style {
	var out []*button.Style
	for _, b := range []*button.Style{s.LeftButton, s.RightButton} {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}
