// Package button provides the side buttons of a notification bar.
package button

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/notibar/internal/view"
)

// Icon is one of the built-in button glyphs.
type Icon int

const (
	IconNone Icon = iota
	IconClose
	IconReload
)

var iconGlyphs = map[Icon]string{
	IconClose:  "✕",
	IconReload: "↻",
}

var iconNames = map[string]Icon{
	"":       IconNone,
	"none":   IconNone,
	"close":  IconClose,
	"reload": IconReload,
}

// ParseIcon converts a config name into an Icon.
func ParseIcon(name string) (Icon, error) {
	icon, ok := iconNames[strings.ToLower(name)]
	if !ok {
		return IconNone, fmt.Errorf("unknown button icon %q, must be one of: close, reload, none", name)
	}
	return icon, nil
}

// String returns the config name of the icon.
func (i Icon) String() string {
	switch i {
	case IconClose:
		return "close"
	case IconReload:
		return "reload"
	default:
		return "none"
	}
}

// Glyph returns the text drawn for the icon.
func (i Icon) Glyph() string {
	return iconGlyphs[i]
}

// Size is a button size in cells.
type Size struct {
	Width  int
	Height int
}

// Style describes one button. A nil *Style means no button on that side.
type Style struct {
	AccessibilityLabel    string
	HideOnTap             bool
	HorizontalMarginToBar int
	Icon                  Icon
	Text                  string // Drawn instead of the icon when set
	OnTap                 func()
	Size                  Size
	TintColor             lipgloss.Color
}

// Content returns the text the button displays.
func (s *Style) Content() string {
	if s.Text != "" {
		return s.Text
	}
	return s.Icon.Glyph()
}

// Clone returns a copy of the descriptor. Nil stays nil.
func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Delegate receives button taps. The button keeps a non-owning reference.
type Delegate interface {
	ButtonTapped(b *View)
}

// Constrainer is the subset of constraint helpers a button needs to lay
// itself out inside the bar.
type Constrainer interface {
	AlignSameAttributes(item, toItem view.Anchorable, container *view.View, attr view.Attribute, margin int) []view.Constraint
	CenterY(v, other, container *view.View) []view.Constraint
	Size(v, container *view.View, width, height int) []view.Constraint
}

// View is a button placed on one side of a bar.
type View struct {
	view     *view.View
	style    *Style
	delegate Delegate
}

// New creates a button view from its descriptor.
func New(s *Style) *View {
	v := view.NewLabel("button", s.Content())
	v.TextAlign = lipgloss.Center
	v.NumberOfLines = 1
	v.Wrap = false
	v.Foreground = s.TintColor
	return &View{view: v, style: s}
}

// CreateMany creates one button per non-nil descriptor, keeping order.
func CreateMany(styles []*Style) []*View {
	var buttons []*View
	for _, s := range styles {
		if s == nil {
			continue
		}
		buttons = append(buttons, New(s))
	}
	return buttons
}

// View returns the underlying view.
func (b *View) View() *view.View {
	return b.view
}

// Style returns the descriptor the button was created from.
func (b *View) Style() *Style {
	return b.style
}

// SetDelegate sets the tap receiver. A nil delegate silences taps.
func (b *View) SetDelegate(d Delegate) {
	b.delegate = d
}

// Delegate returns the tap receiver.
func (b *View) Delegate() Delegate {
	return b.delegate
}

// Tap forwards a tap to the delegate.
func (b *View) Tap() {
	if b.delegate != nil {
		b.delegate.ButtonTapped(b)
	}
}

// DoLayout pins the button to the left or right edge of its superview,
// centred vertically, at its configured size. The button must already be
// attached.
func (b *View) DoLayout(onLeftSide bool, c Constrainer) {
	superview := b.view.Superview()
	if superview == nil {
		return
	}

	if onLeftSide {
		b.view.Name = "left-button"
		c.AlignSameAttributes(b.view, superview, superview, view.AttrLeft, b.style.HorizontalMarginToBar)
	} else {
		b.view.Name = "right-button"
		c.AlignSameAttributes(superview, b.view, superview, view.AttrRight, b.style.HorizontalMarginToBar)
	}
	c.CenterY(b.view, superview, superview)

	width, height := b.style.Size.Width, b.style.Size.Height
	if width <= 0 {
		width = view.TextWidth(b.style.Content())
	}
	if height <= 0 {
		height = 1
	}
	c.Size(b.view, superview, width, height)
}
