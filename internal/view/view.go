// Package view provides a minimal retained view tree for terminal overlays.
// Views are positioned by constraints installed on container views and
// resolved by Solve; frames are absolute cell coordinates.
package view

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// View is a node in the view tree.
type View struct {
	Name string

	frame       Rect
	superview   *View
	subviews    []*View
	constraints []Constraint

	// Appearance. Empty colors are transparent.
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	CornerRadius  int
	ClipsToBounds bool
	BorderColor   lipgloss.Color
	BorderWidth   int
	Hidden        bool

	// Alpha and Translation are driven by animations.
	Alpha       float64
	Translation Offset

	// Text content. Only views created with NewLabel carry text.
	label         bool
	Text          string
	TextAlign     lipgloss.Position
	NumberOfLines int // 0 = unlimited
	Wrap          bool
	Bold          bool
	Italic        bool
	ShadowColor   lipgloss.Color
	ShadowOffset  Offset
}

// New creates an empty, fully opaque view.
func New(name string) *View {
	return &View{Name: name, Alpha: 1}
}

// NewLabel creates a view that renders text. Labels wrap by default and
// report an intrinsic size derived from their text.
func NewLabel(name, text string) *View {
	v := New(name)
	v.label = true
	v.Text = text
	v.Wrap = true
	v.TextAlign = lipgloss.Left
	return v
}

// IsLabel reports whether the view renders text.
func (v *View) IsLabel() bool {
	return v.label
}

// Frame returns the last solved frame.
func (v *View) Frame() Rect {
	return v.frame
}

// SetFrame sets the frame directly. Only the root's frame is kept by Solve;
// every other frame is recomputed from constraints.
func (v *View) SetFrame(r Rect) {
	v.frame = r
}

// Superview returns the parent view, or nil when detached.
func (v *View) Superview() *View {
	return v.superview
}

// IsAttached reports whether the view has a superview.
func (v *View) IsAttached() bool {
	return v.superview != nil
}

// Subviews returns a copy of the child list.
func (v *View) Subviews() []*View {
	return slices.Clone(v.subviews)
}

// AddSubview appends child to v, detaching it from any previous parent.
func (v *View) AddSubview(child *View) {
	if child == nil || child == v {
		return
	}
	if child.superview != nil {
		child.RemoveFromSuperview()
	}
	child.superview = v
	v.subviews = append(v.subviews, child)
}

// RemoveFromSuperview detaches v (with its subtree) from its parent.
// Constraints installed on former ancestors that reference any view of the
// removed subtree are dropped.
func (v *View) RemoveFromSuperview() {
	parent := v.superview
	if parent == nil {
		return
	}
	parent.subviews = slices.DeleteFunc(parent.subviews, func(s *View) bool { return s == v })
	v.superview = nil

	removed := make(map[*View]bool)
	v.Walk(func(s *View) { removed[s] = true })
	for a := parent; a != nil; a = a.superview {
		a.constraints = slices.DeleteFunc(a.constraints, func(c Constraint) bool {
			return references(c.Item, removed) || references(c.ToItem, removed)
		})
	}
}

// RemoveAllSubviews detaches every child of v.
func (v *View) RemoveAllSubviews() {
	for _, s := range v.Subviews() {
		s.RemoveFromSuperview()
	}
}

func references(item Anchorable, set map[*View]bool) bool {
	sv, ok := item.(*View)
	return ok && set[sv]
}

// AddConstraints installs constraints on v, which acts as their container.
func (v *View) AddConstraints(cs ...Constraint) {
	v.constraints = append(v.constraints, cs...)
}

// Constraints returns a copy of the constraints installed on v.
func (v *View) Constraints() []Constraint {
	return slices.Clone(v.constraints)
}

// RemoveAllConstraints clears the constraints installed on v.
func (v *View) RemoveAllConstraints() {
	v.constraints = nil
}

// Root returns the top-most ancestor of v.
func (v *View) Root() *View {
	r := v
	for r.superview != nil {
		r = r.superview
	}
	return r
}

// Walk visits v and its descendants depth-first, parents before children.
func (v *View) Walk(fn func(*View)) {
	fn(v)
	for _, s := range v.subviews {
		s.Walk(fn)
	}
}

// IsDescendant reports whether v is ancestor or one of its descendants.
func (v *View) IsDescendant(ancestor *View) bool {
	for a := v; a != nil; a = a.superview {
		if a == ancestor {
			return true
		}
	}
	return false
}
