package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type guide struct{ rect Rect }

func (g guide) Frame() Rect { return g.rect }

func pin(container *View, item Anchorable, attr Attribute, to Anchorable, toAttr Attribute, c int) {
	container.AddConstraints(Constraint{Item: item, Attr: attr, ToItem: to, ToAttr: toAttr, Constant: c})
}

func TestSolve_EdgesAndSize(t *testing.T) {
	root := New("root")
	root.SetFrame(NewRect(0, 0, 40, 10))
	v := New("v")
	root.AddSubview(v)

	pin(root, v, AttrLeft, root, AttrLeft, 2)
	pin(root, root, AttrRight, v, AttrRight, 2)
	pin(root, root, AttrBottom, v, AttrBottom, 1)
	root.AddConstraints(Constraint{Item: v, Attr: AttrHeight, Constant: 3})

	Solve(root)
	assert.Equal(t, NewRect(2, 6, 36, 3), v.Frame())
}

func TestSolve_LabelIntrinsicHeightDrivesParent(t *testing.T) {
	root := New("root")
	root.SetFrame(NewRect(0, 0, 20, 20))
	bar := New("bar")
	label := NewLabel("label", "aaaa bbbb cccc dddd eeee")
	root.AddSubview(bar)
	bar.AddSubview(label)

	// bar spans the width, sits on the bottom edge, and wraps the label
	pin(root, bar, AttrLeft, root, AttrLeft, 0)
	pin(root, root, AttrRight, bar, AttrRight, 0)
	pin(root, root, AttrBottom, bar, AttrBottom, 0)
	pin(bar, label, AttrTop, bar, AttrTop, 1)
	pin(bar, bar, AttrBottom, label, AttrBottom, 1)
	pin(root, label, AttrLeft, root, AttrLeft, 5)
	pin(root, root, AttrRight, label, AttrRight, 5)

	Solve(root)
	// width 10 wraps into three lines
	assert.Equal(t, NewRect(5, 16, 10, 3), label.Frame())
	assert.Equal(t, NewRect(0, 15, 20, 5), bar.Frame())
}

func TestSolve_LabelIntrinsicWidth(t *testing.T) {
	root := New("root")
	root.SetFrame(NewRect(0, 0, 20, 5))
	label := NewLabel("label", "hello")
	root.AddSubview(label)
	pin(root, label, AttrLeft, root, AttrLeft, 1)
	pin(root, label, AttrTop, root, AttrTop, 0)

	Solve(root)
	assert.Equal(t, NewRect(1, 0, 5, 1), label.Frame())
}

func TestSolve_Guide(t *testing.T) {
	root := New("root")
	root.SetFrame(NewRect(0, 0, 20, 10))
	v := New("v")
	root.AddSubview(v)
	g := guide{NewRect(0, 8, 20, 2)}

	pin(root, g, AttrTop, v, AttrBottom, 1)
	root.AddConstraints(Constraint{Item: v, Attr: AttrHeight, Constant: 2})
	root.AddConstraints(Constraint{Item: v, Attr: AttrWidth, Constant: 4})
	pin(root, v, AttrLeft, root, AttrLeft, 0)

	Solve(root)
	assert.Equal(t, NewRect(0, 5, 4, 2), v.Frame())
}

func TestSolve_CenterY(t *testing.T) {
	root := New("root")
	root.SetFrame(NewRect(0, 0, 10, 7))
	v := New("v")
	root.AddSubview(v)
	pin(root, v, AttrCenterY, root, AttrCenterY, 0)
	root.AddConstraints(Constraint{Item: v, Attr: AttrHeight, Constant: 1})

	Solve(root)
	assert.Equal(t, 3, v.Frame().Y)
}

func TestSolve_IgnoresDetachedViews(t *testing.T) {
	root := New("root")
	root.SetFrame(NewRect(0, 0, 10, 10))
	detached := New("detached")
	v := New("v")
	root.AddSubview(v)
	pin(root, v, AttrLeft, detached, AttrLeft, 3)

	assert.NotPanics(t, func() { Solve(root) })
	assert.Equal(t, 0, v.Frame().X)
}

func TestSolve_Nil(t *testing.T) {
	assert.NotPanics(t, func() { Solve(nil) })
}
