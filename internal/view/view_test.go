package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSubview(t *testing.T) {
	root := New("root")
	child := New("child")

	root.AddSubview(child)
	assert.Same(t, root, child.Superview())
	assert.True(t, child.IsAttached())
	assert.Equal(t, []*View{child}, root.Subviews())

	// Re-parenting detaches from the previous parent
	other := New("other")
	other.AddSubview(child)
	assert.Empty(t, root.Subviews())
	assert.Same(t, other, child.Superview())
}

func TestRemoveFromSuperview_DropsConstraints(t *testing.T) {
	root := New("root")
	bar := New("bar")
	label := NewLabel("label", "hi")
	keep := New("keep")
	root.AddSubview(bar)
	root.AddSubview(keep)
	bar.AddSubview(label)

	root.AddConstraints(
		Constraint{Item: bar, Attr: AttrLeft, ToItem: root, ToAttr: AttrLeft},
		Constraint{Item: label, Attr: AttrLeft, ToItem: root, ToAttr: AttrLeft},
		Constraint{Item: keep, Attr: AttrLeft, ToItem: root, ToAttr: AttrLeft},
	)

	bar.RemoveFromSuperview()

	assert.Nil(t, bar.Superview())
	assert.Equal(t, []*View{keep}, root.Subviews())
	require.Len(t, root.Constraints(), 1)
	assert.Same(t, keep, root.Constraints()[0].Item)

	// The subtree stays intact
	assert.Equal(t, []*View{label}, bar.Subviews())
}

func TestRemoveFromSuperview_Detached(t *testing.T) {
	v := New("v")
	assert.NotPanics(t, v.RemoveFromSuperview)
}

func TestRoot(t *testing.T) {
	root := New("root")
	a := New("a")
	b := New("b")
	root.AddSubview(a)
	a.AddSubview(b)

	assert.Same(t, root, b.Root())
	assert.True(t, b.IsDescendant(root))
	assert.False(t, root.IsDescendant(b))
}

func TestWalkOrder(t *testing.T) {
	root := New("root")
	a := New("a")
	b := New("b")
	c := New("c")
	root.AddSubview(a)
	root.AddSubview(c)
	a.AddSubview(b)

	var names []string
	root.Walk(func(v *View) { names = append(names, v.Name) })
	assert.Equal(t, []string{"root", "a", "b", "c"}, names)
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 5)
	b := NewRect(5, 2, 10, 5)

	assert.Equal(t, NewRect(5, 2, 5, 3), a.Intersect(b))
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(NewRect(10, 0, 3, 3)))
	assert.True(t, a.Intersect(NewRect(20, 20, 1, 1)).IsEmpty())
}
