package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/notibar/internal/view"
)

type fixedGuide struct{ rect view.Rect }

func (g fixedGuide) Frame() view.Rect { return g.rect }

func newRoot(w, h int) *view.View {
	root := view.New("root")
	root.SetFrame(view.NewRect(0, 0, w, h))
	return root
}

func TestFillParent_Horizontal(t *testing.T) {
	root := newRoot(80, 24)
	v := view.New("child")
	root.AddSubview(v)

	var b Builder
	cs := b.FillParent(v, root, 3, false)
	b.Height(v, root, 2)
	require.Len(t, cs, 2)

	view.Solve(root)
	assert.Equal(t, 3, v.Frame().X)
	assert.Equal(t, 74, v.Frame().Width)
	assert.Len(t, root.Constraints(), 3)
}

func TestFillParent_Vertical(t *testing.T) {
	root := newRoot(80, 24)
	v := view.New("child")
	root.AddSubview(v)

	var b Builder
	b.FillParent(v, root, 2, true)
	b.FillParent(v, root, 0, false)

	view.Solve(root)
	assert.Equal(t, view.NewRect(0, 2, 80, 20), v.Frame())
}

func TestViewsNextToEachOther(t *testing.T) {
	root := newRoot(40, 10)
	a, mid, c := view.New("a"), view.New("mid"), view.New("c")
	for _, v := range []*view.View{a, mid, c} {
		root.AddSubview(v)
	}

	var b Builder
	b.AlignSameAttributes(a, root, root, view.AttrLeft, 0)
	b.AlignSameAttributes(root, c, root, view.AttrRight, 0)
	b.Size(a, root, 5, 1)
	b.Size(c, root, 5, 1)
	b.Height(mid, root, 1)
	cs := b.ViewsNextToEachOther([]*view.View{a, mid, c}, root, 2, false)
	require.Len(t, cs, 2)

	view.Solve(root)
	assert.Equal(t, 0, a.Frame().X)
	assert.Equal(t, 7, mid.Frame().X)
	assert.Equal(t, 26, mid.Frame().Width)
	assert.Equal(t, 35, c.Frame().X)
}

func TestViewsNextToEachOther_TooFew(t *testing.T) {
	root := newRoot(10, 10)
	var b Builder
	assert.Nil(t, b.ViewsNextToEachOther([]*view.View{view.New("only")}, root, 1, false))
	assert.Empty(t, root.Constraints())
}

func TestAlignVerticallyToLayoutGuide(t *testing.T) {
	tests := []struct {
		name    string
		onTop   bool
		guide   view.Rect
		margin  int
		wantTop int
	}{
		{name: "top guide", onTop: true, guide: view.NewRect(0, 0, 80, 1), margin: -2, wantTop: 3},
		{name: "bottom guide", onTop: false, guide: view.NewRect(0, 23, 80, 1), margin: 2, wantTop: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRoot(80, 24)
			v := view.New("bar")
			root.AddSubview(v)

			var b Builder
			b.FillParent(v, root, 0, false)
			b.Height(v, root, 3)
			cs := b.AlignVerticallyToLayoutGuide(v, tt.onTop, fixedGuide{tt.guide}, root, tt.margin)
			require.Len(t, cs, 1)

			view.Solve(root)
			assert.Equal(t, tt.wantTop, v.Frame().Y)
		})
	}
}

func TestCenterY(t *testing.T) {
	root := newRoot(20, 9)
	v := view.New("v")
	root.AddSubview(v)

	var b Builder
	b.Size(v, root, 4, 1)
	b.AlignSameAttributes(v, root, root, view.AttrLeft, 0)
	b.CenterY(v, root, root)

	view.Solve(root)
	assert.Equal(t, 4, v.Frame().Y)
}

func TestStack(t *testing.T) {
	root := newRoot(30, 10)
	header, status := view.New("header"), view.New("status")
	root.AddSubview(header)
	root.AddSubview(status)

	var b Builder
	b.Stack(header, root, 1, false)
	b.Stack(status, root, 1, true)

	view.Solve(root)
	assert.Equal(t, view.NewRect(0, 0, 30, 1), header.Frame())
	assert.Equal(t, view.NewRect(0, 9, 30, 1), status.Frame())
}
