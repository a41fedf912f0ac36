package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/notibar/internal/view"
)

// Render lays out root and returns it drawn as a styled string the size of
// root's frame.
func Render(root *view.View) string {
	return Canvasize(root).String()
}

// Canvasize lays out root and draws it onto a new canvas.
func Canvasize(root *view.View) *Canvas {
	if root == nil {
		return NewCanvas(0, 0)
	}
	view.Solve(root)
	f := root.Frame()
	c := NewCanvas(f.Width, f.Height)
	Draw(c, root)
	return c
}

// Draw paints root and its visible subviews onto c using their current
// frames. Translations accumulate down the tree, as does alpha. Views with
// ClipsToBounds confine their subviews.
func Draw(c *Canvas, root *view.View) {
	if root == nil {
		return
	}
	drawView(c, root, view.Offset{}, 1, c.Rect())
}

func drawView(c *Canvas, v *view.View, offset view.Offset, alpha float64, clip view.Rect) {
	if v.Hidden {
		return
	}
	offset.DX += v.Translation.DX
	offset.DY += v.Translation.DY
	alpha *= clampAlpha(v.Alpha)
	if alpha <= 0 {
		return
	}

	frame := v.Frame().Translate(offset.DX, offset.DY)
	visible := frame.Intersect(clip)

	if v.Background != "" {
		c.Fill(visible, v.Background, alpha)
	}
	if v.BorderWidth > 0 && v.BorderColor != "" {
		drawBorder(c, v, frame, visible, alpha)
	}
	if v.IsLabel() {
		drawLabel(c, v, frame, clip, alpha)
	}

	childClip := clip
	if v.ClipsToBounds {
		childClip = visible
	}
	for _, sub := range v.Subviews() {
		drawView(c, sub, offset, alpha, childClip)
	}
}

func clampAlpha(a float64) float64 {
	return min(max(a, 0), 1)
}

// borderFor picks the glyph set: thick for widths above one, rounded when
// the view has a corner radius.
func borderFor(v *view.View) lipgloss.Border {
	switch {
	case v.BorderWidth > 1:
		return lipgloss.ThickBorder()
	case v.CornerRadius > 0:
		return lipgloss.RoundedBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

func drawBorder(c *Canvas, v *view.View, frame, clip view.Rect, alpha float64) {
	if frame.Width < 2 || frame.Height < 2 {
		return
	}
	b := borderFor(v)
	fg := v.BorderColor
	left, right := frame.X, frame.Right()-1
	top, bottom := frame.Y, frame.Bottom()-1

	put := func(x, y int, glyph string) {
		c.SetRune(x, y, firstRune(glyph), fg, false, false, alpha, clip)
	}

	put(left, top, b.TopLeft)
	put(right, top, b.TopRight)
	put(left, bottom, b.BottomLeft)
	put(right, bottom, b.BottomRight)
	for x := left + 1; x < right; x++ {
		put(x, top, b.Top)
		put(x, bottom, b.Bottom)
	}
	for y := top + 1; y < bottom; y++ {
		put(left, y, b.Left)
		put(right, y, b.Right)
	}
}

func drawLabel(c *Canvas, v *view.View, frame, clip view.Rect, alpha float64) {
	lines := v.TextLines(frame.Width)
	if len(lines) > frame.Height {
		lines = lines[:max(frame.Height, 0)]
	}
	if len(lines) == 0 {
		return
	}

	// Centre the block vertically in the frame
	top := frame.Y + (frame.Height-len(lines))/2

	write := func(dx, dy int, fg lipgloss.Color) {
		for i, line := range lines {
			x := frame.X + alignOffset(frame.Width, view.TextWidth(line), v.TextAlign)
			c.SetString(x+dx, top+i+dy, line, fg, v.Bold, v.Italic, alpha, clip)
		}
	}

	if v.ShadowColor != "" && v.ShadowOffset != (view.Offset{}) {
		write(v.ShadowOffset.DX, v.ShadowOffset.DY, v.ShadowColor)
	}
	write(0, 0, v.Foreground)
}

func alignOffset(width, textWidth int, pos lipgloss.Position) int {
	free := width - textWidth
	if free <= 0 {
		return 0
	}
	return int(float64(free) * float64(pos))
}
