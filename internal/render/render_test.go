package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/notibar/internal/bar"
	"github.com/jmylchreest/notibar/internal/layout"
	"github.com/jmylchreest/notibar/internal/style"
	"github.com/jmylchreest/notibar/internal/view"
)

func TestBlend(t *testing.T) {
	tests := []struct {
		name  string
		under lipgloss.Color
		over  lipgloss.Color
		alpha float64
		want  lipgloss.Color
	}{
		{"opaque", "#000000", "#FFFFFF", 1, "#FFFFFF"},
		{"transparent", "#000000", "#FFFFFF", 0, "#000000"},
		{"half", "#000000", "#FFFFFF", 0.5, "#808080"},
		{"default under mostly over", "", "#FFFFFF", 0.7, "#FFFFFF"},
		{"default under mostly under", "", "#FFFFFF", 0.3, ""},
		{"ansi index", "4", "#FFFFFF", 0.6, "#FFFFFF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Blend(tt.under, tt.over, tt.alpha))
		})
	}
}

func TestCanvas_WideRunes(t *testing.T) {
	c := NewCanvas(5, 1)
	n := c.SetString(0, 0, "日本", "", false, false, 1, c.Rect())
	assert.Equal(t, 4, n)
	assert.Equal(t, "日本 ", c.Plain())
	assert.True(t, c.Cell(1, 0).IsContinuation())

	// Overwriting the trailing half clears the whole rune
	c.SetRune(1, 0, 'a', "", false, false, 1, c.Rect())
	assert.Equal(t, " a本 ", c.Plain())
}

func TestCanvas_ClipsOutOfBounds(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetString(-1, 0, "abcd", "", false, false, 1, c.Rect())
	assert.Equal(t, "bcd", c.Plain())

	clip := view.NewRect(1, 0, 1, 1)
	c = NewCanvas(3, 1)
	c.SetString(0, 0, "xyz", "", false, false, 1, clip)
	assert.Equal(t, " y ", c.Plain())
}

func TestCanvas_FillKeepsStylesAndWideRunes(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Fill(c.Rect(), "#000000", 1)
	c.SetString(0, 0, "日", "#FFFFFF", true, false, 1, c.Rect())

	// A faint fill tints the background and keeps the rune
	c.Fill(c.Rect(), "#FFFFFF", 0.25)
	assert.Equal(t, "日  ", c.Plain())
	assert.Equal(t, lipgloss.Color("#404040"), c.Cell(0, 0).Background)
	assert.Equal(t, lipgloss.Color("#404040"), c.Cell(3, 0).Background)
	assert.True(t, c.Cell(0, 0).Bold)

	// An opaque fill erases it
	c.Fill(view.NewRect(1, 0, 1, 1), "#333333", 1)
	assert.Equal(t, "    ", c.Plain())
	assert.Equal(t, lipgloss.Color("#333333"), c.Cell(1, 0).Background)
}

func TestCanvas_RenderWith(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Fill(c.Rect(), "#333333", 1)
	c.SetString(0, 0, "ok", "#FFFFFF", false, false, 1, c.Rect())

	truecolor := c.RenderWith(colorprofile.TrueColor)
	assert.Contains(t, truecolor, "48;2;51;51;51")
	assert.Contains(t, truecolor, "38;2;255;255;255")
	assert.Contains(t, truecolor, "ok")

	assert.Equal(t, "ok", c.RenderWith(colorprofile.NoTTY))

	c = NewCanvas(2, 1)
	c.Fill(c.Rect(), "4", 1)
	assert.Equal(t, lipgloss.Color("4"), c.Cell(0, 0).Background)
	assert.Regexp(t, `\x1b\[[0-9;]*44m`, c.RenderWith(colorprofile.ANSI))
}

// scene returns a 20x5 black root with a shown bar carrying message.
func scene(t *testing.T, st style.Style, message string) (*view.View, *bar.Bar) {
	t.Helper()
	root := view.New("root")
	root.SetFrame(view.NewRect(0, 0, 20, 5))
	root.Background = "#000000"

	b := bar.New(st, layout.Builder{}, nil)
	require.NoError(t, b.Show(root, message))
	return root, b
}

func TestRender_Bar(t *testing.T) {
	root, _ := scene(t, style.Default(), "hi")
	c := Canvasize(root)

	rows := strings.Split(c.Plain(), "\n")
	require.Len(t, rows, 5)
	assert.Equal(t, strings.Repeat(" ", 9)+"hi"+strings.Repeat(" ", 9), rows[2])

	assert.Equal(t, lipgloss.Color("#000000"), c.Cell(0, 2).Background)
	assert.Equal(t, lipgloss.Color("#000000"), c.Cell(1, 1).Background)
	assert.Equal(t, lipgloss.Color("#333333"), c.Cell(2, 1).Background)
	assert.Equal(t, lipgloss.Color("#333333"), c.Cell(9, 2).Background)
	assert.Equal(t, lipgloss.Color("#FFFFFF"), c.Cell(9, 2).Foreground)
	assert.Equal(t, lipgloss.Color("#000000"), c.Cell(2, 4).Background, "margin below the bar")
}

func TestRender_RoundedBorder(t *testing.T) {
	st := style.Default()
	st.Bar.BorderColor = "#FFFFFF"
	st.Bar.BorderWidth = 1
	st.Bar.CornerRadius = 1
	root, _ := scene(t, st, "hi")
	c := Canvasize(root)

	assert.Equal(t, '╭', c.Cell(2, 1).Rune)
	assert.Equal(t, '╮', c.Cell(17, 1).Rune)
	assert.Equal(t, '╰', c.Cell(2, 3).Rune)
	assert.Equal(t, '╯', c.Cell(17, 3).Rune)
	assert.Equal(t, '│', c.Cell(2, 2).Rune)
}

func TestRender_Translation(t *testing.T) {
	root, b := scene(t, style.Default(), "hi")
	b.View().Translation.DY = 2
	c := Canvasize(root)

	assert.Equal(t, lipgloss.Color("#000000"), c.Cell(2, 1).Background)
	assert.Equal(t, lipgloss.Color("#333333"), c.Cell(2, 3).Background)
	assert.Equal(t, "hi", strings.TrimSpace(strings.Split(c.Plain(), "\n")[4]), "label moves with the bar")
}

func TestRender_Alpha(t *testing.T) {
	st := style.Default()
	st.Bar.BackgroundColor = "#FFFFFF"
	root, b := scene(t, st, "hi")
	b.View().Alpha = 0.5
	c := Canvasize(root)

	assert.Equal(t, lipgloss.Color("#808080"), c.Cell(2, 1).Background)

	b.View().Alpha = 0
	c = Canvasize(root)
	assert.Equal(t, lipgloss.Color("#000000"), c.Cell(2, 1).Background)
}

func TestRender_HiddenAndDetached(t *testing.T) {
	root, b := scene(t, style.Default(), "hi")
	b.View().Hidden = true
	assert.NotContains(t, Canvasize(root).Plain(), "hi")

	b.View().Hidden = false
	require.NoError(t, b.Hide(nil))
	assert.NotContains(t, Canvasize(root).Plain(), "hi")
}

func TestRender_Shadow(t *testing.T) {
	st := style.Default()
	st.Label.ShadowColor = "#111111"
	st.Label.ShadowOffset = view.Offset{DX: 1}
	root, _ := scene(t, st, "hi")
	c := Canvasize(root)

	assert.Equal(t, 'h', c.Cell(9, 2).Rune)
	assert.Equal(t, 'i', c.Cell(10, 2).Rune)
	assert.Equal(t, 'i', c.Cell(11, 2).Rune, "shadow peeks out one cell to the right")
	assert.Equal(t, lipgloss.Color("#111111"), c.Cell(11, 2).Foreground)
}

func TestRender_String(t *testing.T) {
	root, _ := scene(t, style.Default(), "hi")
	out := Render(root)
	assert.Contains(t, out, "hi")
	assert.Len(t, strings.Split(out, "\n"), 5)

	assert.Empty(t, Render(nil))
}
