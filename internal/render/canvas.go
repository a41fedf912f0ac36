// Package render draws a view tree into a grid of terminal cells and turns
// the grid into a styled string.
package render

import (
	"image/color"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/jmylchreest/notibar/internal/view"
)

// Cell is a read-only copy of one terminal cell. Wide runes occupy two
// cells; the second is a continuation with Width 0.
type Cell struct {
	Rune       rune
	Width      int
	Foreground lipgloss.Color
	Background lipgloss.Color
	Bold       bool
	Italic     bool
}

// IsContinuation reports whether the cell is the trailing half of a wide rune.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// paint is a cell colour that remembers the lipgloss.Color it was made from,
// so blending works on the original value.
type paint struct {
	color.Color
	name lipgloss.Color
}

func toPaint(c lipgloss.Color) ansi.Color {
	if c == "" {
		return nil
	}
	if rgb, err := colorful.Hex(string(c)); err == nil {
		return paint{Color: rgb, name: c}
	}
	if n, err := strconv.Atoi(string(c)); err == nil && n >= 0 && n <= 255 {
		if n < 16 {
			return paint{Color: ansi.BasicColor(n), name: c}
		}
		return paint{Color: ansi.IndexedColor(n), name: c}
	}
	return nil
}

func fromPaint(c ansi.Color) lipgloss.Color {
	if p, ok := c.(paint); ok {
		return p.name
	}
	return ""
}

// Canvas is a fixed-size grid of cells.
type Canvas struct {
	buf *cellbuf.Buffer
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{buf: cellbuf.NewBuffer(max(width, 0), max(height, 0))}
}

// Width returns the canvas width in columns.
func (c *Canvas) Width() int { return c.buf.Width() }

// Height returns the canvas height in rows.
func (c *Canvas) Height() int { return c.buf.Height() }

// Rect returns the canvas bounds.
func (c *Canvas) Rect() view.Rect {
	return view.NewRect(0, 0, c.Width(), c.Height())
}

// at returns a copy of the buffer cell at (x, y), or nil when out of bounds.
func (c *Canvas) at(x, y int) *cellbuf.Cell {
	if x < 0 || x >= c.Width() {
		return nil
	}
	cell := c.buf.Cell(x, y)
	if cell == nil {
		return nil
	}
	return cell.Clone()
}

// Cell returns the cell at (x, y), or a zero Cell when out of bounds.
func (c *Canvas) Cell(x, y int) Cell {
	cell := c.at(x, y)
	if cell == nil {
		return Cell{}
	}
	return Cell{
		Rune:       cell.Rune,
		Width:      cell.Width,
		Foreground: fromPaint(cell.Style.Fg),
		Background: fromPaint(cell.Style.Bg),
		Bold:       cell.Style.Attrs.Contains(cellbuf.BoldAttr),
		Italic:     cell.Style.Attrs.Contains(cellbuf.ItalicAttr),
	}
}

// Fill paints the background of every cell in r, blended at alpha over what
// is already there. Mostly opaque fills also erase the cell's content.
func (c *Canvas) Fill(r view.Rect, bg lipgloss.Color, alpha float64) {
	r = r.Intersect(c.Rect())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			cell := c.at(x, y)
			under := fromPaint(cell.Style.Bg)
			if alpha < 0.5 {
				// The leading cell carries a wide rune's background
				if cell.Width == 0 {
					continue
				}
			} else {
				cell = cellbuf.BlankCell.Clone()
			}
			cell.Style.Background(toPaint(Blend(under, bg, alpha)))
			c.buf.SetCell(x, y, cell)
		}
	}
}

// SetRune draws r at (x, y) inside clip, keeping the cell background and
// blending fg over it at alpha. It returns the width consumed.
func (c *Canvas) SetRune(x, y int, r rune, fg lipgloss.Color, bold, italic bool, alpha float64, clip view.Rect) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	clip = clip.Intersect(c.Rect())
	if !clip.Contains(x, y) || (w == 2 && !clip.Contains(x+1, y)) {
		return w
	}

	bg := fromPaint(c.at(x, y).Style.Bg)
	cell := cellbuf.NewCell(r)
	cell.Style.Foreground(toPaint(Blend(bg, fg, alpha))).
		Background(toPaint(bg)).
		Bold(bold).
		Italic(italic)
	c.buf.SetCell(x, y, cell)
	return w
}

// SetString draws s starting at (x, y) without wrapping and returns the
// width consumed.
func (c *Canvas) SetString(x, y int, s string, fg lipgloss.Color, bold, italic bool, alpha float64, clip view.Rect) int {
	total := 0
	for _, r := range s {
		total += c.SetRune(x+total, y, r, fg, bold, italic, alpha, clip)
	}
	return total
}

// Plain returns the canvas text without styling, one line per row.
func (c *Canvas) Plain() string {
	var sb strings.Builder
	for y := 0; y < c.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < c.Width(); x++ {
			cell := c.Cell(x, y)
			if cell.IsContinuation() {
				continue
			}
			sb.WriteRune(cell.Rune)
		}
	}
	return sb.String()
}

var stdoutProfile = sync.OnceValue(func() colorprofile.Profile {
	return colorprofile.Detect(os.Stdout, os.Environ())
})

// String renders the canvas for the colour profile of stdout.
func (c *Canvas) String() string {
	return c.RenderWith(stdoutProfile())
}

// RenderWith renders the canvas with colours converted to profile p.
func (c *Canvas) RenderWith(p colorprofile.Profile) string {
	src := profiled{Buffer: c.buf, profile: p}
	var sb strings.Builder
	for y := 0; y < c.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		_, line := cellbuf.RenderLine(src, y)
		sb.WriteString(line)
	}
	return sb.String()
}

// profiled converts cell styles to a colour profile as they are read.
type profiled struct {
	*cellbuf.Buffer
	profile colorprofile.Profile
}

func (p profiled) Cell(x, y int) *cellbuf.Cell {
	cell := p.Buffer.Cell(x, y)
	if cell == nil {
		return nil
	}
	cell = cell.Clone()
	cell.Style.Fg = unwrap(cell.Style.Fg)
	cell.Style.Bg = unwrap(cell.Style.Bg)
	cell.Style = cellbuf.ConvertStyle(cell.Style, p.profile)
	return cell
}

func unwrap(c ansi.Color) ansi.Color {
	if p, ok := c.(paint); ok {
		return p.Color
	}
	return c
}
