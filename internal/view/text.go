package view

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is appended to the last visible line when text is cut.
const TruncateEllipsis = "…"

// TextWidth returns the widest line of s in terminal columns.
func TextWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, runewidth.StringWidth(line))
	}
	return w
}

// WrapLines breaks text into lines of at most width columns. Words are kept
// whole where possible; words longer than width are split. A positive
// maxLines caps the result and marks the last kept line with an ellipsis.
// Empty text yields a single empty line.
func WrapLines(text string, width, maxLines int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, width)...)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	if maxLines > 0 && len(lines) > maxLines {
		last := lines[maxLines-1]
		lines = lines[:maxLines]
		ellipsis := runewidth.StringWidth(TruncateEllipsis)
		if runewidth.StringWidth(last)+1+ellipsis <= width {
			lines[maxLines-1] = last + " " + TruncateEllipsis
		} else {
			lines[maxLines-1] = truncate(last, width-ellipsis) + TruncateEllipsis
		}
	}
	return lines
}

// TextLines lays out the label text at width, honouring Wrap and
// NumberOfLines.
func (v *View) TextLines(width int) []string {
	if width <= 0 {
		return nil
	}
	if v.Wrap {
		return WrapLines(v.Text, width, v.NumberOfLines)
	}
	lines := CutLines(v.Text, width)
	if v.NumberOfLines > 0 && len(lines) > v.NumberOfLines {
		lines = lines[:v.NumberOfLines]
	}
	return lines
}

// CutLines splits text on newlines and truncates each line to width
// without wrapping.
func CutLines(text string, width int) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = truncate(line, width)
	}
	return lines
}

func wrapParagraph(para string, width int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var current strings.Builder
	currentWidth := 0

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
		currentWidth = 0
	}

	for _, word := range words {
		ww := runewidth.StringWidth(word)

		// Split words that can never fit on one line
		for ww > width {
			if currentWidth > 0 {
				flush()
			}
			head := truncate(word, width)
			if head == "" {
				// a single rune wider than the line
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		if ww == 0 {
			continue
		}

		switch {
		case currentWidth == 0:
			current.WriteString(word)
			currentWidth = ww
		case currentWidth+1+ww <= width:
			current.WriteByte(' ')
			current.WriteString(word)
			currentWidth += 1 + ww
		default:
			flush()
			current.WriteString(word)
			currentWidth = ww
		}
	}
	if currentWidth > 0 {
		flush()
	}
	return lines
}

// truncate cuts s to at most width columns without adding an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > width {
			return s[:i]
		}
		w += rw
	}
	return s
}
