package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Blend mixes over onto under at alpha in RGB space. Colors that are not
// hex values (ANSI indexes, the terminal default) cannot be mixed; the
// dominant one is returned instead.
func Blend(under, over lipgloss.Color, alpha float64) lipgloss.Color {
	switch {
	case alpha >= 1:
		return over
	case alpha <= 0:
		return under
	}

	a, errA := colorful.Hex(string(under))
	b, errB := colorful.Hex(string(over))
	if errA != nil || errB != nil {
		if alpha >= 0.5 {
			return over
		}
		return under
	}
	return lipgloss.Color(a.BlendRgb(b, alpha).Clamped().Hex())
}
