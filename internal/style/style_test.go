package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/notibar/internal/button"
	"github.com/jmylchreest/notibar/internal/view"
)

func TestHasBorder(t *testing.T) {
	tests := []struct {
		name  string
		color lipgloss.Color
		width int
		want  bool
	}{
		{"color and width", "#FFFFFF", 1, true},
		{"color only", "#FFFFFF", 0, false},
		{"width only", "", 1, false},
		{"neither", "", 0, false},
		{"negative width", "#FFFFFF", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BarStyle{BorderColor: tt.color, BorderWidth: tt.width}
			assert.Equal(t, tt.want, b.HasBorder())
		})
	}
}

func TestAnimationsDefaultToNone(t *testing.T) {
	var b BarStyle
	called := 0
	b.ShowAnimation()(view.New("v"), 0, true, func() { called++ })
	b.HideAnimation()(view.New("v"), 0, false, func() { called++ })
	assert.Equal(t, 2, called)
}

func TestClone_CopiesButtons(t *testing.T) {
	s := Default()
	s.LeftButton = &button.Style{Icon: button.IconReload}

	c := s.Clone()
	c.LeftButton.Icon = button.IconClose

	assert.Equal(t, button.IconReload, s.LeftButton.Icon)
	assert.Nil(t, c.RightButton)
}

func TestButtonStyles(t *testing.T) {
	s := Default()
	assert.Empty(t, s.ButtonStyles())

	s.RightButton = &button.Style{Icon: button.IconClose}
	require.Len(t, s.ButtonStyles(), 1)

	s.LeftButton = &button.Style{Icon: button.IconReload}
	styles := s.ButtonStyles()
	require.Len(t, styles, 2)
	assert.Same(t, s.LeftButton, styles[0])
}

func TestPresets(t *testing.T) {
	base := Default()
	assert.Equal(t, base.Bar.BackgroundColor, PresetDefault.Apply(base).Bar.BackgroundColor)
	assert.Equal(t, presetColors[PresetError], Error().Bar.BackgroundColor)
	assert.Equal(t, presetColors[PresetSuccess], Success().Bar.BackgroundColor)
	assert.Equal(t, presetColors[PresetWarning], Warning().Bar.BackgroundColor)
	assert.Equal(t, presetColors[PresetInfo], Info().Bar.BackgroundColor)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, PresetDefault, p)

	p, err = ParsePreset("Warning")
	require.NoError(t, err)
	assert.Equal(t, PresetWarning, p)

	_, err = ParsePreset("loud")
	assert.Error(t, err)
}
