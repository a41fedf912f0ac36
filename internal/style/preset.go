package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Preset is a named color scheme for common message kinds.
type Preset string

const (
	PresetDefault Preset = "default"
	PresetInfo    Preset = "info"
	PresetSuccess Preset = "success"
	PresetWarning Preset = "warning"
	PresetError   Preset = "error"
)

var presetColors = map[Preset]lipgloss.Color{
	PresetInfo:    lipgloss.Color("#2D7DB3"),
	PresetSuccess: lipgloss.Color("#26A65B"),
	PresetWarning: lipgloss.Color("#C87F0A"),
	PresetError:   lipgloss.Color("#C0392B"),
}

// ValidPresets returns all presets.
func ValidPresets() []Preset {
	return []Preset{PresetDefault, PresetInfo, PresetSuccess, PresetWarning, PresetError}
}

// ParsePreset converts a name into a Preset. Empty means default.
func ParsePreset(name string) (Preset, error) {
	if name == "" {
		return PresetDefault, nil
	}
	p := Preset(strings.ToLower(name))
	for _, valid := range ValidPresets() {
		if p == valid {
			return p, nil
		}
	}
	return PresetDefault, fmt.Errorf("invalid preset %q, must be one of: %v", name, ValidPresets())
}

// Apply returns a copy of base styled for the preset. The default preset
// returns base unchanged.
func (p Preset) Apply(base Style) Style {
	s := base.Clone()
	if color, ok := presetColors[p]; ok {
		s.Bar.BackgroundColor = color
	}
	return s
}

// Info returns the info preset applied to the default style.
func Info() Style { return PresetInfo.Apply(Default()) }

// Success returns the success preset applied to the default style.
func Success() Style { return PresetSuccess.Apply(Default()) }

// Warning returns the warning preset applied to the default style.
func Warning() Style { return PresetWarning.Apply(Default()) }

// Error returns the error preset applied to the default style.
func Error() Style { return PresetError.Apply(Default()) }
