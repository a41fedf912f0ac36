// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/notibar/internal/animation"
	"github.com/jmylchreest/notibar/internal/button"
	"github.com/jmylchreest/notibar/internal/style"
)

// Location values for the bar.
const (
	LocationTop    = "top"
	LocationBottom = "bottom"
)

// Config represents the notibar configuration.
type Config struct {
	Bar     BarConfig     `toml:"bar" yaml:"bar"`
	Label   LabelConfig   `toml:"label" yaml:"label"`
	Buttons ButtonsConfig `toml:"buttons" yaml:"buttons"`
	Sound   SoundConfig   `toml:"sound" yaml:"sound"`
	DBus    DBusConfig    `toml:"dbus" yaml:"dbus"`
	History HistoryConfig `toml:"history" yaml:"history"`
}

// BarConfig holds the appearance and behaviour of the bar container.
type BarConfig struct {
	Background    string   `toml:"background" yaml:"background"`
	CornerRadius  int      `toml:"corner_radius" yaml:"corner_radius"`
	BorderColor   string   `toml:"border_color" yaml:"border_color"` // Empty = no border
	BorderWidth   int      `toml:"border_width" yaml:"border_width"`
	MarginWidth   int      `toml:"margin_width" yaml:"margin_width"`
	MarginHeight  int      `toml:"margin_height" yaml:"margin_height"`
	Location      string   `toml:"location" yaml:"location"` // "top" or "bottom"
	Debug         bool     `toml:"debug" yaml:"debug"`
	AnimationShow string   `toml:"animation_show" yaml:"animation_show"`
	AnimationHide string   `toml:"animation_hide" yaml:"animation_hide"`
	ShowDuration  Duration `toml:"show_duration" yaml:"show_duration"`
	HideDuration  Duration `toml:"hide_duration" yaml:"hide_duration"`
	HideAfter     Duration `toml:"hide_after" yaml:"hide_after"` // 0 = stay until hidden
	HideOnTap     bool     `toml:"hide_on_tap" yaml:"hide_on_tap"`
}

// LabelConfig holds the message label settings.
type LabelConfig struct {
	Color       string `toml:"color" yaml:"color"`
	Lines       int    `toml:"lines" yaml:"lines"` // 0 = unlimited
	Margin      int    `toml:"margin" yaml:"margin"`
	ShadowColor string `toml:"shadow_color" yaml:"shadow_color"`
	ShadowX     int    `toml:"shadow_x" yaml:"shadow_x"`
	ShadowY     int    `toml:"shadow_y" yaml:"shadow_y"`
	Bold        bool   `toml:"bold" yaml:"bold"`
	Italic      bool   `toml:"italic" yaml:"italic"`
}

// ButtonsConfig holds the optional side buttons. Either both or neither
// must be set.
type ButtonsConfig struct {
	Left  *ButtonConfig `toml:"left,omitempty" yaml:"left,omitempty"`
	Right *ButtonConfig `toml:"right,omitempty" yaml:"right,omitempty"`
}

// ButtonConfig describes one side button.
type ButtonConfig struct {
	Icon      string `toml:"icon" yaml:"icon"` // "close", "reload" or "none"
	Text      string `toml:"text" yaml:"text"` // Drawn instead of the icon when set
	Label     string `toml:"label" yaml:"label"`
	Tint      string `toml:"tint" yaml:"tint"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Margin    int    `toml:"margin" yaml:"margin"`
	HideOnTap bool   `toml:"hide_on_tap" yaml:"hide_on_tap"`
}

// SoundConfig holds per-preset sound file paths.
type SoundConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Volume  int    `toml:"volume" yaml:"volume"` // 0-100
	Default string `toml:"default" yaml:"default"`
	Info    string `toml:"info" yaml:"info"`
	Success string `toml:"success" yaml:"success"`
	Warning string `toml:"warning" yaml:"warning"`
	Error   string `toml:"error" yaml:"error"`
}

// DBusConfig holds the session bus service settings.
type DBusConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// HistoryConfig holds history settings.
type HistoryConfig struct {
	Limit   int  `toml:"limit" yaml:"limit"`
	Persist bool `toml:"persist" yaml:"persist"` // Keep history across runs in DataPath
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Bar: BarConfig{
			Background:    "#333333",
			MarginWidth:   2,
			MarginHeight:  1,
			Location:      LocationBottom,
			AnimationShow: string(animation.KindSlideVertically),
			AnimationHide: string(animation.KindSlideVertically),
			ShowDuration:  Duration(300 * time.Millisecond),
			HideDuration:  Duration(300 * time.Millisecond),
			HideAfter:     Duration(4 * time.Second),
		},
		Label: LabelConfig{
			Color:  "#FFFFFF",
			Lines:  3,
			Margin: 1,
		},
		Sound: SoundConfig{
			Enabled: false,
			Volume:  80,
		},
		DBus: DBusConfig{
			Enabled: true,
		},
		History: HistoryConfig{
			Limit:   200,
			Persist: true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notibar", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "notibar")
}

// StatePath returns the path to the state directory, used for logs.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state.
func StatePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "notibar")
}

// HistoryPath returns the path to the history JSONL file.
func HistoryPath() string {
	return filepath.Join(DataPath(), "history.jsonl")
}

// LogPath returns the path to the log file used while the TUI owns the
// terminal.
func LogPath() string {
	return filepath.Join(StatePath(), "notibar.log")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist. Files ending in .yaml or
// .yml are parsed as YAML, everything else as TOML.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML, or YAML when asYAML is set.
func (c *Config) Marshal(asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(c)
	}
	return toml.Marshal(c)
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal(isYAML(path))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Bar.Location != LocationTop && c.Bar.Location != LocationBottom {
		return fmt.Errorf("invalid location %q, must be %q or %q", c.Bar.Location, LocationTop, LocationBottom)
	}

	colors := map[string]string{
		"bar.background":     c.Bar.Background,
		"bar.border_color":   c.Bar.BorderColor,
		"label.color":        c.Label.Color,
		"label.shadow_color": c.Label.ShadowColor,
	}
	for name, value := range colors {
		if err := validateColor(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	for name, value := range map[string]int{
		"bar.corner_radius": c.Bar.CornerRadius,
		"bar.border_width":  c.Bar.BorderWidth,
		"bar.margin_width":  c.Bar.MarginWidth,
		"bar.margin_height": c.Bar.MarginHeight,
		"label.lines":       c.Label.Lines,
		"label.margin":      c.Label.Margin,
	} {
		if value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, value)
		}
	}

	for name, value := range map[string]Duration{
		"bar.show_duration": c.Bar.ShowDuration,
		"bar.hide_duration": c.Bar.HideDuration,
		"bar.hide_after":    c.Bar.HideAfter,
	} {
		if value < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, value.Duration())
		}
	}

	if _, err := animation.ParseKind(c.Bar.AnimationShow); err != nil {
		return fmt.Errorf("bar.animation_show: %w", err)
	}
	if _, err := animation.ParseKind(c.Bar.AnimationHide); err != nil {
		return fmt.Errorf("bar.animation_hide: %w", err)
	}

	if (c.Buttons.Left == nil) != (c.Buttons.Right == nil) {
		return errors.New("buttons: configure both left and right buttons or neither")
	}
	for side, b := range map[string]*ButtonConfig{"left": c.Buttons.Left, "right": c.Buttons.Right} {
		if b == nil {
			continue
		}
		if _, err := button.ParseIcon(b.Icon); err != nil {
			return fmt.Errorf("buttons.%s: %w", side, err)
		}
		if err := validateColor(b.Tint); err != nil {
			return fmt.Errorf("buttons.%s.tint: %w", side, err)
		}
		if b.Width < 0 || b.Height < 0 || b.Margin < 0 {
			return fmt.Errorf("buttons.%s: size and margin must not be negative", side)
		}
	}

	if c.Sound.Volume < 0 || c.Sound.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Sound.Volume)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	return nil
}

// validateColor accepts an empty value, a hex color or an ANSI index.
func validateColor(value string) error {
	if value == "" {
		return nil
	}
	if strings.HasPrefix(value, "#") {
		if _, err := colorful.Hex(value); err != nil {
			return fmt.Errorf("invalid hex color %q", value)
		}
		return nil
	}
	if n, err := strconv.Atoi(value); err != nil || n < 0 || n > 255 {
		return fmt.Errorf("invalid color %q, must be #RRGGBB or an ANSI index 0-255", value)
	}
	return nil
}

// SoundForPreset returns the sound file path for the given preset.
// Expands ~ to home directory.
func (c *Config) SoundForPreset(p style.Preset) string {
	var path string
	switch p {
	case style.PresetInfo:
		path = c.Sound.Info
	case style.PresetSuccess:
		path = c.Sound.Success
	case style.PresetWarning:
		path = c.Sound.Warning
	case style.PresetError:
		path = c.Sound.Error
	default:
		path = c.Sound.Default
	}
	return ExpandPath(path)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
