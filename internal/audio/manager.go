package audio

import (
	"log/slog"
	"os"
	"sync"

	"github.com/jmylchreest/notibar/internal/config"
	"github.com/jmylchreest/notibar/internal/style"
)

// Manager plays the sound configured for each preset.
type Manager struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	player  *Player
	watcher *Watcher
	enabled bool
	sounds  map[style.Preset]string
}

// NewManager creates a manager from cfg. A nil cfg leaves sound disabled.
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	player := NewPlayer(logger)
	m := &Manager{
		logger:  logger,
		player:  player,
		watcher: NewWatcher(player, logger),
		sounds:  make(map[style.Preset]string),
	}
	m.apply(cfg)
	return m
}

func (m *Manager) apply(cfg *config.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.sounds)
	m.enabled = cfg != nil && cfg.Sound.Enabled
	if cfg == nil {
		return
	}
	m.player.SetVolume(float64(cfg.Sound.Volume) / 100)

	for _, p := range style.ValidPresets() {
		path := cfg.SoundForPreset(p)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			m.logger.Warn("sound file not found", "preset", p, "path", path)
			continue
		}
		m.sounds[p] = path
	}
}

// Enabled reports whether sounds are played.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// SoundFor returns the resolved sound file for p, or "".
func (m *Manager) SoundFor(p style.Preset) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sounds[p]
}

// Start preloads the configured sounds and watches them for changes.
func (m *Manager) Start() error {
	if !m.Enabled() {
		return nil
	}
	m.preload()
	if err := m.watcher.Start(); err != nil {
		return err
	}
	m.logger.Info("audio started", "sounds", len(m.sounds))
	return nil
}

func (m *Manager) preload() {
	m.mu.RLock()
	paths := make([]string, 0, len(m.sounds))
	for _, path := range m.sounds {
		paths = append(paths, path)
	}
	m.mu.RUnlock()

	for _, path := range paths {
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "path", path, "error", err)
		}
		m.watcher.Watch(path)
	}
}

// Stop stops the watcher and releases the speaker.
func (m *Manager) Stop() {
	m.watcher.Stop()
	m.player.Close()
}

// PlayPreset plays the sound for p. It is a no-op when sound is disabled
// or p has no sound.
func (m *Manager) PlayPreset(p style.Preset) error {
	m.mu.RLock()
	enabled := m.enabled
	path, ok := m.sounds[p]
	if !ok {
		path, ok = m.sounds[style.PresetDefault]
	}
	m.mu.RUnlock()

	if !enabled || !ok {
		return nil
	}
	return m.player.Play(path)
}

// UpdateConfig applies a reloaded configuration.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.player.ClearCache()
	m.apply(cfg)
	if m.Enabled() {
		m.preload()
	}
	m.logger.Debug("audio config updated")
}
