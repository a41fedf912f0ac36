package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/notibar/internal/config"
	"github.com/jmylchreest/notibar/internal/style"
)

func TestVolumeExponent(t *testing.T) {
	assert.Equal(t, 0.0, volumeExponent(1))
	assert.InDelta(t, -1.0, volumeExponent(0.5), 1e-9)
	assert.InDelta(t, -2.0, volumeExponent(0.25), 1e-9)
	assert.True(t, math.IsInf(volumeExponent(0), -1))
}

func TestPlayer_SetVolumeClamps(t *testing.T) {
	p := NewPlayer(nil)
	assert.Equal(t, 1.0, p.Volume())

	p.SetVolume(1.5)
	assert.Equal(t, 1.0, p.Volume())
	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())
	p.SetVolume(0.3)
	assert.Equal(t, 0.3, p.Volume())
}

func TestPlayer_Errors(t *testing.T) {
	p := NewPlayer(nil)
	assert.NoError(t, p.Play(""))

	err := p.Play(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorContains(t, err, "failed to open sound file")

	text := filepath.Join(t.TempDir(), "beep.txt")
	require.NoError(t, os.WriteFile(text, []byte("not audio"), 0644))
	assert.ErrorContains(t, p.Preload(text), "unsupported audio format")
	assert.False(t, p.Cached(text))
}

func soundConfig(t *testing.T, enabled bool) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	errPath := filepath.Join(dir, "error.flac")
	require.NoError(t, os.WriteFile(errPath, []byte("x"), 0644))

	cfg := config.DefaultConfig()
	cfg.Sound.Enabled = enabled
	cfg.Sound.Volume = 50
	cfg.Sound.Error = errPath
	cfg.Sound.Warning = filepath.Join(dir, "missing.wav")
	return cfg, errPath
}

func TestManager_ResolvesSounds(t *testing.T) {
	cfg, errPath := soundConfig(t, true)
	m := NewManager(cfg, nil)

	assert.True(t, m.Enabled())
	assert.Equal(t, errPath, m.SoundFor(style.PresetError))
	assert.Empty(t, m.SoundFor(style.PresetWarning), "missing files are skipped")
	assert.Equal(t, 0.5, m.player.Volume())
}

func TestManager_PlayPreset(t *testing.T) {
	cfg, _ := soundConfig(t, true)
	m := NewManager(cfg, nil)

	assert.NoError(t, m.PlayPreset(style.PresetInfo), "no sound configured")
	assert.ErrorContains(t, m.PlayPreset(style.PresetError), "unsupported audio format")
}

func TestManager_Disabled(t *testing.T) {
	cfg, _ := soundConfig(t, false)
	m := NewManager(cfg, nil)
	assert.False(t, m.Enabled())
	assert.NoError(t, m.PlayPreset(style.PresetError))
	assert.NoError(t, m.Start())

	assert.NoError(t, NewManager(nil, nil).PlayPreset(style.PresetDefault))
}

func TestManager_UpdateConfig(t *testing.T) {
	cfg, errPath := soundConfig(t, false)
	m := NewManager(cfg, nil)
	assert.NoError(t, m.PlayPreset(style.PresetError))

	cfg.Sound.Enabled = true
	m.UpdateConfig(cfg)
	assert.True(t, m.Enabled())
	assert.Equal(t, errPath, m.SoundFor(style.PresetError))
	assert.True(t, m.watcher.Watching(errPath))
}

func TestWatcher_StartStop(t *testing.T) {
	w := NewWatcher(NewPlayer(nil), nil)
	path := filepath.Join(t.TempDir(), "a.wav")
	w.Watch(path)
	w.Watch("")

	require.NoError(t, w.Start())
	require.NoError(t, w.Start())
	assert.True(t, w.Watching(path))
	assert.False(t, w.Watching("other.wav"))
	w.Stop()
	w.Stop()
}
