package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/notibar/internal/config"
	"github.com/jmylchreest/notibar/internal/history"
	"github.com/jmylchreest/notibar/internal/style"
)

func TestPreviewCanvas(t *testing.T) {
	c := config.DefaultConfig()

	canvas, err := previewCanvas(c, "Saved", style.PresetSuccess, 40, 8, false)
	require.NoError(t, err)
	assert.Equal(t, 40, canvas.Width())
	assert.Equal(t, 8, canvas.Height())

	lines := strings.Split(canvas.Plain(), "\n")
	require.Len(t, lines, 8)
	row := -1
	for i, line := range lines {
		if strings.Contains(line, "Saved") {
			row = i
		}
	}
	assert.Greater(t, row, 3, "bottom bar should be drawn in the lower half")
}

func TestPreviewCanvas_Top(t *testing.T) {
	c := config.DefaultConfig()
	c.Bar.Location = config.LocationTop

	canvas, err := previewCanvas(c, "Saved", style.PresetDefault, 40, 8, true)
	require.NoError(t, err)

	lines := strings.Split(canvas.Plain(), "\n")
	row := -1
	for i, line := range lines {
		if strings.Contains(line, "Saved") {
			row = i
			break
		}
	}
	assert.GreaterOrEqual(t, row, 0)
	assert.Less(t, row, 4)
}

func TestPreviewCanvas_Errors(t *testing.T) {
	_, err := previewCanvas(config.DefaultConfig(), "x", style.PresetDefault, 0, 10, false)
	assert.Error(t, err)

	c := config.DefaultConfig()
	c.Bar.Location = "middle"
	_, err = previewCanvas(c, "x", style.PresetDefault, 40, 8, false)
	assert.ErrorContains(t, err, "invalid location")
}

func TestReadHistoryFile(t *testing.T) {
	dir := t.TempDir()

	entries, err := readHistoryFile(filepath.Join(dir, "missing.jsonl"), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	path := filepath.Join(dir, "history.jsonl")
	p, err := history.NewJSONLPersistence(path)
	require.NoError(t, err)
	store := history.NewStore(10, p)
	e, err := history.NewEntry("Saved", string(style.PresetSuccess), "test")
	require.NoError(t, err)
	require.NoError(t, store.Add(e))
	require.NoError(t, store.Close())

	entries, err = readHistoryFile(path, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Saved", entries[0].Message)
	assert.Equal(t, string(style.PresetSuccess), entries[0].Preset)
}
