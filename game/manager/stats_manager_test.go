package manager

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsManagerRecord(t *testing.T) {
	sm := NewStatsManager("session-1", "classic")

	sm.Record(true, false, 1.5, 2)
	sm.Record(false, true, 0.5, 3)
	sm.Record(true, true, 0, 1)

	stats := sm.Stats()
	assert.Equal(t, 3, stats.Ticks)
	assert.Equal(t, 2, stats.BlockedX)
	assert.Equal(t, 2, stats.BlockedY)
	assert.InDelta(t, 2.0, stats.Distance, 1e-9)
	assert.Equal(t, 3.0, stats.MaxSpeed)
}

func TestStatsManagerSaveLoad(t *testing.T) {
	dir := t.TempDir()
	sm := NewStatsManager("abc", "generated")
	sm.Record(false, false, 4, 4)

	filename := StatsFile(dir, "abc")
	assert.Equal(t, filepath.Join(dir, "sessions", "abc", "stats.json"), filename)
	require.NoError(t, sm.SaveStats(filename))

	loaded, err := LoadStats(filename)
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.SessionID)
	assert.Equal(t, "generated", loaded.Layout)
	assert.Equal(t, 1, loaded.Ticks)
	assert.False(t, loaded.EndTime.Before(loaded.StartTime))

	_, err = LoadStats(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
