package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type SessionStats struct {
	SessionID string    `json:"sessionId"`
	Layout    string    `json:"layout"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Ticks     int       `json:"ticks"`
	BlockedX  int       `json:"blockedX"`
	BlockedY  int       `json:"blockedY"`
	Distance  float64   `json:"distance"`
	MaxSpeed  float64   `json:"maxSpeed"`
}

// StatsManager accumulates per-session counters. It is owned by the host loop
// and is not safe for concurrent use.
type StatsManager struct {
	stats SessionStats
}

func NewStatsManager(sessionID, layout string) *StatsManager {
	return &StatsManager{
		stats: SessionStats{
			SessionID: sessionID,
			Layout:    layout,
			StartTime: time.Now(),
		},
	}
}

// Record adds one tick's outcome.
func (sm *StatsManager) Record(blockedX, blockedY bool, moved, speed float64) {
	sm.stats.Ticks++
	if blockedX {
		sm.stats.BlockedX++
	}
	if blockedY {
		sm.stats.BlockedY++
	}
	sm.stats.Distance += moved
	if speed > sm.stats.MaxSpeed {
		sm.stats.MaxSpeed = speed
	}
}

func (sm *StatsManager) Stats() SessionStats {
	return sm.stats
}

// StatsFile is where a session's stats land under dataDir.
func StatsFile(dataDir, sessionID string) string {
	return filepath.Join(dataDir, "sessions", sessionID, "stats.json")
}

// SaveStats stamps the end time and writes the stats as indented JSON,
// creating the session directory if needed.
func (sm *StatsManager) SaveStats(filename string) error {
	sm.stats.EndTime = time.Now()

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create stats directory: %w", err)
	}

	data, err := json.MarshalIndent(sm.stats, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

func LoadStats(filename string) (SessionStats, error) {
	var stats SessionStats
	data, err := os.ReadFile(filename)
	if err != nil {
		return stats, err
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return stats, fmt.Errorf("decode %s: %w", filename, err)
	}
	return stats, nil
}
