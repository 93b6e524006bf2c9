package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// HistoryGroupSize is how many records of one compression level fold into a
// single record of the next level.
const HistoryGroupSize = 100

// SessionRecord summarises one session, or a group of sessions once compressed.
type SessionRecord struct {
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	CompressionIndex int       `json:"compressionIndex"` // 0 for a single session
	SessionCount     int       `json:"sessionCount"`
	AverageDistance  float64   `json:"averageDistance"`
	MaxDistance      float64   `json:"maxDistance"`
	MinDistance      float64   `json:"minDistance"`
	AverageDuration  float64   `json:"averageDuration"` // seconds
	MaxDuration      float64   `json:"maxDuration"`
	MinDuration      float64   `json:"minDuration"`
	MaxSpeed         float64   `json:"maxSpeed"`
}

// HistoryManager keeps the summaries of every past session in one file,
// folding old records into groups so the file stays small.
type HistoryManager struct {
	filename  string
	groupSize int
	records   []SessionRecord
	mutex     sync.RWMutex
}

func HistoryFile(dataDir string) string {
	return filepath.Join(dataDir, "history.json")
}

// NewHistoryManager loads filename if it exists and starts empty otherwise.
func NewHistoryManager(filename string, groupSize int) (*HistoryManager, error) {
	if groupSize < 2 {
		groupSize = HistoryGroupSize
	}
	hm := &HistoryManager{
		filename:  filename,
		groupSize: groupSize,
		records:   make([]SessionRecord, 0),
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return hm, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if err := json.Unmarshal(data, &hm.records); err != nil {
		return nil, fmt.Errorf("failed to parse history %s: %w", filename, err)
	}
	return hm, nil
}

// Add records a finished session and compresses the history.
func (hm *HistoryManager) Add(stats SessionStats) {
	hm.mutex.Lock()
	defer hm.mutex.Unlock()

	duration := stats.EndTime.Sub(stats.StartTime).Seconds()
	hm.records = append(hm.records, SessionRecord{
		StartTime:       stats.StartTime,
		EndTime:         stats.EndTime,
		SessionCount:    1,
		AverageDistance: stats.Distance,
		MaxDistance:     stats.Distance,
		MinDistance:     stats.Distance,
		AverageDuration: duration,
		MaxDuration:     duration,
		MinDuration:     duration,
		MaxSpeed:        stats.MaxSpeed,
	})
	hm.compress()
}

func (hm *HistoryManager) compress() {
	sort.SliceStable(hm.records, func(i, j int) bool {
		if hm.records[i].CompressionIndex != hm.records[j].CompressionIndex {
			return hm.records[i].CompressionIndex < hm.records[j].CompressionIndex
		}
		return hm.records[i].StartTime.Before(hm.records[j].StartTime)
	})

	for level := 0; ; level++ {
		var current, rest []SessionRecord
		for _, r := range hm.records {
			if r.CompressionIndex == level {
				current = append(current, r)
			} else {
				rest = append(rest, r)
			}
		}
		if len(current) < hm.groupSize {
			return
		}

		var folded []SessionRecord
		for i := 0; i < len(current); i += hm.groupSize {
			end := i + hm.groupSize
			if end > len(current) {
				folded = append(folded, current[i:]...)
				break
			}
			folded = append(folded, foldRecords(current[i:end], level+1))
		}
		hm.records = append(rest, folded...)
	}
}

func foldRecords(group []SessionRecord, level int) SessionRecord {
	out := group[0]
	out.CompressionIndex = level
	out.SessionCount = 0

	var totalDistance, totalDuration float64
	for _, r := range group {
		out.MaxDistance = max(out.MaxDistance, r.MaxDistance)
		out.MinDistance = min(out.MinDistance, r.MinDistance)
		out.MaxDuration = max(out.MaxDuration, r.MaxDuration)
		out.MinDuration = min(out.MinDuration, r.MinDuration)
		out.MaxSpeed = max(out.MaxSpeed, r.MaxSpeed)
		if r.StartTime.Before(out.StartTime) {
			out.StartTime = r.StartTime
		}
		if r.EndTime.After(out.EndTime) {
			out.EndTime = r.EndTime
		}
		totalDistance += r.AverageDistance * float64(r.SessionCount)
		totalDuration += r.AverageDuration * float64(r.SessionCount)
		out.SessionCount += r.SessionCount
	}
	out.AverageDistance = totalDistance / float64(out.SessionCount)
	out.AverageDuration = totalDuration / float64(out.SessionCount)
	return out
}

func (hm *HistoryManager) Records() []SessionRecord {
	hm.mutex.RLock()
	defer hm.mutex.RUnlock()

	return append([]SessionRecord(nil), hm.records...)
}

// SessionsPlayed counts sessions across every compression level.
func (hm *HistoryManager) SessionsPlayed() int {
	hm.mutex.RLock()
	defer hm.mutex.RUnlock()

	total := 0
	for _, r := range hm.records {
		total += r.SessionCount
	}
	return total
}

// AverageDistance is the distance travelled per session, weighted by group size.
func (hm *HistoryManager) AverageDistance() float64 {
	hm.mutex.RLock()
	defer hm.mutex.RUnlock()

	var total float64
	var sessions int
	for _, r := range hm.records {
		total += r.AverageDistance * float64(r.SessionCount)
		sessions += r.SessionCount
	}
	if sessions == 0 {
		return 0
	}
	return total / float64(sessions)
}

func (hm *HistoryManager) Save() error {
	hm.mutex.RLock()
	defer hm.mutex.RUnlock()

	if err := os.MkdirAll(filepath.Dir(hm.filename), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.Marshal(hm.records)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(hm.filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
