package main

import (
	"log"
	"sync"
	"time"
)

// LogRateTracker tracks log records received per second
type LogRateTracker struct {
	mu             sync.RWMutex
	recordCounts   map[int64]int // Map of timestamp (seconds) to record count
	startTime      time.Time
	totalRecords   int
	lastReportTime time.Time
	reportInterval time.Duration
}

func NewLogRateTracker() *LogRateTracker {
	return &LogRateTracker{
		recordCounts:   make(map[int64]int),
		startTime:      time.Now(),
		lastReportTime: time.Now(),
		reportInterval: 5 * time.Second,
	}
}

// TrackRecords adds record count to the current second
func (t *LogRateTracker) TrackRecords(count int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.recordCounts[now.Unix()] += count
	t.totalRecords += count

	if now.Sub(t.lastReportTime) >= t.reportInterval {
		t.reportStats()
		t.lastReportTime = now
	}
}

// GetCurrentRate returns the average records/second over the last n seconds
func (t *LogRateTracker) GetCurrentRate(seconds int) float64 {
	now := time.Now()
	cutoff := now.Add(-time.Duration(seconds) * time.Second).Unix()

	var total int
	for ts, count := range t.recordCounts {
		if ts >= cutoff {
			total += count
		}
	}

	// If we have less than n seconds of data, use what we have
	actualSeconds := int64(seconds)
	elapsedSeconds := now.Unix() - t.startTime.Unix()
	if elapsedSeconds < int64(seconds) {
		actualSeconds = elapsedSeconds
		if actualSeconds == 0 {
			actualSeconds = 1 // Avoid division by zero
		}
	}

	return float64(total) / float64(actualSeconds)
}

// reportStats logs the current rate statistics
func (t *LogRateTracker) reportStats() {
	rate1s := t.GetCurrentRate(1)
	rate10s := t.GetCurrentRate(10)
	rate60s := t.GetCurrentRate(60)

	log.Printf("Records per second: %.2f (1s) | %.2f (10s) | %.2f (60s) | Total: %d",
		rate1s, rate10s, rate60s, t.totalRecords)
}
