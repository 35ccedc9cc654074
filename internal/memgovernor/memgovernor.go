// Package memgovernor samples resident memory before each batch and adapts
// the next batch size in response: if usage crosses a threshold, it
// triggers a cleanup and halves the next batch size down to a floor, and
// forces a periodic unconditional cleanup every few batches regardless of
// pressure.
package memgovernor

import (
	"runtime"
	"runtime/debug"
	"sync"
	"time"
)

const (
	// minBatchSize is the floor batch size halving will not cross.
	minBatchSize = 2
	// maxHistory bounds the retained usage samples for diagnostics.
	maxHistory = 100
	// defaultCleanupInterval forces an unconditional cleanup every N
	// batches even without memory pressure.
	defaultCleanupInterval = 5
	// defaultThreshold triggers cleanup when resident memory crosses this
	// fraction of the configured limit.
	defaultThreshold = 0.95
)

// Sample is one resident-memory reading, retained for diagnostics.
type Sample struct {
	Time      time.Time
	ResidentMB float64
	BatchSize int
	CleanedUp bool
}

// Governor tracks memory pressure across batches and proposes the next
// batch size.
type Governor struct {
	mu              sync.Mutex
	limitBytes      uint64
	threshold       float64
	cleanupInterval int
	batchesSinceClean int
	history         []Sample
}

// New creates a Governor with a memory limit in GiB. A zero or negative
// limit disables the threshold check (only the periodic unconditional
// cleanup still fires).
func New(memoryLimitGiB float64) *Governor {
	var limitBytes uint64
	if memoryLimitGiB > 0 {
		limitBytes = uint64(memoryLimitGiB * 1024 * 1024 * 1024)
	}
	return &Governor{
		limitBytes:      limitBytes,
		threshold:       defaultThreshold,
		cleanupInterval: defaultCleanupInterval,
	}
}

// residentBytes reports the process's current resident memory via the Go
// runtime's heap stats, the idiomatic in-process analogue of reading
// /proc or psutil.Process().memory_info().rss.
func residentBytes() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Sys
}

// NextBatchSize samples current memory usage and returns the batch size the
// caller should use next, along with whether a cleanup was triggered this
// call. currentBatchSize is the size just used (or the configured default
// on the first call).
func (g *Governor) NextBatchSize(currentBatchSize int) (next int, cleaned bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	resident := residentBytes()
	g.batchesSinceClean++

	overThreshold := g.limitBytes > 0 && float64(resident) >= g.threshold*float64(g.limitBytes)
	forced := g.batchesSinceClean >= g.cleanupInterval

	next = currentBatchSize
	if overThreshold {
		g.cleanup()
		next = halve(currentBatchSize)
		cleaned = true
	} else if forced {
		g.cleanup()
		cleaned = true
	}

	g.recordLocked(resident, next, cleaned)
	return next, cleaned
}

func (g *Governor) cleanup() {
	debug.FreeOSMemory()
	g.batchesSinceClean = 0
}

func halve(batchSize int) int {
	next := batchSize / 2
	if next < minBatchSize {
		return minBatchSize
	}
	return next
}

func (g *Governor) recordLocked(residentBytes uint64, batchSize int, cleaned bool) {
	sample := Sample{
		Time:       time.Now(),
		ResidentMB: float64(residentBytes) / (1024 * 1024),
		BatchSize:  batchSize,
		CleanedUp:  cleaned,
	}
	g.history = append(g.history, sample)
	if len(g.history) > maxHistory {
		g.history = g.history[len(g.history)-maxHistory:]
	}
}

// History returns a copy of the retained usage samples, oldest first.
func (g *Governor) History() []Sample {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Sample, len(g.history))
	copy(out, g.history)
	return out
}
