// internal/progress/reporter.go
package progress

import (
	"sync"
	"time"

	"github.com/bstardust/photo-evidence/internal/logger"
)

// Reporter tracks and reports per-photo processing progress.
type Reporter struct {
	mu             sync.Mutex
	total          int
	completed      int
	skipped        int
	startTime      time.Time
	lastUpdateTime time.Time
	updateInterval time.Duration
}

// New creates a progress reporter.
func New() *Reporter {
	return &Reporter{
		updateInterval: 2 * time.Second,
	}
}

// Start initializes the reporter with the number of photos found.
func (r *Reporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = total
	r.completed = 0
	r.skipped = 0
	r.startTime = time.Now()
	r.lastUpdateTime = time.Now()

	logger.Info("Processing %d photos", total)
}

// Complete marks a photo as turned into a report record.
func (r *Reporter) Complete(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.completed++
	logger.Info("  processed: %s", path)
	r.updateProgress()
}

// Skip marks a photo as dropped, with the reason.
func (r *Reporter) Skip(path string, reason error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.skipped++
	logger.Warn("  skipped %s: %v", path, reason)
	r.updateProgress()
}

// Finish logs the final summary.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	duration := time.Since(r.startTime)

	logger.Info("Done: %d/%d photos processed, %d skipped in %s",
		r.completed, r.total, r.skipped, duration.Round(time.Second))
}

// Completed returns how many photos produced a record so far.
func (r *Reporter) Completed() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.completed
}

// updateProgress prints an interim progress line at most every
// updateInterval.
func (r *Reporter) updateProgress() {
	now := time.Now()
	if now.Sub(r.lastUpdateTime) < r.updateInterval {
		return
	}

	r.lastUpdateTime = now
	processed := r.completed + r.skipped
	if processed == 0 || r.total == 0 {
		return
	}

	percentage := float64(processed) / float64(r.total) * 100
	logger.Info("Progress: %.1f%% (%d/%d, %d processed, %d skipped)",
		percentage, processed, r.total, r.completed, r.skipped)
}
