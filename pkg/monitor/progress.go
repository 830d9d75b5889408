package monitor

import (
	"math"
	"sync"
	"time"
)

type ProgressTracker struct {
	mu       sync.RWMutex
	progress RefreshProgress
	now      func() time.Time
}

func NewProgressTracker() *ProgressTracker {
	return newProgressTracker(time.Now)
}

func newProgressTracker(now func() time.Time) *ProgressTracker {
	start := now()
	return &ProgressTracker{
		progress: RefreshProgress{
			State:             StateIdle,
			CurrentStateStart: &start,
		},
		now: now,
	}
}

func (pt *ProgressTracker) GetProgress() RefreshProgress {
	pt.mu.RLock()
	defer pt.mu.RUnlock()
	return pt.progress
}

// setState must be called with the lock held.
func (pt *ProgressTracker) setState(state string) {
	if pt.progress.State != state {
		now := pt.now()
		pt.progress.CurrentStateStart = &now
		pt.progress.StateDuration = 0
	}
	pt.progress.State = state
}

// SetRefreshing starts a new cycle.
func (pt *ProgressTracker) SetRefreshing() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.progress.CycleCount++
	pt.progress.NextRefreshAt = nil
	pt.progress.Countdown = 0
	pt.setState(StateRefreshing)
}

func (pt *ProgressTracker) SetCompleted(duration time.Duration) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	now := pt.now()
	pt.progress.LastRefreshAt = &now
	pt.progress.LastDuration = duration
	pt.progress.LastError = ""
	pt.setState(StateCompleted)
}

// SetFailed records err; the last successful refresh time is kept.
func (pt *ProgressTracker) SetFailed(err error) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.progress.LastError = err.Error()
	pt.setState(StateFailed)
}

func (pt *ProgressTracker) SetNextRefresh(nextRefreshAt time.Time) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.progress.NextRefreshAt = &nextRefreshAt
	pt.progress.Countdown = secondsUntil(pt.now(), nextRefreshAt)
}

// UpdateCountdown recomputes the countdown and the state duration.
func (pt *ProgressTracker) UpdateCountdown() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	now := pt.now()
	if pt.progress.NextRefreshAt != nil {
		pt.progress.Countdown = secondsUntil(now, *pt.progress.NextRefreshAt)
	}
	if pt.progress.CurrentStateStart != nil {
		pt.progress.StateDuration = max(0, int(now.Sub(*pt.progress.CurrentStateStart).Seconds()))
	}
}

// secondsUntil rounds up so the countdown reaches 0 only when the time is due.
func secondsUntil(now, at time.Time) int {
	return max(0, int(math.Ceil(at.Sub(now).Seconds())))
}
