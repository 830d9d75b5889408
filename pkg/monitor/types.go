package monitor

import (
	"time"
)

// RefreshProgress describes the refresh cycle shown in the status bar.
type RefreshProgress struct {
	State        string // "Idle", "Refreshing", "Completed", "Failed"
	CycleCount   int
	LastError    string
	LastDuration time.Duration

	// Timer information
	LastRefreshAt *time.Time // Last successful refresh
	NextRefreshAt *time.Time // Next refresh scheduled time
	Countdown     int        // Seconds until next refresh

	// State duration tracking
	CurrentStateStart *time.Time
	StateDuration     int // Seconds since current state started
}

// Refresh states
const (
	StateIdle       = "Idle"
	StateRefreshing = "Refreshing"
	StateCompleted  = "Completed"
	StateFailed     = "Failed"
)
