package tui

import (
	"time"

	"github.com/younsl/pipeview/pkg/snapshot"
)

// Messages for Bubble Tea
type (
	snapshotMsg struct{ project *snapshot.Project }
	errorMsg    struct{ err error }
	tickMsg     time.Time
	// refreshMsg of an older generation is dropped, so a manual refresh
	// does not leave a second timer running.
	refreshMsg    struct{ generation int }
	openResultMsg struct{ err error }
	copyResultMsg struct {
		url string
		err error
	}
)
