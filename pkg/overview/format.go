package overview

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/younsl/pipeview/pkg/snapshot"
)

// Status icons
const (
	IconPause          = "⏸"
	IconPlay           = "▶️"
	IconFailed         = "❌"
	IconSuccess        = "✅"
	IconStop           = "⏹"
	IconPauseToggle    = "⏯"
	IconAllowedFailure = "❕"
	IconFastForward    = "⏩"
	IconAlarm          = "⏰"
	IconUnknown        = "❔"
)

// StatusIcon returns the icon shown next to a pipeline or job.
// A failed job that is allowed to fail gets its own icon.
func StatusIcon(status snapshot.Status, allowFailure bool) string {
	switch status {
	case snapshot.StatusCreated, snapshot.StatusWaitingForResource, snapshot.StatusPreparing, snapshot.StatusPending:
		return IconPause
	case snapshot.StatusRunning:
		return IconPlay
	case snapshot.StatusSuccess:
		return IconSuccess
	case snapshot.StatusFailed:
		if allowFailure {
			return IconAllowedFailure
		}
		return IconFailed
	case snapshot.StatusCanceled:
		return IconStop
	case snapshot.StatusSkipped:
		return IconFastForward
	case snapshot.StatusManual:
		return IconPauseToggle
	case snapshot.StatusScheduled:
		return IconAlarm
	default:
		return IconUnknown
	}
}

// FormatDuration spells out d in whole hours, minutes and seconds,
// e.g. "1 hour 1 minute 1 second". Zero components are left out.
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	if total <= 0 {
		return "not started yet"
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	for _, c := range []struct {
		n    int64
		unit string
	}{
		{hours, "hour"},
		{minutes, "minute"},
		{seconds, "second"},
	} {
		switch c.n {
		case 0:
		case 1:
			parts = append(parts, "1 "+c.unit)
		default:
			parts = append(parts, fmt.Sprintf("%d %ss", c.n, c.unit))
		}
	}
	return strings.Join(parts, " ")
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
