package snapshot

import (
	"errors"
	"fmt"
)

var ErrUnknownStatus = errors.New("unknown pipeline status")

// Status is the state of a pipeline or job.
type Status int

const (
	StatusCreated Status = iota
	StatusWaitingForResource
	StatusPreparing
	StatusPending
	StatusRunning
	StatusSuccess
	StatusFailed
	StatusCanceled
	StatusSkipped
	StatusManual
	StatusScheduled
)

var statusNames = map[Status]string{
	StatusCreated:            "created",
	StatusWaitingForResource: "waiting_for_resource",
	StatusPreparing:          "preparing",
	StatusPending:            "pending",
	StatusRunning:            "running",
	StatusSuccess:            "success",
	StatusFailed:             "failed",
	StatusCanceled:           "canceled",
	StatusSkipped:            "skipped",
	StatusManual:             "manual",
	StatusScheduled:          "scheduled",
}

var statusLabels = map[Status]string{
	StatusCreated:            "created",
	StatusWaitingForResource: "waiting for resource",
	StatusPreparing:          "preparing",
	StatusPending:            "pending",
	StatusRunning:            "running",
	StatusSuccess:            "passed",
	StatusFailed:             "failed",
	StatusCanceled:           "canceled",
	StatusSkipped:            "skipped",
	StatusManual:             "manual",
	StatusScheduled:          "scheduled",
}

// ParseStatus converts the wire name used by the GitLab API.
func ParseStatus(name string) (Status, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// String returns the wire name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Label returns a short human readable description of the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}
	return []byte(name), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}
