package snapshot

import (
	"time"
)

// Project is one poll result: the project and its selected pipelines.
type Project struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	WebURL      string         `json:"web_url"`
	Description string         `json:"description,omitempty"` // empty when the project has none
	Pipelines   []PipelineJobs `json:"pipelines"`
}

// PipelineJobs pairs a pipeline with its jobs in the order the forge returned them.
type PipelineJobs struct {
	Pipeline Pipeline `json:"pipeline"`
	Jobs     []Job    `json:"jobs"`
}

// Pipeline represents one execution of the project's CI configuration
type Pipeline struct {
	ID        int64          `json:"id"`
	Ref       string         `json:"ref,omitempty"` // empty when the forge reports none
	SHA       string         `json:"sha"`
	WebURL    string         `json:"web_url"`
	Author    string         `json:"author"`
	Status    Status         `json:"status"`
	Label     string         `json:"label,omitempty"`    // human readable status, e.g. "passed"
	Duration  *time.Duration `json:"duration,omitempty"` // nil until the pipeline has run
	Coverage  *float64       `json:"coverage,omitempty"` // percent
	CreatedAt *time.Time     `json:"created_at,omitempty"`
}

// Job represents a single job of a pipeline
type Job struct {
	Name         string         `json:"name"`
	Stage        string         `json:"stage"`
	Status       Status         `json:"status"`
	AllowFailure bool           `json:"allow_failure"`
	Duration     *time.Duration `json:"duration,omitempty"`
	Runner       string         `json:"runner,omitempty"` // empty when no runner picked the job up
	Coverage     *float64       `json:"coverage,omitempty"`
	Artifacts    []string       `json:"artifacts,omitempty"`
}

// StatusLabel returns the forge label or, when there is none, a label derived from the status.
func (p Pipeline) StatusLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Status.Label()
}
