// Package monitor runs the refresh cycle: discover the local repository,
// scan its forge project and render a frame.
package monitor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/younsl/pipeview/pkg/git"
	"github.com/younsl/pipeview/pkg/overview"
	"github.com/younsl/pipeview/pkg/scanner"
	"github.com/younsl/pipeview/pkg/snapshot"
	"github.com/zeebo/xxh3"
)

const (
	DefaultRefreshTimeout = 60 * time.Second
	SleepTick             = 50 * time.Millisecond
)

type Options struct {
	Runner   git.Runner
	Dir      string
	Remote   string
	Scanner  scanner.Scanner
	Cooldown time.Duration
}

type Monitor struct {
	runner   git.Runner
	dir      string
	remote   string
	scanner  scanner.Scanner
	cooldown time.Duration

	progressTracker *ProgressTracker
	now             func() time.Time

	mu   sync.RWMutex
	repo *git.Repository
}

func NewMonitor(opts Options) *Monitor {
	runner := opts.Runner
	if runner == nil {
		runner = &git.ExecRunner{}
	}
	return &Monitor{
		runner:          runner,
		dir:             opts.Dir,
		remote:          opts.Remote,
		scanner:         opts.Scanner,
		cooldown:        opts.Cooldown,
		progressTracker: NewProgressTracker(),
		now:             time.Now,
	}
}

func (m *Monitor) GetProgressTracker() *ProgressTracker {
	return m.progressTracker
}

func (m *Monitor) Cooldown() time.Duration {
	return m.cooldown
}

// Repository returns the repository of the last refresh, nil before the first one.
func (m *Monitor) Repository() *git.Repository {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.repo
}

// Snapshot discovers the repository again, so branch switches and new commits
// are picked up, and scans its pipelines.
func (m *Monitor) Snapshot(ctx context.Context) (*snapshot.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultRefreshTimeout)
	defer cancel()

	m.progressTracker.SetRefreshing()
	start := time.Now()

	project, err := m.snapshot(ctx)
	if err != nil {
		m.progressTracker.SetFailed(err)
		slog.Warn("refresh failed", "error", err)
		return nil, err
	}

	m.progressTracker.SetCompleted(time.Since(start))
	slog.Info("refresh completed",
		"project", project.Name,
		"pipelines", len(project.Pipelines),
		"duration", time.Since(start))
	return project, nil
}

func (m *Monitor) snapshot(ctx context.Context) (*snapshot.Project, error) {
	repo, err := git.Discover(ctx, m.runner, m.dir, m.remote)
	if err != nil {
		return nil, fmt.Errorf("failed to discover repository: %w", err)
	}

	m.mu.Lock()
	m.repo = repo
	m.mu.Unlock()

	return m.scanner.Scan(ctx, repo)
}

// Frame refreshes and renders the result, or the error, at width.
func (m *Monitor) Frame(ctx context.Context, width int) string {
	project, err := m.Snapshot(ctx)
	if err != nil {
		return overview.ErrorFrame(err, width)
	}

	frame, err := overview.Render(project, width, m.now())
	if err != nil {
		return overview.ErrorFrame(err, width)
	}
	return frame
}

// Run redraws out every cooldown until ctx is cancelled. width is asked
// before every frame so terminal resizes are followed.
func (m *Monitor) Run(ctx context.Context, out io.Writer, width func() int) error {
	output := termenv.NewOutput(out)
	output.AltScreen()
	output.HideCursor()
	defer func() {
		output.ShowCursor()
		output.ExitAltScreen()
	}()

	var last uint64
	for cycle := 0; ; cycle++ {
		frame := m.Frame(ctx, width())
		if ctx.Err() != nil {
			return nil
		}

		// Identical frames are not redrawn to avoid flicker.
		if sum := xxh3.HashString(frame); cycle == 0 || sum != last {
			last = sum
			output.ClearScreen()
			if _, err := io.WriteString(out, frame); err != nil {
				return fmt.Errorf("failed to write frame: %w", err)
			}
		} else {
			slog.Debug("frame unchanged, skipping redraw")
		}

		m.progressTracker.SetNextRefresh(time.Now().Add(m.cooldown))
		if !Sleep(ctx, m.cooldown, SleepTick) {
			return nil
		}
	}
}

// Sleep waits for total in steps of at most tick and reports whether the
// full duration passed. It returns false as soon as ctx is done.
func Sleep(ctx context.Context, total, tick time.Duration) bool {
	if tick <= 0 {
		tick = total
	}
	deadline := time.Now().Add(total)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ctx.Err() == nil
		}

		timer := time.NewTimer(min(tick, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}
