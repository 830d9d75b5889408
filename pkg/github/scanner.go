// Package github builds dashboard snapshots from GitHub Actions workflow runs.
// A workflow run is shown as a pipeline and its jobs are grouped into stages
// by the prefix of their names.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/younsl/pipeview/pkg/git"
	"github.com/younsl/pipeview/pkg/snapshot"
	"golang.org/x/sync/errgroup"
)

type Scanner struct {
	client       *Client
	runningLimit int
}

// NewScanner returns a scanner that shows the latest run of a branch plus up
// to runningLimit other runs in progress.
func NewScanner(client *Client, runningLimit int) *Scanner {
	return &Scanner{client: client, runningLimit: runningLimit}
}

func (s *Scanner) Scan(ctx context.Context, repo *git.Repository) (*snapshot.Project, error) {
	start := time.Now()

	ghRepo, err := s.client.GetRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s: %w", repo.Path, err)
	}

	runs, err := s.client.ListBranchRuns(ctx, repo.Branch)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow runs of %s: %w", repo.Branch, err)
	}
	selected := snapshot.Select(runs, func(run *github.WorkflowRun) bool {
		return run.GetStatus() == "in_progress"
	}, s.runningLimit)

	results := make([]snapshot.PipelineJobs, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	for i, run := range selected {
		g.Go(func() error {
			pj, err := s.runJobs(gctx, run)
			if err != nil {
				return err
			}
			results[i] = pj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("scanned github repository",
		"repository", repo.Path, "branch", repo.Branch,
		"runs", len(results), "duration", time.Since(start))

	return &snapshot.Project{
		ID:          ghRepo.GetID(),
		Name:        ghRepo.GetName(),
		WebURL:      ghRepo.GetHTMLURL(),
		Description: ghRepo.GetDescription(),
		Pipelines:   results,
	}, nil
}

func (s *Scanner) runJobs(ctx context.Context, run *github.WorkflowRun) (snapshot.PipelineJobs, error) {
	jobs, err := s.client.ListRunJobs(ctx, run.GetID())
	if err != nil {
		return snapshot.PipelineJobs{}, fmt.Errorf("failed to list jobs of run %d: %w", run.GetID(), err)
	}

	pj := snapshot.PipelineJobs{Jobs: make([]snapshot.Job, 0, len(jobs))}
	if pj.Pipeline, err = convertRun(run); err != nil {
		return snapshot.PipelineJobs{}, err
	}
	// GitHub lists jobs oldest first, the board expects the newest first.
	for i := len(jobs) - 1; i >= 0; i-- {
		job, err := convertJob(jobs[i])
		if err != nil {
			return snapshot.PipelineJobs{}, err
		}
		pj.Jobs = append(pj.Jobs, job)
	}
	return pj, nil
}

func convertRun(run *github.WorkflowRun) (snapshot.Pipeline, error) {
	status, err := convertStatus(run.GetStatus(), run.GetConclusion())
	if err != nil {
		return snapshot.Pipeline{}, fmt.Errorf("run %d: %w", run.GetID(), err)
	}

	out := snapshot.Pipeline{
		ID:        run.GetID(),
		Ref:       run.GetHeadBranch(),
		SHA:       run.GetHeadSHA(),
		WebURL:    run.GetHTMLURL(),
		Author:    run.GetActor().GetLogin(),
		Status:    status,
		Label:     label(run.GetStatus(), run.GetConclusion()),
		CreatedAt: run.CreatedAt.GetTime(),
	}
	if run.GetStatus() == "completed" {
		out.Duration = elapsed(run.RunStartedAt.GetTime(), run.UpdatedAt.GetTime())
	}
	return out, nil
}

func convertJob(job *github.WorkflowJob) (snapshot.Job, error) {
	status, err := convertStatus(job.GetStatus(), job.GetConclusion())
	if err != nil {
		return snapshot.Job{}, fmt.Errorf("job %s: %w", job.GetName(), err)
	}

	return snapshot.Job{
		Name:     job.GetName(),
		Stage:    stageOf(job.GetName()),
		Status:   status,
		Duration: elapsed(job.StartedAt.GetTime(), job.CompletedAt.GetTime()),
		Runner:   job.GetRunnerName(),
	}, nil
}

// convertStatus maps the status/conclusion pair of a run or job.
func convertStatus(status, conclusion string) (snapshot.Status, error) {
	switch status {
	case "requested":
		return snapshot.StatusCreated, nil
	case "queued", "pending":
		return snapshot.StatusPending, nil
	case "waiting":
		return snapshot.StatusWaitingForResource, nil
	case "in_progress":
		return snapshot.StatusRunning, nil
	case "completed":
		switch conclusion {
		case "success", "neutral":
			return snapshot.StatusSuccess, nil
		case "failure", "timed_out", "startup_failure":
			return snapshot.StatusFailed, nil
		case "cancelled", "stale":
			return snapshot.StatusCanceled, nil
		case "skipped":
			return snapshot.StatusSkipped, nil
		case "action_required":
			return snapshot.StatusManual, nil
		}
		return 0, fmt.Errorf("%w: conclusion %q", snapshot.ErrUnknownStatus, conclusion)
	}
	return 0, fmt.Errorf("%w: %q", snapshot.ErrUnknownStatus, status)
}

// label keeps GitHub's own wording; a plain success reads "passed" like on GitLab.
func label(status, conclusion string) string {
	word := status
	if status == "completed" {
		if conclusion == "success" {
			return ""
		}
		word = conclusion
	}
	return strings.ReplaceAll(word, "_", " ")
}

// stageOf groups matrix and reusable workflow jobs, e.g. "test (ubuntu, 1.22)"
// and "ci / lint" belong to the stages "test" and "ci".
func stageOf(name string) string {
	cut := len(name)
	for _, sep := range []string{" / ", " ("} {
		if i := strings.Index(name, sep); i >= 0 && i < cut {
			cut = i
		}
	}
	return name[:cut]
}

func elapsed(from, to *time.Time) *time.Duration {
	if from == nil || to == nil || !to.After(*from) {
		return nil
	}
	d := to.Sub(*from)
	return &d
}
