// Package gitlab builds dashboard snapshots from the GitLab REST API.
package gitlab

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xanzy/go-gitlab"
	"github.com/younsl/pipeview/pkg/git"
	"github.com/younsl/pipeview/pkg/snapshot"
	"golang.org/x/sync/errgroup"
)

type Scanner struct {
	client       *Client
	runningLimit int
}

// NewScanner returns a scanner that shows the latest pipeline of a branch
// plus up to runningLimit other running ones.
func NewScanner(client *Client, runningLimit int) *Scanner {
	return &Scanner{client: client, runningLimit: runningLimit}
}

func (s *Scanner) Scan(ctx context.Context, repo *git.Repository) (*snapshot.Project, error) {
	start := time.Now()

	project, err := s.client.GetProject(ctx, repo.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", repo.Path, err)
	}

	pipelines, err := s.client.ListBranchPipelines(ctx, repo.Path, repo.Branch)
	if err != nil {
		return nil, fmt.Errorf("failed to list pipelines of %s: %w", repo.Branch, err)
	}
	selected := snapshot.Select(pipelines, func(p *gitlab.PipelineInfo) bool {
		return p.Status == "running"
	}, s.runningLimit)

	results := make([]snapshot.PipelineJobs, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	for i, info := range selected {
		g.Go(func() error {
			pj, err := s.pipelineJobs(gctx, repo.Path, info.ID)
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

	slog.Debug("scanned gitlab project",
		"project", repo.Path, "ref", repo.Branch,
		"pipelines", len(results), "duration", time.Since(start))

	return &snapshot.Project{
		ID:          int64(project.ID),
		Name:        project.Name,
		WebURL:      project.WebURL,
		Description: project.Description,
		Pipelines:   results,
	}, nil
}

func (s *Scanner) pipelineJobs(ctx context.Context, path string, id int) (snapshot.PipelineJobs, error) {
	pipeline, err := s.client.GetPipeline(ctx, path, id)
	if err != nil {
		return snapshot.PipelineJobs{}, fmt.Errorf("failed to get pipeline %d: %w", id, err)
	}
	jobs, err := s.client.ListPipelineJobs(ctx, path, id)
	if err != nil {
		return snapshot.PipelineJobs{}, fmt.Errorf("failed to list jobs of pipeline %d: %w", id, err)
	}

	pj := snapshot.PipelineJobs{Jobs: make([]snapshot.Job, 0, len(jobs))}
	if pj.Pipeline, err = convertPipeline(pipeline); err != nil {
		return snapshot.PipelineJobs{}, err
	}
	for _, job := range jobs {
		converted, err := convertJob(job)
		if err != nil {
			return snapshot.PipelineJobs{}, err
		}
		pj.Jobs = append(pj.Jobs, converted)
	}
	return pj, nil
}

func convertPipeline(p *gitlab.Pipeline) (snapshot.Pipeline, error) {
	status, err := snapshot.ParseStatus(p.Status)
	if err != nil {
		return snapshot.Pipeline{}, fmt.Errorf("pipeline %d: %w", p.ID, err)
	}

	out := snapshot.Pipeline{
		ID:        int64(p.ID),
		Ref:       p.Ref,
		SHA:       p.SHA,
		WebURL:    p.WebURL,
		Status:    status,
		CreatedAt: p.CreatedAt,
	}
	if p.User != nil {
		out.Author = p.User.Name
	}
	if p.DetailedStatus != nil {
		out.Label = p.DetailedStatus.Label
	}
	if p.Duration > 0 {
		d := time.Duration(p.Duration) * time.Second
		out.Duration = &d
	}
	if p.Coverage != "" {
		if v, err := strconv.ParseFloat(p.Coverage, 64); err == nil {
			out.Coverage = &v
		}
	}
	return out, nil
}

func convertJob(j *gitlab.Job) (snapshot.Job, error) {
	status, err := snapshot.ParseStatus(j.Status)
	if err != nil {
		return snapshot.Job{}, fmt.Errorf("job %s: %w", j.Name, err)
	}

	out := snapshot.Job{
		Name:         j.Name,
		Stage:        j.Stage,
		Status:       status,
		AllowFailure: j.AllowFailure,
	}
	if j.Duration > 0 {
		d := time.Duration(j.Duration * float64(time.Second))
		out.Duration = &d
	}
	// The API reports 0 for jobs without a coverage regex.
	if j.Coverage != 0 {
		coverage := j.Coverage
		out.Coverage = &coverage
	}
	if j.Runner.ID != 0 {
		out.Runner = j.Runner.Name
		if out.Runner == "" {
			out.Runner = j.Runner.Description
		}
	}
	for _, artifact := range j.Artifacts {
		out.Artifacts = append(out.Artifacts, artifact.Filename)
	}
	return out, nil
}
