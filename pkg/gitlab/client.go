package gitlab

import (
	"context"
	"fmt"
	"strings"

	"github.com/xanzy/go-gitlab"
)

const jobsPerPage = 100

type Client struct {
	client *gitlab.Client
}

// NewClient creates a client for the GitLab instance at baseURL, e.g.
// "https://gitlab.com". The API path is appended by the library.
func NewClient(token, baseURL string) (*Client, error) {
	if baseURL != "" && !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	client, err := gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) GetProject(ctx context.Context, path string) (*gitlab.Project, error) {
	project, _, err := c.client.Projects.GetProject(path, nil, gitlab.WithContext(ctx))
	return project, err
}

// ListBranchPipelines returns the pipelines of ref, newest first.
func (c *Client) ListBranchPipelines(ctx context.Context, path, ref string) ([]*gitlab.PipelineInfo, error) {
	orderBy, sort := "id", "desc"
	opts := &gitlab.ListProjectPipelinesOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
		Ref:         &ref,
		OrderBy:     &orderBy,
		Sort:        &sort,
	}
	pipelines, _, err := c.client.Pipelines.ListProjectPipelines(path, opts, gitlab.WithContext(ctx))
	return pipelines, err
}

func (c *Client) GetPipeline(ctx context.Context, path string, id int) (*gitlab.Pipeline, error) {
	pipeline, _, err := c.client.Pipelines.GetPipeline(path, id, gitlab.WithContext(ctx))
	return pipeline, err
}

// ListPipelineJobs returns all jobs of a pipeline, following pagination.
func (c *Client) ListPipelineJobs(ctx context.Context, path string, id int) ([]*gitlab.Job, error) {
	opts := &gitlab.ListJobsOptions{
		ListOptions: gitlab.ListOptions{PerPage: jobsPerPage},
	}

	var all []*gitlab.Job
	for {
		jobs, resp, err := c.client.Jobs.ListPipelineJobs(path, id, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		all = append(all, jobs...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}
