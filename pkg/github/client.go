package github

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

const perPage = 100

type Client struct {
	client *github.Client
	owner  string
	repo   string
}

// NewClient creates a client for owner/repo. An empty baseURL talks to
// api.github.com; GitHub Enterprise Server needs "https://<host>/api/v3/".
func NewClient(token, baseURL, owner, repo string) (*Client, error) {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	client := github.NewClient(tc)

	if baseURL != "" && baseURL != "https://api.github.com" {
		// Ensure trailing slash for GitHub API
		if baseURL[len(baseURL)-1] != '/' {
			baseURL += "/"
		}
		parsedURL, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		client.BaseURL = parsedURL
	}

	return &Client{
		client: client,
		owner:  owner,
		repo:   repo,
	}, nil
}

func (c *Client) GetRepository(ctx context.Context) (*github.Repository, error) {
	repo, _, err := c.client.Repositories.Get(ctx, c.owner, c.repo)
	return repo, err
}

// ListBranchRuns returns the workflow runs of branch, newest first.
func (c *Client) ListBranchRuns(ctx context.Context, branch string) ([]*github.WorkflowRun, error) {
	opts := &github.ListWorkflowRunsOptions{
		Branch:      branch,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	runs, _, err := c.client.Actions.ListRepositoryWorkflowRuns(ctx, c.owner, c.repo, opts)
	if err != nil {
		return nil, err
	}
	return runs.WorkflowRuns, nil
}

// ListRunJobs returns the latest attempt of every job of a run, following pagination.
func (c *Client) ListRunJobs(ctx context.Context, runID int64) ([]*github.WorkflowJob, error) {
	opts := &github.ListWorkflowJobsOptions{
		Filter:      "latest",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var all []*github.WorkflowJob
	for {
		jobs, resp, err := c.client.Actions.ListWorkflowJobs(ctx, c.owner, c.repo, runID, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, jobs.Jobs...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}
