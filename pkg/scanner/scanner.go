// Package scanner picks the forge API a repository's pipelines are read from.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/younsl/pipeview/pkg/config"
	"github.com/younsl/pipeview/pkg/git"
	"github.com/younsl/pipeview/pkg/github"
	"github.com/younsl/pipeview/pkg/gitlab"
	"github.com/younsl/pipeview/pkg/snapshot"
)

const gitHubHost = "github.com"

var ErrNoToken = errors.New("no token for origin")

// Scanner reads the current pipelines of a repository's branch.
type Scanner interface {
	Scan(ctx context.Context, repo *git.Repository) (*snapshot.Project, error)
}

// Resolver selects and caches a Scanner per forge project. Tokens are looked
// up in this order: github-tokens, gitlab-tokens, the GitHub fallback for
// github.com and finally GITLAB_TOKEN.
type Resolver struct {
	cfg            *config.Config
	fallbackGitHub func() string
	fallbackGitLab func() string

	mu       sync.Mutex
	scanners map[string]Scanner
}

func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		cfg:            cfg,
		fallbackGitHub: config.FallbackGitHubToken,
		fallbackGitLab: config.FallbackGitLabToken,
		scanners:       make(map[string]Scanner),
	}
}

// Resolve returns the scanner for repo, creating it on first use.
func (r *Resolver) Resolve(repo *git.Repository) (Scanner, error) {
	key := repo.Host + "/" + repo.Path

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.scanners[key]; ok {
		return s, nil
	}

	s, err := r.create(repo)
	if err != nil {
		return nil, err
	}
	r.scanners[key] = s
	return s, nil
}

// Scan resolves the scanner for repo and runs it.
func (r *Resolver) Scan(ctx context.Context, repo *git.Repository) (*snapshot.Project, error) {
	s, err := r.Resolve(repo)
	if err != nil {
		return nil, err
	}
	return s.Scan(ctx, repo)
}

func (r *Resolver) create(repo *git.Repository) (Scanner, error) {
	limit := r.cfg.Pipelines.RunningLimit

	if token := r.cfg.GitHubToken(repo.Host); token != "" {
		return r.newGitHub(repo, token, limit)
	}
	if token := r.cfg.GitLabToken(repo.Host); token != "" {
		return r.newGitLab(repo, token, limit)
	}
	if repo.Host == gitHubHost {
		if token := r.fallbackGitHub(); token != "" {
			return r.newGitHub(repo, token, limit)
		}
	}
	if token := r.fallbackGitLab(); token != "" {
		return r.newGitLab(repo, token, limit)
	}
	return nil, fmt.Errorf("%w %q found in config (\"gitlab-tokens\")", ErrNoToken, repo.Host)
}

func (r *Resolver) newGitHub(repo *git.Repository, token string, limit int) (Scanner, error) {
	baseURL := ""
	if repo.Host != gitHubHost {
		baseURL = "https://" + repo.Host + "/api/v3/"
	}
	client, err := github.NewClient(token, baseURL, repo.Owner(), repo.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	slog.Info("using github api", "host", repo.Host, "repository", repo.Path)
	return github.NewScanner(client, limit), nil
}

func (r *Resolver) newGitLab(repo *git.Repository, token string, limit int) (Scanner, error) {
	client, err := gitlab.NewClient(token, "https://"+repo.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}
	slog.Info("using gitlab api", "host", repo.Host, "project", repo.Path)
	return gitlab.NewScanner(client, limit), nil
}
