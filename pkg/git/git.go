// Package git discovers the branch, head commit and forge project of the
// repository pipeview is started in.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	lev "github.com/agnivade/levenshtein"
)

var (
	ErrNotRepository  = errors.New("not a git repository")
	ErrRemoteNotFound = errors.New("git remote not found")
)

// Runner provides git command execution. Interface for testing.
type Runner interface {
	RunGit(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs git via exec.
type ExecRunner struct{}

// RunGit implements Runner using exec.CommandContext.
func (r *ExecRunner) RunGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return strings.TrimSpace(string(out)), fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Repository is the local state a dashboard frame is built for.
type Repository struct {
	Dir       string
	Branch    string
	Commit    string
	Subject   string
	Remote    string
	RemoteURL string
	Host      string
	Path      string
}

// Owner returns the namespace part of Path.
func (r *Repository) Owner() string {
	if i := strings.LastIndex(r.Path, "/"); i >= 0 {
		return r.Path[:i]
	}
	return ""
}

// Name returns the last element of Path.
func (r *Repository) Name() string {
	return r.Path[strings.LastIndex(r.Path, "/")+1:]
}

// ShortCommit returns the first eight characters of the head commit.
func (r *Repository) ShortCommit() string {
	if len(r.Commit) > 8 {
		return r.Commit[:8]
	}
	return r.Commit
}

// Discover inspects the repository containing dir and resolves remote to a
// forge host and project path.
func Discover(ctx context.Context, runner Runner, dir, remote string) (*Repository, error) {
	top, err := runner.RunGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}

	repo := &Repository{Dir: top, Remote: remote}

	if repo.Branch, err = runner.RunGit(ctx, top, "rev-parse", "--abbrev-ref", "HEAD"); err != nil {
		return nil, fmt.Errorf("resolving branch: %w", err)
	}
	if repo.Commit, err = runner.RunGit(ctx, top, "rev-parse", "HEAD"); err != nil {
		return nil, fmt.Errorf("resolving head commit: %w", err)
	}
	if repo.Subject, err = runner.RunGit(ctx, top, "log", "-1", "--format=%s"); err != nil {
		return nil, fmt.Errorf("reading head commit subject: %w", err)
	}

	if repo.RemoteURL, err = runner.RunGit(ctx, top, "remote", "get-url", remote); err != nil {
		if hint := suggestRemote(ctx, runner, top, remote); hint != "" {
			return nil, fmt.Errorf("%w: %q, did you mean %q?", ErrRemoteNotFound, remote, hint)
		}
		return nil, fmt.Errorf("%w: %q", ErrRemoteNotFound, remote)
	}
	if repo.Host, repo.Path, err = ParseOrigin(repo.RemoteURL); err != nil {
		return nil, err
	}

	return repo, nil
}

// maxSuggestDistance bounds the edit distance of a remote name suggestion.
const maxSuggestDistance = 2

// suggestRemote returns the configured remote closest to name, or "" when
// none is within maxSuggestDistance edits.
func suggestRemote(ctx context.Context, runner Runner, dir, name string) string {
	out, err := runner.RunGit(ctx, dir, "remote")
	if err != nil {
		return ""
	}

	best, bestDistance := "", maxSuggestDistance+1
	for _, candidate := range strings.Fields(out) {
		if d := lev.ComputeDistance(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}
