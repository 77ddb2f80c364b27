package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Repo runs git queries against a local checkout. All operations are
// read-only except FetchShallowBranch.
type Repo struct {
	path   string
	remote string
	runner Runner
}

type RepoConfig struct {
	Path   string
	Remote string // default: origin
}

func New(cfg RepoConfig) *Repo {
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	return &Repo{
		path:   cfg.Path,
		remote: cfg.Remote,
		runner: Runner{Timeout: 2 * time.Minute, MaxOutputBytes: 16 << 20},
	}
}

// Run executes an arbitrary git subcommand in the repo path.
func (r *Repo) Run(ctx context.Context, args ...string) (string, error) {
	return r.runner.Git(ctx, r.path, args...)
}

// Remote returns the configured remote name.
func (r *Repo) Remote() string {
	return r.remote
}

// HeadSHA resolves the current HEAD commit.
func (r *Repo) HeadSHA(ctx context.Context) (string, error) {
	out, err := r.runner.Git(ctx, r.path, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HasRef reports whether ref resolves to a commit in the local repo.
func (r *Repo) HasRef(ctx context.Context, ref string) bool {
	_, err := r.runner.Git(ctx, r.path, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	return err == nil
}

// FetchShallowBranch fetches a single branch head at depth 1 so it can serve
// as a comparison base on shallow CI checkouts.
func (r *Repo) FetchShallowBranch(ctx context.Context, branch string) error {
	refspec := fmt.Sprintf("%s:refs/remotes/%s/%s", branch, r.remote, branch)
	_, err := r.runner.Git(ctx, r.path, "fetch", "--depth=1", r.remote, refspec)
	return err
}

// DiffNameStatus returns the raw `git diff --name-status` output between two
// refs: one `status\tpath[\tnewPath]` line per changed file.
func (r *Repo) DiffNameStatus(ctx context.Context, base, head string) (string, error) {
	return r.runner.Git(ctx, r.path, "diff", "--name-status", "--find-renames", base, head)
}

// DiffFile returns a unified diff between two refs scoped to the given paths
// (one path, or two for a rename) with the requested context line count.
func (r *Repo) DiffFile(ctx context.Context, base, head string, contextLines int, paths ...string) (string, error) {
	args := []string{
		"diff", "--no-color", "--no-ext-diff", "--find-renames",
		"-U" + strconv.Itoa(contextLines), base, head, "--",
	}
	args = append(args, paths...)
	return r.runner.Git(ctx, r.path, args...)
}

// ListTrackedFiles returns every path tracked in the working tree, repo-root
// relative and forward-slash separated.
func (r *Repo) ListTrackedFiles(ctx context.Context) ([]string, error) {
	out, err := r.runner.Git(ctx, r.path, "ls-files")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		if l != "" {
			files = append(files, l)
		}
	}
	return files, nil
}

// RemoteURL returns the fetch URL of the configured remote.
func (r *Repo) RemoteURL(ctx context.Context) (string, error) {
	out, err := r.runner.Git(ctx, r.path, "config", "--get", "remote."+r.remote+".url")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Runner executes git with a wall-clock timeout and a cap on captured output.
type Runner struct {
	Timeout        time.Duration
	MaxOutputBytes int
}

var ErrOutputTruncated = errors.New("command output exceeds buffer limit")

func (r Runner) Git(ctx context.Context, dir string, args ...string) (string, error) {
	c := exec.CommandContext(ctx, "git", args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Start(); err != nil {
		return "", formatGitError(args, err, stderr.String())
	}
	done := make(chan error, 1)
	go func() { done <- c.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return "", formatGitError(args, err, stderr.String())
		}
		if r.MaxOutputBytes > 0 && stdout.Len() > r.MaxOutputBytes {
			return "", formatGitError(args, ErrOutputTruncated, stderr.String())
		}
		return stdout.String(), nil
	case <-time.After(r.Timeout):
		_ = c.Process.Kill()
		<-done
		return "", formatGitError(args, fmt.Errorf("command timed out after %s", r.Timeout), stderr.String())
	case <-ctx.Done():
		_ = c.Process.Kill()
		<-done
		cause := ctx.Err()
		if cause == nil {
			cause = errors.New("context canceled")
		}
		return "", formatGitError(args, cause, stderr.String())
	}
}

func formatGitError(args []string, cause error, stderr string) error {
	cmd := strings.Join(args, " ")
	stderr = strings.TrimSpace(stderr)
	if stderr != "" {
		return fmt.Errorf("git %s: %w: %s", cmd, cause, stderr)
	}
	return fmt.Errorf("git %s: %w", cmd, cause)
}
