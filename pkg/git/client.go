// Package git wraps the git binary to version the data directory of the fs store.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLockName is the lock file created inside the working directory.
const DefaultLockName = ".ideastash.lock"

// Client wraps git command execution with a file-based lock for process safety.
type Client struct {
	WorkDir  string
	Logger   *slog.Logger
	lockPath string
}

// NewClient creates a new git client for the given working directory.
// An empty lockName selects DefaultLockName.
func NewClient(workDir, lockName string, logger *slog.Logger) *Client {
	if lockName == "" {
		lockName = DefaultLockName
	}
	return &Client{
		WorkDir:  workDir,
		Logger:   logger,
		lockPath: lockName,
	}
}

// IsInstalled reports whether the git binary is available.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// LockName returns the name of the lock file relative to the working directory.
func (c *Client) LockName() string {
	return c.lockPath
}

// Lock acquires the file lock, polling until it is free or ctx is done.
func (c *Client) Lock(ctx context.Context) (func(), error) {
	fullLockPath := filepath.Join(c.WorkDir, c.lockPath)

	for {
		f, err := os.OpenFile(fullLockPath, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() {
				os.Remove(fullLockPath)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Run executes a raw git command in the working directory.
// It does NOT acquire the lock; the caller manages that via Client.Lock().
func (c *Client) Run(args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = c.WorkDir
	cmd.Env = identityEnv(os.Environ())

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// IsRepo reports whether the working directory is a git repository root.
func (c *Client) IsRepo() bool {
	info, err := os.Stat(filepath.Join(c.WorkDir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes a new git repository. Re-running it is harmless.
func (c *Client) Init() error {
	_, err := c.Run("init")
	return err
}

// Stage records the current state of the given paths, including deletions.
func (c *Client) Stage(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "-A", "--"}, paths...)
	_, err := c.Run(args...)
	return err
}

// HasStagedChanges reports whether the index differs from HEAD for paths.
func (c *Client) HasStagedChanges(paths ...string) (bool, error) {
	args := append([]string{"status", "--porcelain", "--"}, paths...)
	out, err := c.Run(args...)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// Commit records changes to the repository.
func (c *Client) Commit(msg string) error {
	_, err := c.Run("commit", "-m", msg)
	return err
}

// Log returns the subjects of the last n commits, newest first.
func (c *Client) Log(n int) ([]string, error) {
	out, err := c.Run("log", fmt.Sprintf("-%d", n), "--pretty=format:%s")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// identityEnv makes commits work on machines without a configured git identity.
func identityEnv(env []string) []string {
	defaults := map[string]string{
		"GIT_AUTHOR_NAME":     "ideastash",
		"GIT_AUTHOR_EMAIL":    "ideastash@localhost",
		"GIT_COMMITTER_NAME":  "ideastash",
		"GIT_COMMITTER_EMAIL": "ideastash@localhost",
	}
	for _, kv := range env {
		if k, _, ok := strings.Cut(kv, "="); ok {
			delete(defaults, k)
		}
	}
	for k, v := range defaults {
		env = append(env, k+"="+v)
	}
	return env
}
