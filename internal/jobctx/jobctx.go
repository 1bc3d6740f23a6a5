// Package jobctx holds the per-render working state that used to live in
// request globals: one job id and one private scratch directory.
package jobctx

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Context is the working state of one render job. It must not be shared
// between jobs.
type Context struct {
	JobID     string
	Dir       string
	CreatedAt time.Time
}

// New creates a fresh scratch directory under root (os.TempDir when empty).
func New(root, jobID string) (*Context, error) {
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create job root %s: %w", root, err)
	}
	prefix := "job-" + unsafeChars.ReplaceAllString(jobID, "_") + "-"
	dir, err := os.MkdirTemp(root, prefix)
	if err != nil {
		return nil, fmt.Errorf("create job dir for %s: %w", jobID, err)
	}
	return &Context{JobID: jobID, Dir: dir, CreatedAt: time.Now()}, nil
}

// Path returns a path for name inside the job directory. Directory parts of
// name are discarded so the result never escapes Dir.
func (c *Context) Path(name string) string {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		base = "file"
	}
	return filepath.Join(c.Dir, base)
}

// Cleanup removes the job directory and everything in it.
func (c *Context) Cleanup() error {
	if c == nil || c.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.Dir); err != nil {
		return fmt.Errorf("remove job dir %s: %w", c.Dir, err)
	}
	return nil
}
