// Package workspace captures git context for coding-practice sessions
// using go-git.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/kaesv/studyflow/internal/ports"
)

// Detector implements the ports.WorkspaceDetector interface using go-git.
type Detector struct{}

// NewDetector creates a new workspace detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Ensure Detector implements ports.WorkspaceDetector.
var _ ports.WorkspaceDetector = (*Detector)(nil)

// Detect scans the given directory for git context. A directory outside
// any repository yields (nil, nil): sessions without a workspace are
// perfectly normal.
func (d *Detector) Detect(ctx context.Context, dir string) (*ports.WorkspaceInfo, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repoPath, ok := findRepoRoot(dir)
	if !ok {
		return nil, nil
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	branch := head.Name().Short()
	if branch == "HEAD" {
		branch = "HEAD detached"
	}

	info := &ports.WorkspaceInfo{
		Branch: branch,
		Commit: head.Hash().String(),
	}

	if remotes, err := repo.Remotes(); err == nil && len(remotes) > 0 {
		urls := remotes[0].Config().URLs
		if len(urls) > 0 {
			info.Repository = repoName(urls[0])
		}
	}

	if worktree, err := repo.Worktree(); err == nil {
		if status, err := worktree.Status(); err == nil {
			info.IsClean = status.IsClean()
		}
	}

	return info, nil
}

// findRepoRoot walks up from dir looking for a .git directory.
func findRepoRoot(dir string) (string, bool) {
	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// repoName extracts a readable name from a remote URL.
func repoName(url string) string {
	name := strings.TrimSuffix(url, ".git")
	if idx := strings.LastIndexAny(name, "/:"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
