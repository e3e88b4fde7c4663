package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func TestNewDetector(t *testing.T) {
	d := NewDetector()
	if d == nil {
		t.Fatal("NewDetector() returned nil")
	}
}

func TestDetector_Detect(t *testing.T) {
	tmpDir := t.TempDir()

	repo, err := git.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}

	testFile := filepath.Join(tmpDir, "notes.md")
	if err := os.WriteFile(testFile, []byte("# notes"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if _, err := worktree.Add("notes.md"); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}
	commit, err := worktree.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com"},
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	d := NewDetector()
	info, err := d.Detect(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info == nil {
		t.Fatal("Detect() returned nil info for a git directory")
	}
	if info.Commit != commit.String() {
		t.Errorf("Commit = %s, want %s", info.Commit, commit.String())
	}
	if info.Branch == "" {
		t.Error("Branch should not be empty")
	}
	if !info.IsClean {
		t.Error("freshly committed worktree should be clean")
	}
}

func TestDetector_Detect_NotARepo(t *testing.T) {
	// An isolated temp dir has no .git anywhere up the tree as long as
	// the system temp root is not itself a repository.
	tmpDir := t.TempDir()

	d := NewDetector()
	info, err := d.Detect(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info != nil {
		t.Errorf("Detect() = %+v, want nil outside a repository", info)
	}
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/user/exercises.git", "exercises"},
		{"git@github.com:user/leetcode.git", "leetcode"},
		{"local-repo", "local-repo"},
	}
	for _, tt := range tests {
		if got := repoName(tt.url); got != tt.want {
			t.Errorf("repoName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
