package ports

import "context"

// WorkspaceInfo holds git context captured for a coding-practice session.
type WorkspaceInfo struct {
	Repository string
	Branch     string
	Commit     string
	IsClean    bool
}

// WorkspaceDetector inspects the directory a session is started from.
// This is a driven port (implemented by adapters).
type WorkspaceDetector interface {
	// Detect scans the given directory for git context. Returns nil
	// info (no error) when the directory is not inside a repository.
	Detect(ctx context.Context, dir string) (*WorkspaceInfo, error)
}
