package ports

import (
	"context"
	"time"

	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/progress"
)

// MCPHandler is the driving port for the MCP server surface.
type MCPHandler interface {
	// Start begins serving MCP requests and blocks until the server
	// exits.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider exposes planner state and operations to the MCP
// server. This is a driven port (implemented by the service layer).
type MCPStateProvider interface {
	// ListSessions returns every session, newest start first.
	ListSessions(ctx context.Context) ([]*domain.StudySession, error)

	// UpcomingSessions returns scheduled, not-yet-completed sessions.
	UpcomingSessions(ctx context.Context, from time.Time) ([]*domain.StudySession, error)

	// GetProgress returns the current goal/streak summary.
	GetProgress(ctx context.Context) (progress.Summary, error)

	// ScheduleSession creates a new study session.
	ScheduleSession(ctx context.Context, subject, topic string, duration time.Duration, start time.Time) (*domain.StudySession, error)

	// CompleteSession marks a session completed.
	CompleteSession(ctx context.Context, id string) error
}
