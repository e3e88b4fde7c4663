package ports

import (
	"context"

	"github.com/kaesv/studyflow/internal/domain"
)

// TimerView is the driving port for the interactive countdown over a
// single study session. The host hands it exactly one session; the
// only externally observable effects are the two callbacks.
type TimerView interface {
	// Run starts the timer interface for the session and blocks until
	// the view closes. Countdown state is created on entry and
	// discarded on exit; it is never persisted.
	Run(ctx context.Context, session *domain.StudySession) error

	// SetOnComplete sets the callback invoked when the user explicitly
	// marks the session complete. Timer expiry alone does not fire it.
	SetOnComplete(func(sessionID string) error)

	// SetOnClose sets the callback invoked when the view closes
	// without the session being marked complete.
	SetOnClose(func())
}
