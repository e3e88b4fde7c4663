// Package ports defines the interfaces (driven and driving ports)
// for the studyflow application following hexagonal architecture
// principles. These interfaces define the contracts between the
// domain layer and external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/kaesv/studyflow/internal/domain"
)

// SessionRepository defines the interface for study session persistence.
// This is a driven port (implemented by adapters).
type SessionRepository interface {
	// Save persists a session to storage.
	Save(ctx context.Context, session *domain.StudySession) error

	// FindByID retrieves a session by its unique identifier. A short
	// unambiguous ID prefix is accepted as well.
	FindByID(ctx context.Context, id string) (*domain.StudySession, error)

	// FindAll retrieves every session, newest start first.
	FindAll(ctx context.Context) ([]*domain.StudySession, error)

	// FindUpcoming retrieves sessions scheduled at or after the given
	// time that are not yet completed, soonest first.
	FindUpcoming(ctx context.Context, from time.Time) ([]*domain.StudySession, error)

	// FindCompleted retrieves completed sessions, newest start first.
	FindCompleted(ctx context.Context) ([]*domain.StudySession, error)

	// FindBetween retrieves sessions with a start time in [start, end).
	FindBetween(ctx context.Context, start, end time.Time) ([]*domain.StudySession, error)

	// Search returns sessions whose subject or topic fuzzily matches
	// the query, best match first.
	Search(ctx context.Context, query string) ([]*domain.StudySession, error)

	// Update modifies an existing session.
	Update(ctx context.Context, session *domain.StudySession) error

	// Delete removes a session from storage.
	Delete(ctx context.Context, id string) error
}

// Storage is the combined repository interface.
type Storage interface {
	// Sessions provides access to session operations.
	Sessions() SessionRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
