// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/ports"
)

// SessionService handles study-session use cases.
type SessionService struct {
	storage   ports.Storage
	workspace ports.WorkspaceDetector
}

// NewSessionService creates a new session service.
func NewSessionService(storage ports.Storage, workspace ports.WorkspaceDetector) *SessionService {
	return &SessionService{
		storage:   storage,
		workspace: workspace,
	}
}

// ScheduleRequest contains data to schedule a new study session.
type ScheduleRequest struct {
	Subject     string
	Topic       string
	Description string
	Difficulty  domain.Difficulty
	Duration    time.Duration
	StartTime   time.Time
	Goals       []string
	// WorkingDir, when non-empty, is scanned for git context so
	// coding-practice sessions carry their workspace state.
	WorkingDir string
}

// Schedule creates a new study session.
func (s *SessionService) Schedule(ctx context.Context, req ScheduleRequest) (*domain.StudySession, error) {
	session, err := domain.NewStudySession(req.Subject, req.Duration, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}

	session.Topic = req.Topic
	session.Description = req.Description
	if req.Difficulty != "" {
		session.Difficulty = req.Difficulty
	}
	for _, goal := range req.Goals {
		session.AddGoal(goal)
	}

	if s.workspace != nil && req.WorkingDir != "" {
		info, err := s.workspace.Detect(ctx, req.WorkingDir)
		if err == nil && info != nil {
			session.SetWorkspaceContext(info.Branch, info.Commit)
		}
	}

	if err := s.storage.Sessions().Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// ListRequest contains filters for listing sessions.
type ListRequest struct {
	OnlyUpcoming  bool
	OnlyCompleted bool
	Search        string
}

// List retrieves sessions based on filters.
func (s *SessionService) List(ctx context.Context, req ListRequest) ([]*domain.StudySession, error) {
	if req.Search != "" {
		return s.storage.Sessions().Search(ctx, req.Search)
	}
	if req.OnlyUpcoming {
		return s.storage.Sessions().FindUpcoming(ctx, time.Now())
	}
	if req.OnlyCompleted {
		return s.storage.Sessions().FindCompleted(ctx)
	}
	return s.storage.Sessions().FindAll(ctx)
}

// Get retrieves a single session by ID or ID prefix.
func (s *SessionService) Get(ctx context.Context, id string) (*domain.StudySession, error) {
	return s.storage.Sessions().FindByID(ctx, id)
}

// EditRequest contains optional changes to an existing session.
// Nil fields are left untouched.
type EditRequest struct {
	Subject     *string
	Topic       *string
	Description *string
	Difficulty  *domain.Difficulty
	Duration    *time.Duration
	StartTime   *time.Time
}

// Edit applies changes to a session. Completed sessions cannot be edited.
func (s *SessionService) Edit(ctx context.Context, id string, req EditRequest) (*domain.StudySession, error) {
	session, err := s.storage.Sessions().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session.Completed {
		return nil, domain.ErrAlreadyCompleted
	}

	if req.Subject != nil {
		if *req.Subject == "" {
			return nil, domain.ErrEmptySubject
		}
		session.Subject = *req.Subject
	}
	if req.Topic != nil {
		session.Topic = *req.Topic
	}
	if req.Description != nil {
		session.Description = *req.Description
	}
	if req.Difficulty != nil {
		session.Difficulty = *req.Difficulty
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, domain.ErrInvalidDuration
		}
		session.Duration = *req.Duration
	}
	if req.StartTime != nil {
		session.StartTime = *req.StartTime
	}
	session.UpdatedAt = time.Now()

	if err := s.storage.Sessions().Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

// Complete marks a session as completed.
func (s *SessionService) Complete(ctx context.Context, id string) (*domain.StudySession, error) {
	session, err := s.storage.Sessions().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session.Completed {
		return nil, domain.ErrAlreadyCompleted
	}

	session.Complete()
	if err := s.storage.Sessions().Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

// Delete removes a session.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.storage.Sessions().Delete(ctx, id)
}

// NextUpcoming returns the next scheduled session, or nil when the
// calendar is empty.
func (s *SessionService) NextUpcoming(ctx context.Context, now time.Time) (*domain.StudySession, error) {
	upcoming, err := s.storage.Sessions().FindUpcoming(ctx, now)
	if err != nil {
		return nil, err
	}
	if len(upcoming) == 0 {
		return nil, nil
	}
	return upcoming[0], nil
}
