package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/ports"
	"github.com/kaesv/studyflow/internal/progress"
)

// ProgressService computes goal and streak metrics over stored history.
// It also implements ports.MCPStateProvider.
type ProgressService struct {
	storage        ports.Storage
	goals          domain.Goals
	sessionService *SessionService
}

// NewProgressService creates a new progress service.
func NewProgressService(storage ports.Storage, goals domain.Goals) *ProgressService {
	return &ProgressService{storage: storage, goals: goals}
}

// SetSessionService wires the session service for write operations
// exposed over MCP.
func (s *ProgressService) SetSessionService(sessionService *SessionService) {
	s.sessionService = sessionService
}

// SetGoals replaces the targets used for subsequent calculations.
func (s *ProgressService) SetGoals(goals domain.Goals) {
	s.goals = goals
}

// Goals returns the currently configured targets.
func (s *ProgressService) Goals() domain.Goals {
	return s.goals
}

// GetProgress derives the progress summary from the full session history.
func (s *ProgressService) GetProgress(ctx context.Context) (progress.Summary, error) {
	sessions, err := s.storage.Sessions().FindAll(ctx)
	if err != nil {
		return progress.Summary{}, fmt.Errorf("failed to load sessions: %w", err)
	}
	return progress.Calculate(sessions, s.goals, time.Now()), nil
}

// ListSessions implements ports.MCPStateProvider.
func (s *ProgressService) ListSessions(ctx context.Context) ([]*domain.StudySession, error) {
	return s.storage.Sessions().FindAll(ctx)
}

// UpcomingSessions implements ports.MCPStateProvider.
func (s *ProgressService) UpcomingSessions(ctx context.Context, from time.Time) ([]*domain.StudySession, error) {
	return s.storage.Sessions().FindUpcoming(ctx, from)
}

// ScheduleSession implements ports.MCPStateProvider.
func (s *ProgressService) ScheduleSession(ctx context.Context, subject, topic string, duration time.Duration, start time.Time) (*domain.StudySession, error) {
	if s.sessionService == nil {
		return nil, fmt.Errorf("session service not configured")
	}
	return s.sessionService.Schedule(ctx, ScheduleRequest{
		Subject:   subject,
		Topic:     topic,
		Duration:  duration,
		StartTime: start,
	})
}

// CompleteSession implements ports.MCPStateProvider.
func (s *ProgressService) CompleteSession(ctx context.Context, id string) error {
	if s.sessionService == nil {
		return fmt.Errorf("session service not configured")
	}
	_, err := s.sessionService.Complete(ctx, id)
	return err
}

// Ensure ProgressService implements the MCP provider port.
var _ ports.MCPStateProvider = (*ProgressService)(nil)
