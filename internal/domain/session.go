// Package domain contains the core business entities for studyflow.
// These entities represent the fundamental concepts of the study planner
// and are independent of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common domain errors.
var (
	ErrEmptySubject      = errors.New("session subject cannot be empty")
	ErrInvalidDuration   = errors.New("session duration must be positive")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrSessionNotFound   = errors.New("session not found")
	ErrAlreadyCompleted  = errors.New("session already completed")
)

// Difficulty rates how demanding a study session is expected to be.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulties lists all supported difficulty values.
var ValidDifficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
}

// ValidateDifficulty checks if a string is a valid difficulty.
func ValidateDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	for _, valid := range ValidDifficulties {
		if d == valid {
			return d, nil
		}
	}
	return "", ErrInvalidDifficulty
}

// Label returns a human-readable label.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// StudySession represents one scheduled block of study time.
type StudySession struct {
	ID          string
	Subject     string
	Topic       string
	Description string
	Difficulty  Difficulty
	Duration    time.Duration
	StartTime   time.Time
	Completed   bool
	CompletedAt *time.Time
	Goals       []string
	// Workspace context, captured when a session is started from inside
	// a git repository (coding practice sessions).
	RepoBranch string
	RepoCommit string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewStudySession creates a new session for the given subject.
func NewStudySession(subject string, duration time.Duration, startTime time.Time) (*StudySession, error) {
	if subject == "" {
		return nil, ErrEmptySubject
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	now := time.Now()
	return &StudySession{
		ID:         uuid.New().String(),
		Subject:    subject,
		Difficulty: DifficultyMedium,
		Duration:   duration,
		StartTime:  startTime,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Complete marks the session as completed. Completion is one-way:
// a completed session never transitions back.
func (s *StudySession) Complete() {
	if s.Completed {
		return
	}
	now := time.Now()
	s.Completed = true
	s.CompletedAt = &now
	s.UpdatedAt = now
}

// AddGoal appends a short text goal, ignoring duplicates.
func (s *StudySession) AddGoal(goal string) {
	for _, existing := range s.Goals {
		if existing == goal {
			return
		}
	}
	s.Goals = append(s.Goals, goal)
	s.UpdatedAt = time.Now()
}

// SetWorkspaceContext stores git information for the session.
func (s *StudySession) SetWorkspaceContext(branch, commit string) {
	s.RepoBranch = branch
	s.RepoCommit = commit
	s.UpdatedAt = time.Now()
}

// IsUpcoming returns true if the session is scheduled at or after the
// given reference time and not yet completed.
func (s *StudySession) IsUpcoming(now time.Time) bool {
	return !s.Completed && !s.StartTime.Before(now)
}

// StartDate returns the local calendar date of the session's start,
// with the time of day discarded.
func (s *StudySession) StartDate() time.Time {
	y, m, d := s.StartTime.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
