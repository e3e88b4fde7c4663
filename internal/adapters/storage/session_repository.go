package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/ports"
)

const sessionColumns = `
	id, subject, topic, description, difficulty, duration_ms, start_time,
	completed, completed_at, goals, repo_branch, repo_commit, created_at, updated_at`

// sessionRepository implements ports.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Save persists a session to storage.
func (r *sessionRepository) Save(ctx context.Context, session *domain.StudySession) error {
	query := `
		INSERT INTO sessions (
			id, subject, topic, description, difficulty, duration_ms, start_time,
			completed, completed_at, goals, repo_branch, repo_commit, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	goals := strings.Join(session.Goals, "\n")

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.Subject,
		session.Topic,
		session.Description,
		string(session.Difficulty),
		session.Duration.Milliseconds(),
		session.StartTime,
		session.Completed,
		session.CompletedAt,
		goals,
		session.RepoBranch,
		session.RepoCommit,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// FindByID retrieves a session by its unique identifier, accepting a
// short ID prefix when it is unambiguous.
func (r *sessionRepository) FindByID(ctx context.Context, id string) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	session, err := r.scanSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	// Prefix lookup
	prefixQuery := `SELECT ` + sessionColumns + ` FROM sessions WHERE id LIKE ? LIMIT 2`
	rows, err := r.db.QueryContext(ctx, prefixQuery, id+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query session by prefix: %w", err)
	}
	defer func() { _ = rows.Close() }()

	matches, err := r.scanSessions(rows)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, domain.ErrSessionNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous session id prefix: %s", id)
	}
}

// FindAll retrieves every session, newest start first.
func (r *sessionRepository) FindAll(ctx context.Context) ([]*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanSessions(rows)
}

// FindUpcoming retrieves scheduled, not-yet-completed sessions, soonest first.
func (r *sessionRepository) FindUpcoming(ctx context.Context, from time.Time) ([]*domain.StudySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE completed = 0 AND start_time >= ?
		ORDER BY start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanSessions(rows)
}

// FindCompleted retrieves completed sessions, newest start first.
func (r *sessionRepository) FindCompleted(ctx context.Context) ([]*domain.StudySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE completed = 1
		ORDER BY start_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanSessions(rows)
}

// FindBetween retrieves sessions with a start time in [start, end).
func (r *sessionRepository) FindBetween(ctx context.Context, start, end time.Time) ([]*domain.StudySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE start_time >= ? AND start_time < ?
		ORDER BY start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions between: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanSessions(rows)
}

// Search returns sessions whose subject or topic fuzzily matches the
// query, best match first.
func (r *sessionRepository) Search(ctx context.Context, query string) ([]*domain.StudySession, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	targets := make([]string, len(all))
	for i, s := range all {
		targets[i] = s.Subject + " " + s.Topic
	}

	matches := fuzzy.Find(query, targets)
	results := make([]*domain.StudySession, 0, len(matches))
	for _, m := range matches {
		results = append(results, all[m.Index])
	}
	return results, nil
}

// Update modifies an existing session.
func (r *sessionRepository) Update(ctx context.Context, session *domain.StudySession) error {
	query := `
		UPDATE sessions
		SET subject = ?, topic = ?, description = ?, difficulty = ?, duration_ms = ?,
		    start_time = ?, completed = ?, completed_at = ?, goals = ?,
		    repo_branch = ?, repo_commit = ?, updated_at = ?
		WHERE id = ?
	`

	goals := strings.Join(session.Goals, "\n")

	result, err := r.db.ExecContext(ctx, query,
		session.Subject,
		session.Topic,
		session.Description,
		string(session.Difficulty),
		session.Duration.Milliseconds(),
		session.StartTime,
		session.Completed,
		session.CompletedAt,
		goals,
		session.RepoBranch,
		session.RepoCommit,
		session.UpdatedAt,
		session.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

// Delete removes a session from storage.
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanOne populates a session from a scanned row.
func scanOne(scanner rowScanner) (*domain.StudySession, error) {
	var session domain.StudySession
	var topic, description, goalsStr sql.NullString
	var repoBranch, repoCommit sql.NullString
	var completedAt sql.NullTime
	var durationMs int64

	err := scanner.Scan(
		&session.ID,
		&session.Subject,
		&topic,
		&description,
		&session.Difficulty,
		&durationMs,
		&session.StartTime,
		&session.Completed,
		&completedAt,
		&goalsStr,
		&repoBranch,
		&repoCommit,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.Duration = time.Duration(durationMs) * time.Millisecond
	if topic.Valid {
		session.Topic = topic.String
	}
	if description.Valid {
		session.Description = description.String
	}
	if completedAt.Valid {
		session.CompletedAt = &completedAt.Time
	}
	if goalsStr.Valid && goalsStr.String != "" {
		session.Goals = strings.Split(goalsStr.String, "\n")
	}
	if repoBranch.Valid {
		session.RepoBranch = repoBranch.String
	}
	if repoCommit.Valid {
		session.RepoCommit = repoCommit.String
	}

	return &session, nil
}

// scanSession scans a single session row.
func (r *sessionRepository) scanSession(row *sql.Row) (*domain.StudySession, error) {
	session, err := scanOne(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// scanSessions scans multiple session rows.
func (r *sessionRepository) scanSessions(rows *sql.Rows) ([]*domain.StudySession, error) {
	var sessions []*domain.StudySession
	for rows.Next() {
		session, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
