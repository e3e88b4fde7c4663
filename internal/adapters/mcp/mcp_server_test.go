package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/progress"
)

// mockStateProvider is a mock implementation of ports.MCPStateProvider
// for testing.
type mockStateProvider struct {
	sessions  []*domain.StudySession
	upcoming  []*domain.StudySession
	summary   progress.Summary
	completed []string
}

func (m *mockStateProvider) ListSessions(ctx context.Context) ([]*domain.StudySession, error) {
	return m.sessions, nil
}

func (m *mockStateProvider) UpcomingSessions(ctx context.Context, from time.Time) ([]*domain.StudySession, error) {
	return m.upcoming, nil
}

func (m *mockStateProvider) GetProgress(ctx context.Context) (progress.Summary, error) {
	return m.summary, nil
}

func (m *mockStateProvider) ScheduleSession(ctx context.Context, subject, topic string, duration time.Duration, start time.Time) (*domain.StudySession, error) {
	session, err := domain.NewStudySession(subject, duration, start)
	if err != nil {
		return nil, err
	}
	session.Topic = topic
	m.sessions = append(m.sessions, session)
	return session, nil
}

func (m *mockStateProvider) CompleteSession(ctx context.Context, id string) error {
	m.completed = append(m.completed, id)
	return nil
}

func mustSession(t *testing.T, subject string) *domain.StudySession {
	t.Helper()
	session, err := domain.NewStudySession(subject, 45*time.Minute, time.Now())
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("nil tool result")
	}
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatal("tool result content is not text")
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.stateProvider != mock {
		t.Error("NewServer() did not set state provider correctly")
	}
	if server.server == nil {
		t.Error("NewServer() did not create MCP server")
	}
}

func TestServer_IsRunning(t *testing.T) {
	server := NewServer(&mockStateProvider{})

	if server.IsRunning() {
		t.Error("IsRunning() should return false before Start()")
	}
}

func TestServer_Stop(t *testing.T) {
	server := NewServer(&mockStateProvider{})

	// Stop before Start should not panic
	if err := server.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestServer_handleListSessions(t *testing.T) {
	mock := &mockStateProvider{
		sessions: []*domain.StudySession{
			mustSession(t, "Linear Algebra"),
			mustSession(t, "Organic Chemistry"),
		},
	}

	server := NewServer(mock)
	result, err := server.handleListSessions(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleListSessions() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Linear Algebra") {
		t.Error("result should contain the session subject")
	}
	if !strings.Contains(text, `"total_count": 2`) {
		t.Error("result should report the session count")
	}
}

func TestServer_handleUpcomingSessions_Empty(t *testing.T) {
	server := NewServer(&mockStateProvider{})

	result, err := server.handleUpcomingSessions(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleUpcomingSessions() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, `"total_count": 0`) {
		t.Error("empty planner should report zero upcoming sessions")
	}
}

func TestServer_handleGetProgress(t *testing.T) {
	mock := &mockStateProvider{
		summary: progress.Summary{
			CurrentStreak: 3,
			LongestStreak: 7,
			TodayMinutes:  60,
			DailyPercent:  50,
		},
	}

	server := NewServer(mock)
	result, err := server.handleGetProgress(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleGetProgress() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, `"current_streak": 3`) {
		t.Error("result should contain the current streak")
	}
	if !strings.Contains(text, `"longest_streak": 7`) {
		t.Error("result should contain the longest streak")
	}
}

func TestServer_handleScheduleSession(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"subject":          "Spanish",
				"topic":            "Subjunctive",
				"duration_minutes": float64(30),
			},
		},
	}

	result, err := server.handleScheduleSession(context.Background(), request)
	if err != nil {
		t.Fatalf("handleScheduleSession() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handleScheduleSession() returned error result: %s", resultText(t, result))
	}

	if len(mock.sessions) != 1 {
		t.Fatalf("expected 1 scheduled session, got %d", len(mock.sessions))
	}
	if mock.sessions[0].Duration != 30*time.Minute {
		t.Errorf("duration = %v, want 30m", mock.sessions[0].Duration)
	}
	if mock.sessions[0].Topic != "Subjunctive" {
		t.Errorf("topic = %q, want Subjunctive", mock.sessions[0].Topic)
	}
}

func TestServer_handleScheduleSession_MissingSubject(t *testing.T) {
	server := NewServer(&mockStateProvider{})

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := server.handleScheduleSession(context.Background(), request)
	if err != nil {
		t.Fatalf("handleScheduleSession() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleScheduleSession() should return error for missing subject")
	}
}

func TestServer_handleCompleteSession(t *testing.T) {
	mock := &mockStateProvider{}
	server := NewServer(mock)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"session_id": "abc-123",
			},
		},
	}

	result, err := server.handleCompleteSession(context.Background(), request)
	if err != nil {
		t.Fatalf("handleCompleteSession() error = %v", err)
	}
	if result.IsError {
		t.Error("handleCompleteSession() returned error result")
	}
	if len(mock.completed) != 1 || mock.completed[0] != "abc-123" {
		t.Errorf("completed = %v, want [abc-123]", mock.completed)
	}
}

func TestServer_handleCompleteSession_MissingID(t *testing.T) {
	server := NewServer(&mockStateProvider{})

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := server.handleCompleteSession(context.Background(), request)
	if err != nil {
		t.Fatalf("handleCompleteSession() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleCompleteSession() should return error for missing session_id")
	}
}
