// Package mcp provides the MCP (Model Context Protocol) server
// implementation, exposing the study planner to AI assistants.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"studyflow",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: list_sessions
	s.server.AddTool(
		mcp.NewTool(
			"list_sessions",
			mcp.WithDescription("List all study sessions, newest first"),
		),
		s.handleListSessions,
	)

	// Tool: upcoming_sessions
	s.server.AddTool(
		mcp.NewTool(
			"upcoming_sessions",
			mcp.WithDescription("List scheduled study sessions that have not been completed yet"),
		),
		s.handleUpcomingSessions,
	)

	// Tool: get_progress
	s.server.AddTool(
		mcp.NewTool(
			"get_progress",
			mcp.WithDescription("Get goal progress and study streaks derived from session history"),
		),
		s.handleGetProgress,
	)

	// Tool: schedule_session
	scheduleTool := mcp.NewTool(
		"schedule_session",
		mcp.WithDescription("Schedule a new study session"),
		mcp.WithString(
			"subject",
			mcp.Required(),
			mcp.Description("The subject to study"),
		),
		mcp.WithString(
			"topic",
			mcp.Description("Optional topic within the subject"),
		),
		mcp.WithNumber(
			"duration_minutes",
			mcp.Description("Session length in minutes (default: 45)"),
		),
		mcp.WithString(
			"start_time",
			mcp.Description("Start time in RFC 3339 format (default: now)"),
		),
	)
	s.server.AddTool(scheduleTool, s.handleScheduleSession)

	// Tool: complete_session
	completeTool := mcp.NewTool(
		"complete_session",
		mcp.WithDescription("Mark a study session as completed"),
		mcp.WithString(
			"session_id",
			mcp.Required(),
			mcp.Description("The ID of the session to complete"),
		),
	)
	s.server.AddTool(completeTool, s.handleCompleteSession)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// sessionData flattens a session for tool output.
func sessionData(session *domain.StudySession) map[string]interface{} {
	data := map[string]interface{}{
		"id":         session.ID,
		"subject":    session.Subject,
		"duration":   session.Duration.String(),
		"start_time": session.StartTime.Format(time.RFC3339),
		"completed":  session.Completed,
	}

	if session.Topic != "" {
		data["topic"] = session.Topic
	}
	if session.Description != "" {
		data["description"] = session.Description
	}
	if session.Difficulty != "" {
		data["difficulty"] = string(session.Difficulty)
	}
	if len(session.Goals) > 0 {
		data["goals"] = session.Goals
	}
	if session.CompletedAt != nil {
		data["completed_at"] = session.CompletedAt.Format(time.RFC3339)
	}
	if session.RepoBranch != "" {
		data["repo_branch"] = session.RepoBranch
	}
	if session.RepoCommit != "" {
		data["repo_commit"] = session.RepoCommit
	}
	return data
}

// handleListSessions handles the list_sessions tool.
func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.stateProvider.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	list := make([]map[string]interface{}, 0, len(sessions))
	for _, session := range sessions {
		list = append(list, sessionData(session))
	}

	result := map[string]interface{}{
		"sessions":    list,
		"total_count": len(list),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sessions: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleUpcomingSessions handles the upcoming_sessions tool.
func (s *Server) handleUpcomingSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.stateProvider.UpcomingSessions(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming sessions: %w", err)
	}

	list := make([]map[string]interface{}, 0, len(sessions))
	for _, session := range sessions {
		list = append(list, sessionData(session))
	}

	result := map[string]interface{}{
		"sessions":    list,
		"total_count": len(list),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sessions: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetProgress handles the get_progress tool.
func (s *Server) handleGetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := s.stateProvider.GetProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	result := map[string]interface{}{
		"current_streak":          summary.CurrentStreak,
		"longest_streak":          summary.LongestStreak,
		"today_minutes":           summary.TodayMinutes,
		"daily_percent":           summary.DailyPercent,
		"week_start":              summary.WeekStart.Format("2006-01-02"),
		"week_minutes":            summary.WeekMinutes,
		"week_sessions":           summary.WeekSessions,
		"weekly_minutes_percent":  summary.WeeklyMinutesPercent,
		"weekly_sessions_percent": summary.WeeklySessionsPercent,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal progress: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleScheduleSession handles the schedule_session tool.
func (s *Server) handleScheduleSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subject, err := request.RequireString("subject")
	if err != nil {
		return mcp.NewToolResultError("subject is required: " + err.Error()), nil
	}

	topic := request.GetString("topic", "")

	duration := 45 * time.Minute
	// JSON numbers arrive as float64; tolerate string-typed numbers too.
	if d := request.GetFloat("duration_minutes", 0); d > 0 {
		duration = time.Duration(d) * time.Minute
	} else if raw := request.GetString("duration_minutes", ""); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil && m > 0 {
			duration = time.Duration(m) * time.Minute
		}
	}

	start := time.Now()
	if raw := request.GetString("start_time", ""); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start_time: %v", err)), nil
		}
		start = parsed
	}

	session, err := s.stateProvider.ScheduleSession(ctx, subject, topic, duration, start)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to schedule session: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(sessionData(session), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleCompleteSession handles the complete_session tool.
func (s *Server) handleCompleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id is required: " + err.Error()), nil
	}

	if err := s.stateProvider.CompleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete session: %v", err)), nil
	}

	result := map[string]interface{}{
		"session_id": sessionID,
		"completed":  true,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
