package services

import (
	"context"
	"testing"
	"time"

	"github.com/kaesv/studyflow/internal/domain"
)

func TestProgressService_GetProgress(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	sessionService := NewSessionService(store, nil)
	service := NewProgressService(store, domain.Goals{DailyMinutes: 120, WeeklyMinutes: 600, WeeklySessions: 7})
	service.SetSessionService(sessionService)
	ctx := context.Background()

	t.Run("empty history", func(t *testing.T) {
		sum, err := service.GetProgress(ctx)
		if err != nil {
			t.Fatalf("GetProgress() error = %v", err)
		}
		if sum.CurrentStreak != 0 || sum.TodayMinutes != 0 {
			t.Errorf("empty history should produce zero metrics, got %+v", sum)
		}
	})

	t.Run("one completed session today", func(t *testing.T) {
		session, err := sessionService.Schedule(ctx, ScheduleRequest{
			Subject:   "Math",
			Duration:  60 * time.Minute,
			StartTime: time.Now().Add(-time.Hour),
		})
		if err != nil {
			t.Fatalf("Schedule() error = %v", err)
		}
		if _, err := sessionService.Complete(ctx, session.ID); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}

		sum, err := service.GetProgress(ctx)
		if err != nil {
			t.Fatalf("GetProgress() error = %v", err)
		}
		if sum.CurrentStreak != 1 {
			t.Errorf("CurrentStreak = %d, want 1", sum.CurrentStreak)
		}
		if sum.TodayMinutes != 60 {
			t.Errorf("TodayMinutes = %d, want 60", sum.TodayMinutes)
		}
		if sum.DailyPercent != 50 {
			t.Errorf("DailyPercent = %v, want 50", sum.DailyPercent)
		}
	})
}

func TestProgressService_MCPProvider(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	sessionService := NewSessionService(store, nil)
	service := NewProgressService(store, domain.DefaultGoals())
	service.SetSessionService(sessionService)
	ctx := context.Background()

	session, err := service.ScheduleSession(ctx, "Biology", "Cells", 45*time.Minute, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("ScheduleSession() error = %v", err)
	}

	upcoming, err := service.UpcomingSessions(ctx, time.Now())
	if err != nil {
		t.Fatalf("UpcomingSessions() error = %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("UpcomingSessions() = %d sessions, want 1", len(upcoming))
	}

	if err := service.CompleteSession(ctx, session.ID); err != nil {
		t.Fatalf("CompleteSession() error = %v", err)
	}

	all, err := service.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(all) != 1 || !all[0].Completed {
		t.Error("ListSessions() should reflect the completion")
	}
}
