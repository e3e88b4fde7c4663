package services

import (
	"context"
	"testing"
	"time"

	"github.com/kaesv/studyflow/internal/adapters/storage"
	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/ports"
)

func setupTestStorage(t *testing.T) (ports.Storage, func()) {
	t.Helper()
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return store, func() { _ = store.Close() }
}

func TestSessionService_Schedule(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewSessionService(store, nil)
	ctx := context.Background()

	t.Run("schedule a session", func(t *testing.T) {
		session, err := service.Schedule(ctx, ScheduleRequest{
			Subject:    "Spanish",
			Topic:      "Subjunctive",
			Difficulty: domain.DifficultyHard,
			Duration:   30 * time.Minute,
			StartTime:  time.Now().Add(time.Hour),
			Goals:      []string{"conjugation drills"},
		})
		if err != nil {
			t.Fatalf("Schedule() error = %v", err)
		}
		if session.ID == "" {
			t.Error("scheduled session should have an ID")
		}
		if session.Difficulty != domain.DifficultyHard {
			t.Errorf("Difficulty = %v, want hard", session.Difficulty)
		}
	})

	t.Run("rejects empty subject", func(t *testing.T) {
		_, err := service.Schedule(ctx, ScheduleRequest{
			Duration:  30 * time.Minute,
			StartTime: time.Now(),
		})
		if err == nil {
			t.Error("Schedule() should reject an empty subject")
		}
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := service.Schedule(ctx, ScheduleRequest{
			Subject:   "Spanish",
			StartTime: time.Now(),
		})
		if err == nil {
			t.Error("Schedule() should reject a zero duration")
		}
	})
}

func TestSessionService_Complete(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewSessionService(store, nil)
	ctx := context.Background()

	session, err := service.Schedule(ctx, ScheduleRequest{
		Subject:   "Spanish",
		Duration:  30 * time.Minute,
		StartTime: time.Now(),
	})
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}

	t.Run("complete once", func(t *testing.T) {
		completed, err := service.Complete(ctx, session.ID)
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if !completed.Completed {
			t.Error("session should be completed")
		}
	})

	t.Run("completion is one-way", func(t *testing.T) {
		_, err := service.Complete(ctx, session.ID)
		if err != domain.ErrAlreadyCompleted {
			t.Errorf("error = %v, want ErrAlreadyCompleted", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := service.Complete(ctx, "missing")
		if err == nil {
			t.Error("Complete() should fail for an unknown session")
		}
	})
}

func TestSessionService_Edit(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewSessionService(store, nil)
	ctx := context.Background()

	session, _ := service.Schedule(ctx, ScheduleRequest{
		Subject:   "Spanish",
		Duration:  30 * time.Minute,
		StartTime: time.Now().Add(time.Hour),
	})

	t.Run("change topic and duration", func(t *testing.T) {
		topic := "Past tense"
		dur := time.Hour
		edited, err := service.Edit(ctx, session.ID, EditRequest{
			Topic:    &topic,
			Duration: &dur,
		})
		if err != nil {
			t.Fatalf("Edit() error = %v", err)
		}
		if edited.Topic != "Past tense" || edited.Duration != time.Hour {
			t.Errorf("Edit() did not apply changes: %+v", edited)
		}
		if edited.Subject != "Spanish" {
			t.Error("untouched fields must be preserved")
		}
	})

	t.Run("rejects invalid duration", func(t *testing.T) {
		bad := -time.Minute
		_, err := service.Edit(ctx, session.ID, EditRequest{Duration: &bad})
		if err != domain.ErrInvalidDuration {
			t.Errorf("error = %v, want ErrInvalidDuration", err)
		}
	})

	t.Run("completed sessions are immutable", func(t *testing.T) {
		_, err := service.Complete(ctx, session.ID)
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}

		topic := "anything"
		_, err = service.Edit(ctx, session.ID, EditRequest{Topic: &topic})
		if err != domain.ErrAlreadyCompleted {
			t.Errorf("error = %v, want ErrAlreadyCompleted", err)
		}
	})
}

func TestSessionService_NextUpcoming(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewSessionService(store, nil)
	ctx := context.Background()
	now := time.Now()

	t.Run("empty calendar", func(t *testing.T) {
		next, err := service.NextUpcoming(ctx, now)
		if err != nil {
			t.Fatalf("NextUpcoming() error = %v", err)
		}
		if next != nil {
			t.Errorf("NextUpcoming() = %v, want nil", next)
		}
	})

	t.Run("soonest wins", func(t *testing.T) {
		_, _ = service.Schedule(ctx, ScheduleRequest{
			Subject: "Later", Duration: 30 * time.Minute, StartTime: now.Add(5 * time.Hour),
		})
		_, _ = service.Schedule(ctx, ScheduleRequest{
			Subject: "Sooner", Duration: 30 * time.Minute, StartTime: now.Add(time.Hour),
		})

		next, err := service.NextUpcoming(ctx, now)
		if err != nil {
			t.Fatalf("NextUpcoming() error = %v", err)
		}
		if next == nil || next.Subject != "Sooner" {
			t.Errorf("NextUpcoming() = %v, want the Sooner session", next)
		}
	})
}
