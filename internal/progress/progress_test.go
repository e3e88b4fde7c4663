package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaesv/studyflow/internal/domain"
)

// completedAt builds a completed session starting at the given time.
func completedAt(t *testing.T, start time.Time, minutes int) *domain.StudySession {
	t.Helper()
	s, err := domain.NewStudySession("Math", time.Duration(minutes)*time.Minute, start)
	require.NoError(t, err)
	s.Complete()
	return s
}

// pendingAt builds a not-yet-completed session.
func pendingAt(t *testing.T, start time.Time, minutes int) *domain.StudySession {
	t.Helper()
	s, err := domain.NewStudySession("Math", time.Duration(minutes)*time.Minute, start)
	require.NoError(t, err)
	return s
}

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.Local)

	t.Run("zero with no completed sessions", func(t *testing.T) {
		assert.Equal(t, 0, CurrentStreak(nil, now))
		assert.Equal(t, 0, CurrentStreak([]*domain.StudySession{
			pendingAt(t, now, 30),
		}, now))
	})

	t.Run("one session today", func(t *testing.T) {
		sessions := []*domain.StudySession{completedAt(t, now.Add(-2*time.Hour), 30)}
		assert.Equal(t, 1, CurrentStreak(sessions, now))
	})

	t.Run("today and yesterday", func(t *testing.T) {
		sessions := []*domain.StudySession{
			completedAt(t, now, 30),
			completedAt(t, now.AddDate(0, 0, -1), 30),
		}
		assert.Equal(t, 2, CurrentStreak(sessions, now))
	})

	t.Run("anchored at yesterday when today has none", func(t *testing.T) {
		sessions := []*domain.StudySession{
			completedAt(t, now.AddDate(0, 0, -1), 30),
			completedAt(t, now.AddDate(0, 0, -2), 30),
		}
		assert.Equal(t, 2, CurrentStreak(sessions, now))
	})

	t.Run("broken before yesterday", func(t *testing.T) {
		sessions := []*domain.StudySession{
			completedAt(t, now.AddDate(0, 0, -2), 30),
			completedAt(t, now.AddDate(0, 0, -3), 30),
		}
		assert.Equal(t, 0, CurrentStreak(sessions, now))
	})

	t.Run("gap limits the streak", func(t *testing.T) {
		sessions := []*domain.StudySession{
			completedAt(t, now, 30),
			completedAt(t, now.AddDate(0, 0, -1), 30),
			// gap at -2
			completedAt(t, now.AddDate(0, 0, -3), 30),
		}
		assert.Equal(t, 2, CurrentStreak(sessions, now))
	})

	t.Run("multiple sessions per day count once", func(t *testing.T) {
		sessions := []*domain.StudySession{
			completedAt(t, now, 30),
			completedAt(t, now.Add(-3*time.Hour), 30),
		}
		assert.Equal(t, 1, CurrentStreak(sessions, now))
	})
}

func TestLongestStreak(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.Local)

	t.Run("finds historical run", func(t *testing.T) {
		var sessions []*domain.StudySession
		// 5-day run three weeks ago, 2-day run now.
		for i := 0; i < 5; i++ {
			sessions = append(sessions, completedAt(t, now.AddDate(0, 0, -20-i), 30))
		}
		sessions = append(sessions,
			completedAt(t, now, 30),
			completedAt(t, now.AddDate(0, 0, -1), 30),
		)

		assert.Equal(t, 5, LongestStreak(sessions, now))
		assert.Equal(t, 2, CurrentStreak(sessions, now))
	})

	t.Run("at least the current streak", func(t *testing.T) {
		sessions := []*domain.StudySession{
			completedAt(t, now, 30),
			completedAt(t, now.AddDate(0, 0, -1), 30),
			completedAt(t, now.AddDate(0, 0, -2), 30),
		}
		assert.GreaterOrEqual(t, LongestStreak(sessions, now), CurrentStreak(sessions, now))
	})

	t.Run("empty history", func(t *testing.T) {
		assert.Equal(t, 0, LongestStreak(nil, now))
	})
}

func TestWeekStart(t *testing.T) {
	// Monday Aug 31 2026? Aug 30 2026 is a Sunday.
	monday := time.Date(2026, 8, 31, 14, 0, 0, 0, time.Local)
	sunday := time.Date(2026, 8, 30, 23, 59, 59, 0, time.Local)

	wantStart := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	assert.Equal(t, wantStart, WeekStart(monday))
	assert.Equal(t, wantStart, WeekStart(sunday), "a Sunday anchors its own week")
}

func TestCalculate_WeekWindow(t *testing.T) {
	// Monday afternoon; week runs [Sun Aug 30 00:00, Sun Sep 6 00:00).
	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.Local)
	goals := domain.Goals{DailyMinutes: 120, WeeklyMinutes: 300, WeeklySessions: 4}

	saturdayLate := time.Date(2026, 8, 29, 23, 59, 59, 0, time.Local)
	sundayMidnight := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)

	sessions := []*domain.StudySession{
		completedAt(t, saturdayLate, 45),    // previous week
		completedAt(t, sundayMidnight, 60),  // this week, boundary inclusive
		completedAt(t, now.Add(-time.Hour), 90), // today
		pendingAt(t, now.Add(2*time.Hour), 30),  // scheduled, not counted
	}

	sum := Calculate(sessions, goals, now)

	assert.Equal(t, 150, sum.WeekMinutes, "Saturday 23:59:59 belongs to the previous week")
	assert.Equal(t, 2, sum.WeekSessions)
	assert.Equal(t, 90, sum.TodayMinutes)
	assert.InDelta(t, 75.0, sum.DailyPercent, 0.001)
	assert.InDelta(t, 50.0, sum.WeeklyMinutesPercent, 0.001)
	assert.InDelta(t, 50.0, sum.WeeklySessionsPercent, 0.001)
}

func TestCalculate_DailyPercent(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	today9am := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)

	sessions := []*domain.StudySession{completedAt(t, today9am, 60)}
	sum := Calculate(sessions, domain.Goals{DailyMinutes: 120}, now)

	assert.Equal(t, 60, sum.TodayMinutes)
	assert.InDelta(t, 50.0, sum.DailyPercent, 0.001)
}

func TestPercent_ZeroTarget(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 100.0, Percent(30, 0))
	assert.Equal(t, 0.0, Percent(0, -5))
	assert.InDelta(t, 50.0, Percent(60, 120), 0.001)
	// Overachievement is not clamped.
	assert.InDelta(t, 200.0, Percent(240, 120), 0.001)
}
