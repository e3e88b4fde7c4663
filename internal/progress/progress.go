// Package progress derives goal progress and study streaks from session
// history. Everything here is a pure function of (sessions, goals, now):
// no mutation, no clock reads, safe to recompute on every render.
package progress

import (
	"sort"
	"time"

	"github.com/kaesv/studyflow/internal/domain"
)

// Summary holds all derived progress metrics for display.
type Summary struct {
	CurrentStreak int
	LongestStreak int

	TodayMinutes int
	DailyPercent float64

	WeekStart    time.Time
	WeekMinutes  int
	WeekSessions int

	WeeklyMinutesPercent  float64
	WeeklySessionsPercent float64
}

// Calculate derives the full progress summary.
func Calculate(sessions []*domain.StudySession, goals domain.Goals, now time.Time) Summary {
	weekStart := WeekStart(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var todayMinutes, weekMinutes, weekSessions int
	today := dateOf(now)

	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		start := s.StartTime.In(now.Location())
		if dateOf(start).Equal(today) {
			todayMinutes += int(s.Duration.Minutes())
		}
		if !start.Before(weekStart) && start.Before(weekEnd) {
			weekMinutes += int(s.Duration.Minutes())
			weekSessions++
		}
	}

	return Summary{
		CurrentStreak:         CurrentStreak(sessions, now),
		LongestStreak:         LongestStreak(sessions, now),
		TodayMinutes:          todayMinutes,
		DailyPercent:          Percent(todayMinutes, goals.DailyMinutes),
		WeekStart:             weekStart,
		WeekMinutes:           weekMinutes,
		WeekSessions:          weekSessions,
		WeeklyMinutesPercent:  Percent(weekMinutes, goals.WeeklyMinutes),
		WeeklySessionsPercent: Percent(weekSessions, goals.WeeklySessions),
	}
}

// WeekStart returns midnight of the most recent Sunday (or today, if
// now is a Sunday), in now's location.
func WeekStart(now time.Time) time.Time {
	midnight := dateOf(now)
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// Percent reports current against target as a 0-100 percentage,
// uncapped. A target of zero never divides: it counts as trivially met
// (100) once anything was done, and 0 otherwise.
func Percent(current, target int) float64 {
	if target <= 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current) / float64(target) * 100
}

// completedDates returns the distinct local calendar dates that contain
// at least one completed session start, sorted ascending.
func completedDates(sessions []*domain.StudySession, loc *time.Location) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		d := dateOf(s.StartTime.In(loc))
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// CurrentStreak counts consecutive study days ending today or
// yesterday. A day counts when at least one completed session started
// on it; a streak broken before yesterday is worth zero.
func CurrentStreak(sessions []*domain.StudySession, now time.Time) int {
	dates := completedDates(sessions, now.Location())
	if len(dates) == 0 {
		return 0
	}

	anchor := dateOf(now)
	latest := dates[len(dates)-1]
	if !latest.Equal(anchor) {
		yesterday := anchor.AddDate(0, 0, -1)
		if !latest.Equal(yesterday) {
			return 0
		}
		anchor = yesterday
	}

	streak := 0
	for i := len(dates) - 1; i >= 0; i-- {
		if !dates[i].Equal(anchor) {
			break
		}
		streak++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive study days in
// the whole history.
func LongestStreak(sessions []*domain.StudySession, now time.Time) int {
	dates := completedDates(sessions, now.Location())
	if len(dates) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour || dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
