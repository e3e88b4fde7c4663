package domain

// Goals holds the user's study targets. They are owned by the host
// (persisted in the config file) and only read by the progress
// calculator; zero values mean "no target set".
type Goals struct {
	DailyMinutes   int
	WeeklyMinutes  int
	WeeklySessions int
}

// DefaultGoals returns the out-of-the-box targets.
func DefaultGoals() Goals {
	return Goals{
		DailyMinutes:   120,
		WeeklyMinutes:  600,
		WeeklySessions: 7,
	}
}
