package cmd

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kaesv/studyflow/internal/adapters/tui"
	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/progress"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"streak"},
	Short:   "Show the goals and streaks dashboard",
	Long:    `Display daily and weekly goal progress, study streaks, and a per-subject breakdown for the current week.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		summary, err := progressService.GetProgress(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute progress: %w", err)
		}

		weekSessions, err := storageAdapter.Sessions().FindBetween(ctx, summary.WeekStart, summary.WeekStart.AddDate(0, 0, 7))
		if err != nil {
			return fmt.Errorf("failed to load week history: %w", err)
		}

		fmt.Println()
		renderDashboard(summary, progressService.Goals(), weekSessions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func renderDashboard(summary progress.Summary, goals domain.Goals, weekSessions []*domain.StudySession) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(appConfig.Theme.ColorStudy))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appConfig.Theme.ColorHelp))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appConfig.Theme.ColorStudy))

	// Header
	fmt.Printf("  %s\n", titleStyle.Render(fmt.Sprintf("Week of %s", summary.WeekStart.Format("Jan 2"))))
	fmt.Printf("  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	// Streaks
	fmt.Printf("  %s current streak: %s   longest: %s\n\n",
		appConfig.Theme.IconStreak,
		valueStyle.Render(fmt.Sprintf("%d days", summary.CurrentStreak)),
		valueStyle.Render(fmt.Sprintf("%d days", summary.LongestStreak)),
	)

	// Goal bars
	barWidth := tui.TerminalWidth() - 30
	if barWidth > 30 {
		barWidth = 30
	}
	if barWidth < 10 {
		barWidth = 10
	}

	renderGoalBar("Today", summary.TodayMinutes, goals.DailyMinutes, "m", summary.DailyPercent, barWidth, dimStyle, barStyle, valueStyle)
	renderGoalBar("Week", summary.WeekMinutes, goals.WeeklyMinutes, "m", summary.WeeklyMinutesPercent, barWidth, dimStyle, barStyle, valueStyle)
	renderGoalBar("Sessions", summary.WeekSessions, goals.WeeklySessions, "", summary.WeeklySessionsPercent, barWidth, dimStyle, barStyle, valueStyle)
	fmt.Println()

	// Per-subject breakdown for the week
	renderSubjectBreakdown(weekSessions, barWidth, dimStyle, barStyle, valueStyle)
}

// renderGoalBar prints one labelled progress bar.
func renderGoalBar(label string, current, target int, unit string, percent float64, width int, dimStyle, barStyle, valueStyle lipgloss.Style) {
	filled := int(math.Round(percent / 100 * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))

	fmt.Printf("  %s %s %s\n",
		dimStyle.Render(fmt.Sprintf("%-9s", label)),
		bar,
		valueStyle.Render(fmt.Sprintf("%d/%d%s (%.0f%%)", current, target, unit, percent)),
	)
}

// subjectEntry pairs a subject with its studied minutes for sorting.
type subjectEntry struct {
	Subject string
	Minutes int
}

func renderSubjectBreakdown(sessions []*domain.StudySession, width int, dimStyle, barStyle, valueStyle lipgloss.Style) {
	minutes := make(map[string]int)
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		minutes[s.Subject] += int(s.Duration.Minutes())
	}
	if len(minutes) == 0 {
		fmt.Printf("  %s\n\n", dimStyle.Render("No completed sessions this week."))
		return
	}

	entries := make([]subjectEntry, 0, len(minutes))
	maxMinutes := 0
	for subject, m := range minutes {
		entries = append(entries, subjectEntry{Subject: subject, Minutes: m})
		if m > maxMinutes {
			maxMinutes = m
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Minutes > entries[j].Minutes
	})

	fmt.Printf("  %s\n", dimStyle.Render("Minutes by subject"))
	for _, e := range entries {
		barWidth := 0
		if maxMinutes > 0 {
			barWidth = int(math.Round(float64(e.Minutes) / float64(maxMinutes) * float64(width)))
		}
		if barWidth < 1 && e.Minutes > 0 {
			barWidth = 1
		}
		fmt.Printf("  %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("%-14.14s", e.Subject)),
			barStyle.Render(strings.Repeat("█", barWidth)),
			valueStyle.Render(formatMinutes(time.Duration(e.Minutes)*time.Minute)),
		)
	}
	fmt.Println()
}
