package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaesv/studyflow/internal/config"
)

var (
	goalsDaily          int
	goalsWeeklyMinutes  int
	goalsWeeklySessions int
)

// goalsCmd represents the goals command
var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show the configured study goals",
	Long: `Show the daily and weekly study targets. Goals live in the config
file and only change through "studyflow goals set"; progress is always
derived from session history against these targets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		goals := progressService.Goals()

		if jsonOutput {
			data := map[string]interface{}{
				"daily_minutes":   goals.DailyMinutes,
				"weekly_minutes":  goals.WeeklyMinutes,
				"weekly_sessions": goals.WeeklySessions,
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal goals: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("%s Study goals:\n", appConfig.Theme.IconApp)
		fmt.Printf("   Daily:  %d minutes\n", goals.DailyMinutes)
		fmt.Printf("   Weekly: %d minutes, %d sessions\n", goals.WeeklyMinutes, goals.WeeklySessions)
		return nil
	},
}

// goalsSetCmd represents the goals set subcommand
var goalsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the study goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		changed := false
		if cmd.Flags().Changed("daily") {
			if goalsDaily < 0 {
				return fmt.Errorf("daily minutes cannot be negative")
			}
			appConfig.Goals.DailyMinutes = goalsDaily
			changed = true
		}
		if cmd.Flags().Changed("weekly-minutes") {
			if goalsWeeklyMinutes < 0 {
				return fmt.Errorf("weekly minutes cannot be negative")
			}
			appConfig.Goals.WeeklyMinutes = goalsWeeklyMinutes
			changed = true
		}
		if cmd.Flags().Changed("weekly-sessions") {
			if goalsWeeklySessions < 0 {
				return fmt.Errorf("weekly sessions cannot be negative")
			}
			appConfig.Goals.WeeklySessions = goalsWeeklySessions
			changed = true
		}
		if !changed {
			return fmt.Errorf("nothing to change; pass --daily, --weekly-minutes or --weekly-sessions")
		}

		if err := config.Save(appConfig); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		progressService.SetGoals(appConfig.Goals.ToDomain())

		fmt.Printf("%s Goals updated.\n", appConfig.Theme.IconDone)

		summary, err := progressService.GetProgress(ctx)
		if err == nil {
			fmt.Printf("   Today so far: %dm (%.0f%%)\n", summary.TodayMinutes, summary.DailyPercent)
		}
		return nil
	},
}

func init() {
	goalsSetCmd.Flags().IntVar(&goalsDaily, "daily", 0, "Daily target in minutes")
	goalsSetCmd.Flags().IntVar(&goalsWeeklyMinutes, "weekly-minutes", 0, "Weekly target in minutes")
	goalsSetCmd.Flags().IntVar(&goalsWeeklySessions, "weekly-sessions", 0, "Weekly target in completed sessions")
	goalsCmd.AddCommand(goalsSetCmd)
	rootCmd.AddCommand(goalsCmd)
}
