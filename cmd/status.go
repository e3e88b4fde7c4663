package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the next session and today's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		next, err := sessionService.NextUpcoming(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to check schedule: %w", err)
		}

		summary, err := progressService.GetProgress(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute progress: %w", err)
		}

		if jsonOutput {
			data := map[string]interface{}{
				"today_minutes":  summary.TodayMinutes,
				"daily_percent":  summary.DailyPercent,
				"current_streak": summary.CurrentStreak,
			}
			if next != nil {
				data["next_session"] = sessionJSON(next)
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal status: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		if next != nil {
			label := next.Subject
			if next.Topic != "" {
				label += " / " + next.Topic
			}
			fmt.Printf("%s Next: %s — %s, %s\n", appConfig.Theme.IconApp, label,
				next.StartTime.Format("Mon Jan 2 15:04"), formatMinutes(next.Duration))
		} else {
			fmt.Println("Nothing scheduled.")
		}

		goals := progressService.Goals()
		fmt.Printf("   Today: %dm of %dm (%.0f%%)\n",
			summary.TodayMinutes, goals.DailyMinutes, summary.DailyPercent)
		if summary.CurrentStreak > 0 {
			fmt.Printf("   %s %d-day streak\n", appConfig.Theme.IconStreak, summary.CurrentStreak)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
