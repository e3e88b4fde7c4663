package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// studyCmd represents the study command
var studyCmd = &cobra.Command{
	Use:   "study [session-id]",
	Short: "Run the countdown timer for a session",
	Long: `Open the fullscreen countdown for a study session. Without an ID the
next upcoming session is used. The timer follows the session's own
duration, or a fixed 25/5 Pomodoro cadence when switched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if len(args) == 1 {
			session, err := sessionService.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to find session: %w", err)
			}
			if session.Completed {
				return fmt.Errorf("session %s is already completed", session.ID[:8])
			}
			return launchTimer(ctx, session)
		}

		next, err := sessionService.NextUpcoming(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to check schedule: %w", err)
		}
		if next == nil {
			return fmt.Errorf("nothing scheduled; add a session first with \"studyflow add\"")
		}
		return launchTimer(ctx, next)
	},
}

func init() {
	rootCmd.AddCommand(studyCmd)
}
