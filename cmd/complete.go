package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaesv/studyflow/internal/domain"
)

// completeCmd represents the complete command
var completeCmd = &cobra.Command{
	Use:   "complete [session-id]",
	Short: "Mark a session as completed",
	Long:  `Mark a study session as completed. Completion is one-way and feeds the streak calculator.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		session, err := sessionService.Complete(ctx, args[0])
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyCompleted) {
				return fmt.Errorf("session already completed: %s", args[0])
			}
			return fmt.Errorf("failed to complete session: %w", err)
		}

		fmt.Printf("%s Completed: %s (%s studied)\n", appConfig.Theme.IconDone,
			session.Subject, formatMinutes(session.Duration))

		summary, err := progressService.GetProgress(ctx)
		if err == nil && summary.CurrentStreak > 1 {
			fmt.Printf("%s %d-day streak!\n", appConfig.Theme.IconStreak, summary.CurrentStreak)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
}
