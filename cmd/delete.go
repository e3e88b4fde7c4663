package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaesv/studyflow/internal/domain"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session",
	Long:  `Delete a session by its ID. Use with caution - this cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		session, err := sessionService.Get(ctx, args[0])
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return fmt.Errorf("session not found: %s", args[0])
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		if !jsonOutput {
			fmt.Printf("Delete session \"%s\" (%s)? [y/N]: ", session.Subject, session.ID[:8])
			var confirm string
			fmt.Scanln(&confirm)
			if confirm != "y" && confirm != "Y" {
				fmt.Println("Deletion cancelled.")
				return nil
			}
		}

		if err := sessionService.Delete(ctx, session.ID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		if jsonOutput {
			fmt.Printf("{\"deleted\": true, \"session_id\": %q}\n", session.ID)
		} else {
			fmt.Printf("%s Session \"%s\" deleted.\n", appConfig.Theme.IconDone, session.Subject)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
