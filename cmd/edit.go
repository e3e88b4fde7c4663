package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/services"
)

var (
	editSubject    string
	editTopic      string
	editDesc       string
	editDifficulty string
	editDuration   string
	editAt         string
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [session-id]",
	Short: "Edit a scheduled session",
	Long:  `Change fields of a scheduled session. Completed sessions cannot be edited.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		req := services.EditRequest{}

		if cmd.Flags().Changed("subject") {
			req.Subject = &editSubject
		}
		if cmd.Flags().Changed("topic") {
			req.Topic = &editTopic
		}
		if cmd.Flags().Changed("desc") {
			req.Description = &editDesc
		}
		if cmd.Flags().Changed("difficulty") {
			validated, err := domain.ValidateDifficulty(editDifficulty)
			if err != nil {
				return fmt.Errorf("%w: %s (use easy, medium or hard)", err, editDifficulty)
			}
			req.Difficulty = &validated
		}
		if cmd.Flags().Changed("duration") {
			parsed, err := parseDurationInput(editDuration)
			if err != nil {
				return err
			}
			req.Duration = &parsed
		}
		if cmd.Flags().Changed("at") {
			parsed, err := parseStartInput(editAt)
			if err != nil {
				return err
			}
			req.StartTime = &parsed
		}

		session, err := sessionService.Edit(ctx, args[0], req)
		if err != nil {
			return fmt.Errorf("failed to edit session: %w", err)
		}

		if jsonOutput {
			jsonData, err := json.MarshalIndent(sessionJSON(session), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal session: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("%s Session updated: %s at %s\n", appConfig.Theme.IconDone,
			session.Subject, session.StartTime.Format(time.RFC822))
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editSubject, "subject", "", "New subject")
	editCmd.Flags().StringVarP(&editTopic, "topic", "t", "", "New topic")
	editCmd.Flags().StringVar(&editDesc, "desc", "", "New description")
	editCmd.Flags().StringVar(&editDifficulty, "difficulty", "", "New difficulty: easy, medium or hard")
	editCmd.Flags().StringVarP(&editDuration, "duration", "d", "", "New planned length")
	editCmd.Flags().StringVar(&editAt, "at", "", "New start time")
	rootCmd.AddCommand(editCmd)
}
