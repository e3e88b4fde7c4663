package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/services"
)

var (
	addTopic       string
	addDescription string
	addDifficulty  string
	addDuration    string
	addAt          string
	addGoals       []string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [subject]",
	Short: "Schedule a new study session",
	Long: `Schedule a new study session for a subject. By default the session
starts now with the configured default duration; use --at and
--duration to plan ahead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		subject := strings.Join(args, " ")

		duration := time.Duration(appConfig.Planner.DefaultDuration)
		if addDuration != "" {
			parsed, err := parseDurationInput(addDuration)
			if err != nil {
				return err
			}
			duration = parsed
		}

		start := time.Now()
		if addAt != "" {
			parsed, err := parseStartInput(addAt)
			if err != nil {
				return err
			}
			start = parsed
		}

		difficulty := domain.Difficulty(appConfig.Planner.DefaultDifficulty)
		if addDifficulty != "" {
			validated, err := domain.ValidateDifficulty(addDifficulty)
			if err != nil {
				return fmt.Errorf("%w: %s (use easy, medium or hard)", err, addDifficulty)
			}
			difficulty = validated
		}

		workingDir, _ := os.Getwd()

		session, err := sessionService.Schedule(ctx, services.ScheduleRequest{
			Subject:     subject,
			Topic:       addTopic,
			Description: addDescription,
			Difficulty:  difficulty,
			Duration:    duration,
			StartTime:   start,
			Goals:       addGoals,
			WorkingDir:  workingDir,
		})
		if err != nil {
			return fmt.Errorf("failed to schedule session: %w", err)
		}

		if jsonOutput {
			jsonData, err := json.MarshalIndent(sessionJSON(session), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal session: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("%s Session scheduled: %s", appConfig.Theme.IconDone, session.Subject)
		if session.Topic != "" {
			fmt.Printf(" / %s", session.Topic)
		}
		fmt.Printf(" — %s at %s (ID: %s)\n",
			formatMinutes(session.Duration),
			session.StartTime.Format("Mon Jan 2 15:04"),
			session.ID[:8])
		if session.RepoBranch != "" {
			fmt.Printf("   Workspace: %s\n", session.RepoBranch)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTopic, "topic", "t", "", "Topic within the subject")
	addCmd.Flags().StringVar(&addDescription, "desc", "", "Free-form description")
	addCmd.Flags().StringVar(&addDifficulty, "difficulty", "", "Difficulty: easy, medium or hard")
	addCmd.Flags().StringVarP(&addDuration, "duration", "d", "", "Planned length, minutes or duration (e.g. 45, 1h30m)")
	addCmd.Flags().StringVar(&addAt, "at", "", "Start time (e.g. \"2026-09-02 14:30\", \"15:04\")")
	addCmd.Flags().StringArrayVarP(&addGoals, "goal", "g", []string{}, "Session goal (repeatable)")
	rootCmd.AddCommand(addCmd)
}

// parseStartInput accepts "2006-01-02 15:04" or a bare "15:04" meaning
// today.
func parseStartInput(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("15:04", s, time.Local); err == nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("invalid start time %q (use \"2006-01-02 15:04\" or \"15:04\")", s)
}

// sessionJSON flattens a session for --json output.
func sessionJSON(session *domain.StudySession) map[string]interface{} {
	data := map[string]interface{}{
		"id":         session.ID,
		"subject":    session.Subject,
		"topic":      session.Topic,
		"difficulty": string(session.Difficulty),
		"duration":   session.Duration.String(),
		"start_time": session.StartTime.Format(time.RFC3339),
		"completed":  session.Completed,
	}
	if session.Description != "" {
		data["description"] = session.Description
	}
	if len(session.Goals) > 0 {
		data["goals"] = session.Goals
	}
	if session.CompletedAt != nil {
		data["completed_at"] = session.CompletedAt.Format(time.RFC3339)
	}
	if session.RepoBranch != "" {
		data["repo_branch"] = session.RepoBranch
		data["repo_commit"] = session.RepoCommit
	}
	return data
}
