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
	listAll       bool
	listCompleted bool
	listSearch    string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List study sessions",
	Long:  `List upcoming study sessions, or filter with --all, --completed or --search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		req := services.ListRequest{
			OnlyUpcoming:  !listAll && !listCompleted && listSearch == "",
			OnlyCompleted: listCompleted,
			Search:        listSearch,
		}

		sessions, err := sessionService.List(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if jsonOutput {
			sessionList := make([]map[string]interface{}, 0, len(sessions))
			for _, session := range sessions {
				sessionList = append(sessionList, sessionJSON(session))
			}
			data := map[string]interface{}{
				"sessions": sessionList,
				"count":    len(sessionList),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal sessions: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found. Schedule one with \"studyflow add\".")
			return nil
		}

		fmt.Printf("%s Sessions (%d):\n\n", appConfig.Theme.IconApp, len(sessions))
		for _, session := range sessions {
			printSessionLine(session)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "List all sessions (default: upcoming only)")
	listCmd.Flags().BoolVarP(&listCompleted, "completed", "c", false, "List completed sessions")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Fuzzy search by subject and topic")
	rootCmd.AddCommand(listCmd)
}

// printSessionLine renders one session for terminal listings.
func printSessionLine(session *domain.StudySession) {
	icon := "📅"
	if session.Completed {
		icon = appConfig.Theme.IconDone
	} else if session.StartTime.Before(time.Now()) {
		icon = "⏳"
	}

	label := session.Subject
	if session.Topic != "" {
		label += " / " + session.Topic
	}

	fmt.Printf("%s %s — %s, %s (ID: %s)\n", icon, label,
		session.StartTime.Format("Mon Jan 2 15:04"),
		formatMinutes(session.Duration),
		session.ID[:8])
	if len(session.Goals) > 0 {
		for _, goal := range session.Goals {
			fmt.Printf("     · %s\n", goal)
		}
	}
}
