package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaesv/studyflow/internal/adapters/calendar"
	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/services"
)

var (
	exportFormat string
	exportPeriod string
	exportOutput string
	exportLinks  bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to calendars or files",
	Long: `Export the study schedule. The ics format produces an RFC 5545
calendar file of upcoming sessions for import into any calendar app;
csv and md export completed history. Use --links to print Google and
Outlook quick-add URLs instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(context.Background())
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "ics", "Output format: ics, csv or md")
	exportCmd.Flags().StringVarP(&exportPeriod, "period", "p", "all", "History period for csv/md: week, month or all")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportLinks, "links", false, "Print per-session calendar links instead of a file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context) error {
	if exportLinks {
		return exportCalendarLinks(ctx)
	}

	switch exportFormat {
	case "ics":
		return exportICS(ctx)
	case "csv":
		sessions, err := historySessions(ctx)
		if err != nil {
			return err
		}
		return exportCSV(sessions)
	case "md":
		sessions, err := historySessions(ctx)
		if err != nil {
			return err
		}
		return exportMarkdown(sessions)
	default:
		return fmt.Errorf("unknown format %q (use ics, csv or md)", exportFormat)
	}
}

// historySessions loads completed sessions for the selected period.
func historySessions(ctx context.Context) ([]*domain.StudySession, error) {
	sessions, err := sessionService.List(ctx, services.ListRequest{OnlyCompleted: true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}

	var since time.Time
	switch exportPeriod {
	case "week":
		since = time.Now().AddDate(0, 0, -7)
	case "month":
		since = time.Now().AddDate(0, -1, 0)
	default: // "all"
		return sessions, nil
	}

	filtered := sessions[:0]
	for _, s := range sessions {
		if !s.StartTime.Before(since) {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

func exportICS(ctx context.Context) error {
	sessions, err := sessionService.List(ctx, services.ListRequest{OnlyUpcoming: true})
	if err != nil {
		return fmt.Errorf("failed to fetch sessions: %w", err)
	}
	if len(sessions) == 0 {
		return fmt.Errorf("nothing to export; no upcoming sessions")
	}

	data := calendar.ICS(sessions, time.Now())

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(data), 0644); err != nil {
			return fmt.Errorf("failed to write calendar file: %w", err)
		}
		fmt.Printf("%s Exported %d sessions to %s\n", appConfig.Theme.IconDone, len(sessions), exportOutput)
		return nil
	}

	fmt.Print(data)
	return nil
}

func exportCalendarLinks(ctx context.Context) error {
	sessions, err := sessionService.List(ctx, services.ListRequest{OnlyUpcoming: true})
	if err != nil {
		return fmt.Errorf("failed to fetch sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No upcoming sessions.")
		return nil
	}

	for _, s := range sessions {
		label := s.Subject
		if s.Topic != "" {
			label += " / " + s.Topic
		}
		fmt.Printf("%s — %s\n", label, s.StartTime.Format("Mon Jan 2 15:04"))
		fmt.Printf("  Google:  %s\n", calendar.GoogleLink(s))
		fmt.Printf("  Outlook: %s\n\n", calendar.OutlookLink(s))
	}
	return nil
}

func exportMarkdown(sessions []*domain.StudySession) error {
	fmt.Printf("# Study History\n\n")
	fmt.Printf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04"))

	for _, s := range sessions {
		fmt.Printf("## %s — %s\n", s.StartTime.Format("2006-01-02"), s.Subject)
		if s.Topic != "" {
			fmt.Printf("- Topic: %s\n", s.Topic)
		}
		fmt.Printf("- Duration: %s\n", formatMinutes(s.Duration))
		if s.Difficulty != "" {
			fmt.Printf("- Difficulty: %s\n", s.Difficulty.Label())
		}
		if len(s.Goals) > 0 {
			fmt.Printf("- Goals:\n")
			for _, g := range s.Goals {
				fmt.Printf("  - %s\n", g)
			}
		}
		if s.RepoBranch != "" {
			fmt.Printf("- Workspace: %s\n", s.RepoBranch)
		}
		fmt.Println()
	}
	return nil
}

func exportCSV(sessions []*domain.StudySession) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	_ = w.Write([]string{
		"date", "subject", "topic", "difficulty", "duration_min", "goals", "repo_branch",
	})

	for _, s := range sessions {
		_ = w.Write([]string{
			s.StartTime.Format("2006-01-02"),
			s.Subject,
			s.Topic,
			string(s.Difficulty),
			fmt.Sprintf("%.0f", s.Duration.Minutes()),
			strings.Join(s.Goals, "; "),
			s.RepoBranch,
		})
	}
	return nil
}
