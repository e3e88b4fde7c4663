package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaesv/studyflow/internal/adapters/tui"
	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/planner"
)

var (
	planDifficulty string
	planSchedule   bool
	planStart      string
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan [subject]",
	Short: "Get a canned study plan for a subject",
	Long: `Print a suggested topic list for a subject at a chosen difficulty,
drawn from a built-in plan table. With --schedule the topics become
scheduled sessions, one per day.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p, err := planner.Load()
		if err != nil {
			return err
		}

		var subject string
		if len(args) == 1 {
			subject = args[0]
		} else {
			items := make([]tui.PickerItem, 0, len(p.Subjects()))
			for _, s := range p.Subjects() {
				items = append(items, tui.PickerItem{Label: s})
			}
			result := tui.RunPicker("Subject:", items, "", &appConfig.Theme)
			if result.Aborted {
				return nil
			}
			subject = p.Subjects()[result.Index]
		}

		difficulty := domain.Difficulty(appConfig.Planner.DefaultDifficulty)
		if planDifficulty != "" {
			validated, err := domain.ValidateDifficulty(planDifficulty)
			if err != nil {
				return fmt.Errorf("%w: %s (use easy, medium or hard)", err, planDifficulty)
			}
			difficulty = validated
		}

		plan, err := p.Plan(subject, difficulty)
		if err != nil {
			return err
		}

		if planSchedule {
			return scheduleStudyPlan(ctx, plan)
		}

		if jsonOutput {
			data := map[string]interface{}{
				"subject":           plan.Subject,
				"difficulty":        string(plan.Difficulty),
				"topics":            plan.Topics,
				"suggested_minutes": plan.SuggestedMinutes,
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal plan: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("%s %s (%s, %dm per topic):\n\n", appConfig.Theme.IconApp,
			plan.Subject, plan.Difficulty.Label(), plan.SuggestedMinutes)
		for i, topic := range plan.Topics {
			fmt.Printf("  %d. %s\n", i+1, topic)
		}
		fmt.Printf("\nSchedule these with: studyflow plan %q --difficulty %s --schedule\n",
			strings.ToLower(plan.Subject), plan.Difficulty)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planDifficulty, "difficulty", "d", "", "Difficulty: easy, medium or hard")
	planCmd.Flags().BoolVar(&planSchedule, "schedule", false, "Schedule one session per topic, a day apart")
	planCmd.Flags().StringVar(&planStart, "start", "", "First session start (default: tomorrow 18:00)")
	rootCmd.AddCommand(planCmd)
}

// scheduleStudyPlan persists one session per plan topic.
func scheduleStudyPlan(ctx context.Context, plan *planner.StudyPlan) error {
	start := defaultPlanStart()
	if planStart != "" {
		parsed, err := parseStartInput(planStart)
		if err != nil {
			return err
		}
		start = parsed
	}

	sessions, err := plan.Sessions(start)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		if err := storageAdapter.Sessions().Save(ctx, session); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
	}

	fmt.Printf("%s Scheduled %d %s sessions starting %s.\n", appConfig.Theme.IconDone,
		len(sessions), plan.Subject, start.Format("Mon Jan 2 15:04"))
	return nil
}

// defaultPlanStart is tomorrow evening.
func defaultPlanStart() time.Time {
	now := time.Now()
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 18, 0, 0, 0, now.Location())
}
