// Package cmd provides the CLI commands for the studyflow application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaesv/studyflow/internal/adapters/notification"
	"github.com/kaesv/studyflow/internal/adapters/storage"
	"github.com/kaesv/studyflow/internal/adapters/tui"
	"github.com/kaesv/studyflow/internal/adapters/workspace"
	"github.com/kaesv/studyflow/internal/config"
	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/ports"
	"github.com/kaesv/studyflow/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool

	// Global dependencies
	storageAdapter    ports.Storage
	sessionService    *services.SessionService
	progressService   *services.ProgressService
	workspaceDetector ports.WorkspaceDetector
	notifier          *notification.Notifier
	appConfig         *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "studyflow",
	Short: "Studyflow - a study-session planner with a Pomodoro timer",
	Long: `Studyflow is a command-line study planner: schedule sessions, run a
countdown or Pomodoro timer against them, track daily and weekly goals
with streaks, and export your schedule to external calendars.

Run "studyflow" with no arguments for the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runWizard,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.studyflow/studyflow.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Studyflow\nVersion: {{.Version}}\n")
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	notifier = notification.New(&appConfig.Notifications)

	if dbPath == "" {
		dbPath = config.GetDBPath(appConfig)
	}

	dbDir := getDir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	storageAdapter, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	workspaceDetector = workspace.NewDetector()

	sessionService = services.NewSessionService(storageAdapter, workspaceDetector)
	progressService = services.NewProgressService(storageAdapter, appConfig.Goals.ToDomain())
	progressService.SetSessionService(sessionService)

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if storageAdapter != nil {
		return storageAdapter.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runWizard implements the interactive menu for a bare "studyflow" run.
func runWizard(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	next, err := sessionService.NextUpcoming(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to check schedule: %w", err)
	}

	fmt.Println()

	menuItems := []tui.PickerItem{
		{Label: "Study now", Desc: studyNowDesc(next)},
		{Label: "Schedule", Desc: "Plan a new study session"},
		{Label: "Progress", Desc: "Goals, streaks and weekly stats"},
		{Label: "Study plan", Desc: "Get a canned topic list for a subject"},
	}
	menuResult := tui.RunPicker("Studyflow:", menuItems, "", &appConfig.Theme)
	if menuResult.Aborted {
		return nil
	}

	switch menuResult.Index {
	case 0:
		if next == nil {
			session, err := scheduleInteractively(ctx)
			if err != nil || session == nil {
				return err
			}
			return launchTimer(ctx, session)
		}
		return launchTimer(ctx, next)
	case 1:
		session, err := scheduleInteractively(ctx)
		if err != nil || session == nil {
			return err
		}
		fmt.Printf("%s Session scheduled: %s at %s (ID: %s)\n",
			appConfig.Theme.IconDone, session.Subject,
			session.StartTime.Format("Jan 2 15:04"), session.ID[:8])
		return nil
	case 2:
		return statsCmd.RunE(cmd, args)
	case 3:
		return planCmd.RunE(cmd, nil)
	}
	return nil
}

// studyNowDesc describes what "Study now" will do.
func studyNowDesc(next *domain.StudySession) string {
	if next == nil {
		return "Schedule and start a session"
	}
	return fmt.Sprintf("Start \"%s\" (%s, %s)", next.Subject,
		formatMinutes(next.Duration), next.StartTime.Format("Jan 2 15:04"))
}

// scheduleInteractively walks through the prompts for a new session.
// Returns (nil, nil) when the user backs out.
func scheduleInteractively(ctx context.Context) (*domain.StudySession, error) {
	subjectResult := tui.RunTextPrompt("Subject:", "e.g. Linear Algebra", &appConfig.Theme)
	if subjectResult.Aborted || subjectResult.Value == "" {
		return nil, nil
	}

	topicResult := tui.RunTextPrompt("Topic:", "Enter to skip", &appConfig.Theme)
	if topicResult.Aborted {
		return nil, nil
	}

	difficultyItems := []tui.PickerItem{
		{Label: "Easy", Desc: "Review, light reading"},
		{Label: "Medium", Desc: "New material, exercises"},
		{Label: "Hard", Desc: "Exam prep, difficult proofs"},
	}
	difficultyResult := tui.RunPicker("Difficulty:", difficultyItems, "", &appConfig.Theme)
	if difficultyResult.Aborted {
		return nil, nil
	}
	difficulty := domain.ValidDifficulties[difficultyResult.Index]

	durationResult := tui.RunTextPrompt("Duration (minutes):", appConfig.Planner.DefaultDuration.String(), &appConfig.Theme)
	if durationResult.Aborted {
		return nil, nil
	}
	duration := time.Duration(appConfig.Planner.DefaultDuration)
	if durationResult.Value != "" {
		parsed, err := parseDurationInput(durationResult.Value)
		if err != nil {
			return nil, err
		}
		duration = parsed
	}

	workingDir, _ := os.Getwd()
	return sessionService.Schedule(ctx, services.ScheduleRequest{
		Subject:    subjectResult.Value,
		Topic:      topicResult.Value,
		Difficulty: difficulty,
		Duration:   duration,
		StartTime:  time.Now(),
		WorkingDir: workingDir,
	})
}

// launchTimer runs the fullscreen countdown for a session.
func launchTimer(ctx context.Context, session *domain.StudySession) error {
	signalCtx := setupSignalHandler()

	timer := tui.NewTimer(&appConfig.Theme, notifier)
	timer.SetOnComplete(func(sessionID string) error {
		_, err := sessionService.Complete(ctx, sessionID)
		return err
	})
	timer.SetOnClose(func() {
		fmt.Printf("Session \"%s\" left open; run \"studyflow complete %s\" when done.\n",
			session.Subject, session.ID[:8])
	})

	return timer.Run(signalCtx, session)
}

// parseDurationInput accepts either a bare minute count ("45") or a Go
// duration string ("1h30m").
func parseDurationInput(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if mins, err := parseInt(s); err == nil {
		if mins <= 0 {
			return 0, domain.ErrInvalidDuration
		}
		return time.Duration(mins) * time.Minute, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, domain.ErrInvalidDuration
	}
	return d, nil
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

// formatMinutes renders a duration compactly, e.g. "25m" or "1h30m".
func formatMinutes(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

// getDir returns the directory portion of a file path.
func getDir(path string) string {
	dir := filepath.Dir(path)
	if dir == "" || dir == "/" {
		return "."
	}
	return dir
}
