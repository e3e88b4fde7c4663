package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaesv/studyflow/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	Long:  `Print the config file location and the effective settings. Edit the file directly to customize colors, icons and defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}

		fmt.Printf("%s Configuration (%s):\n\n", appConfig.Theme.IconApp, configPath)
		fmt.Printf("  Planner defaults:  %s, %s\n",
			formatMinutes(time.Duration(appConfig.Planner.DefaultDuration)),
			appConfig.Planner.DefaultDifficulty)
		fmt.Printf("  Goals:             %dm/day, %dm/week, %d sessions/week\n",
			appConfig.Goals.DailyMinutes, appConfig.Goals.WeeklyMinutes, appConfig.Goals.WeeklySessions)
		fmt.Printf("  Notifications:     enabled=%t sound=%t\n",
			appConfig.Notifications.Enabled, appConfig.Notifications.Sound)
		fmt.Printf("  Data directory:    %s\n", appConfig.Storage.DataDir)
		fmt.Printf("  Database:          %s\n", dbPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
