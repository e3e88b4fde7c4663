// Package config provides configuration management for studyflow.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/kaesv/studyflow/internal/domain"
)

// Config holds all configuration for the studyflow application.
type Config struct {
	FirstRun bool          `mapstructure:"first_run"`
	Planner  PlannerConfig `mapstructure:"planner"`
	Goals    GoalsConfig   `mapstructure:"goals"`

	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// PlannerConfig holds defaults applied to newly scheduled sessions.
type PlannerConfig struct {
	DefaultDuration   Duration `mapstructure:"default_duration"`
	DefaultDifficulty string   `mapstructure:"default_difficulty"`
}

// GoalsConfig holds the user's study targets. Goals live in the config
// file and are only changed through "studyflow goals set"; the progress
// calculator never writes them.
type GoalsConfig struct {
	DailyMinutes   int `mapstructure:"daily_minutes"`
	WeeklyMinutes  int `mapstructure:"weekly_minutes"`
	WeeklySessions int `mapstructure:"weekly_sessions"`
}

// ToDomain converts the stored targets into the domain value.
func (g GoalsConfig) ToDomain() domain.Goals {
	return domain.Goals{
		DailyMinutes:   g.DailyMinutes,
		WeeklyMinutes:  g.WeeklyMinutes,
		WeeklySessions: g.WeeklySessions,
	}
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorStudy  string `mapstructure:"color_study"`
	ColorBreak  string `mapstructure:"color_break"`
	ColorPaused string `mapstructure:"color_paused"`
	ColorTitle  string `mapstructure:"color_title"`
	ColorHelp   string `mapstructure:"color_help"`
	IconApp     string `mapstructure:"icon_app"`
	IconStreak  string `mapstructure:"icon_streak"`
	IconDone    string `mapstructure:"icon_done"`
	IconPaused  string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorStudy:  "#7C6FE0",
		ColorBreak:  "#4ECDC4",
		ColorPaused: "#6B7280",
		ColorTitle:  "#6B7280",
		ColorHelp:   "#95A5A6",
		IconApp:     "📚",
		IconStreak:  "🔥",
		IconDone:    "✅",
		IconPaused:  "⏸",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	goals := domain.DefaultGoals()
	return &Config{
		FirstRun: true,
		Planner: PlannerConfig{
			DefaultDuration:   Duration(45 * time.Minute),
			DefaultDifficulty: string(domain.DifficultyMedium),
		},
		Goals: GoalsConfig{
			DailyMinutes:   goals.DailyMinutes,
			WeeklyMinutes:  goals.WeeklyMinutes,
			WeeklySessions: goals.WeeklySessions,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: "~/.studyflow",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.studyflow" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".studyflow")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("first_run", cfg.FirstRun)
	viper.Set("planner.default_duration", cfg.Planner.DefaultDuration.String())
	viper.Set("planner.default_difficulty", cfg.Planner.DefaultDifficulty)
	viper.Set("goals.daily_minutes", cfg.Goals.DailyMinutes)
	viper.Set("goals.weekly_minutes", cfg.Goals.WeeklyMinutes)
	viper.Set("goals.weekly_sessions", cfg.Goals.WeeklySessions)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.color_study", cfg.Theme.ColorStudy)
	viper.Set("theme.color_break", cfg.Theme.ColorBreak)
	viper.Set("theme.color_paused", cfg.Theme.ColorPaused)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("theme.icon_app", cfg.Theme.IconApp)
	viper.Set("theme.icon_streak", cfg.Theme.IconStreak)
	viper.Set("theme.icon_done", cfg.Theme.IconDone)
	viper.Set("theme.icon_paused", cfg.Theme.IconPaused)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".studyflow", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "studyflow.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("first_run", true)
	viper.SetDefault("planner.default_duration", "45m")
	viper.SetDefault("planner.default_difficulty", "medium")
	viper.SetDefault("goals.daily_minutes", 120)
	viper.SetDefault("goals.weekly_minutes", 600)
	viper.SetDefault("goals.weekly_sessions", 7)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("storage.data_dir", "~/.studyflow")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_study", defaults.ColorStudy)
	viper.SetDefault("theme.color_break", defaults.ColorBreak)
	viper.SetDefault("theme.color_paused", defaults.ColorPaused)
	viper.SetDefault("theme.color_title", defaults.ColorTitle)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
	viper.SetDefault("theme.icon_app", defaults.IconApp)
	viper.SetDefault("theme.icon_streak", defaults.IconStreak)
	viper.SetDefault("theme.icon_done", defaults.IconDone)
	viper.SetDefault("theme.icon_paused", defaults.IconPaused)
}
