package config

import (
	"testing"
	"time"
)

func TestDefaultConfig_Goals(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Goals.DailyMinutes != 120 {
		t.Errorf("expected default daily minutes 120, got %d", cfg.Goals.DailyMinutes)
	}
	if cfg.Goals.WeeklyMinutes != 600 {
		t.Errorf("expected default weekly minutes 600, got %d", cfg.Goals.WeeklyMinutes)
	}
	if cfg.Goals.WeeklySessions != 7 {
		t.Errorf("expected default weekly sessions 7, got %d", cfg.Goals.WeeklySessions)
	}

	goals := cfg.Goals.ToDomain()
	if goals.DailyMinutes != cfg.Goals.DailyMinutes {
		t.Error("ToDomain() should carry the stored targets")
	}
}

func TestDefaultConfig_Planner(t *testing.T) {
	cfg := DefaultConfig()
	if time.Duration(cfg.Planner.DefaultDuration) != 45*time.Minute {
		t.Errorf("expected default session duration 45m, got %v", cfg.Planner.DefaultDuration)
	}
	if cfg.Planner.DefaultDifficulty != "medium" {
		t.Errorf("expected default difficulty medium, got %q", cfg.Planner.DefaultDifficulty)
	}
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1h30m")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if time.Duration(d) != 90*time.Minute {
		t.Errorf("parsed %v, want 1h30m", time.Duration(d))
	}

	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "1h30m0s" {
		t.Errorf("MarshalText() = %q, want %q", text, "1h30m0s")
	}
}
