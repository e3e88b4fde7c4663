package cmd

import (
	"testing"
)

func TestAddCmd(t *testing.T) {
	t.Run("command structure", func(t *testing.T) {
		if addCmd.Use != "add [subject]" {
			t.Errorf("addCmd.Use = %q, want %q", addCmd.Use, "add [subject]")
		}
		if addCmd.Args == nil {
			t.Error("addCmd.Args should be set")
		}
	})

	t.Run("flags registered", func(t *testing.T) {
		for _, name := range []string{"topic", "desc", "difficulty", "duration", "at", "goal"} {
			if addCmd.Flags().Lookup(name) == nil {
				t.Errorf("addCmd should have --%s flag", name)
			}
		}
	})

	t.Run("duration flag shorthand", func(t *testing.T) {
		flag := addCmd.Flags().Lookup("duration")
		if flag.Shorthand != "d" {
			t.Errorf("duration flag shorthand = %q, want %q", flag.Shorthand, "d")
		}
	})
}

// TestAddCmd_ValidateArgs tests argument validation
func TestAddCmd_ValidateArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"no args", []string{}, true},
		{"single word", []string{"Physics"}, false},
		{"multi word", []string{"Organic", "Chemistry"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := addCmd.Args(addCmd, tt.args)
			if tt.wantErr && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
