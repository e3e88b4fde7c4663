package cmd

import (
	"testing"
)

func TestListCmd(t *testing.T) {
	t.Run("command structure", func(t *testing.T) {
		if listCmd.Use != "list" {
			t.Errorf("listCmd.Use = %q, want %q", listCmd.Use, "list")
		}
	})

	t.Run("flags registered", func(t *testing.T) {
		for _, name := range []string{"all", "completed", "search"} {
			if listCmd.Flags().Lookup(name) == nil {
				t.Errorf("listCmd should have --%s flag", name)
			}
		}
	})

	t.Run("search flag shorthand", func(t *testing.T) {
		flag := listCmd.Flags().Lookup("search")
		if flag.Shorthand != "s" {
			t.Errorf("search flag shorthand = %q, want %q", flag.Shorthand, "s")
		}
	})
}

func TestExportCmd_Flags(t *testing.T) {
	for _, name := range []string{"format", "period", "output", "links"} {
		if exportCmd.Flags().Lookup(name) == nil {
			t.Errorf("exportCmd should have --%s flag", name)
		}
	}

	if exportCmd.Flags().Lookup("format").DefValue != "ics" {
		t.Errorf("export format default = %q, want ics", exportCmd.Flags().Lookup("format").DefValue)
	}
}

func TestGoalsCmd_Structure(t *testing.T) {
	found := false
	for _, sub := range goalsCmd.Commands() {
		if sub.Name() == "set" {
			found = true
		}
	}
	if !found {
		t.Error("goalsCmd should have a set subcommand")
	}

	for _, name := range []string{"daily", "weekly-minutes", "weekly-sessions"} {
		if goalsSetCmd.Flags().Lookup(name) == nil {
			t.Errorf("goals set should have --%s flag", name)
		}
	}
}
