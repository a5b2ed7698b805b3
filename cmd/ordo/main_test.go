package main

import (
	"errors"
	"testing"

	"github.com/amonks/ordoflow/task"
)

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "ordo" {
		t.Fatalf("expected root command name ordo, got %q", rootCmd.Use)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	for _, name := range []string{"add", "edit", "done", "undo", "delete", "clear", "list", "search", "show", "move", "reorder", "tui"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "1", want: 1},
		{input: "42", want: 42},
		{input: "0", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseTaskID(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseTaskID(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseTaskID(%q) = %d, %v; want %d", tt.input, got, err, tt.want)
		}
	}
}

func TestFindTaskReportsMissing(t *testing.T) {
	manager := task.NewManager(nil, task.ManagerOptions{})

	_, err := findTask(manager, 7)
	if !errors.Is(err, task.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
