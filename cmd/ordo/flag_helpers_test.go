package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestHasChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "example"}
	cmd.Flags().String("text", "", "")
	cmd.Flags().String("description", "", "")

	if hasChangedFlags(cmd, "text", "description") {
		t.Fatal("expected no changed flags")
	}

	if err := cmd.Flags().Set("description", "hello"); err != nil {
		t.Fatalf("set description: %v", err)
	}

	if !hasChangedFlags(cmd, "text", "description") {
		t.Fatal("expected changed flags")
	}
}

func TestShouldUseEditor(t *testing.T) {
	tests := []struct {
		name        string
		hasFields    bool
		edit        bool
		noEdit      bool
		interactive bool
		want        bool
	}{
		{name: "interactive without flags", interactive: true, want: true},
		{name: "not interactive", want: false},
		{name: "task fields skip editor", hasFields: true, interactive: true, want: false},
		{name: "edit forces editor", hasFields: true, edit: true, want: true},
		{name: "no-edit wins over terminal", noEdit: true, interactive: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldUseEditor(tt.hasFields, tt.edit, tt.noEdit, tt.interactive)
			if got != tt.want {
				t.Fatalf("shouldUseEditor = %v, want %v", got, tt.want)
			}
		})
	}
}
