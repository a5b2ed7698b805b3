package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/ordoflow/task"
)

func TestRenderTaskTOML_Create(t *testing.T) {
	content, err := RenderTaskTOML(DefaultCreateData())
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	if !strings.Contains(content, `text = ""`) {
		t.Error("expected empty text")
	}
	if !strings.Contains(content, `priority = "p4"`) {
		t.Error("expected default priority p4")
	}
	if !strings.Contains(content, "---") {
		t.Error("expected frontmatter separator")
	}
	if strings.Contains(content, "editing task") {
		t.Error("create form should not have an editing header")
	}
}

func TestRenderTaskTOML_Update(t *testing.T) {
	existing := task.Task{
		ID:          42,
		Text:        `Say "hi"`,
		Description: "line one\nline two",
		Priority:    task.PriorityP2,
		Completed:   true,
	}

	content, err := RenderTaskTOML(DataFromTask(existing))
	if err != nil {
		t.Fatalf("RenderTaskTOML failed: %v", err)
	}

	if !strings.HasPrefix(content, "# editing task 42 (completed)\n") {
		t.Errorf("expected editing header, got %q", content)
	}
	if !strings.Contains(content, `text = "Say \"hi\""`) {
		t.Error("expected quoted text")
	}
	if !strings.Contains(content, `priority = "p2"`) {
		t.Error("expected priority p2")
	}
	if !strings.HasSuffix(content, "---\nline one\nline two\n") {
		t.Errorf("expected description body, got %q", content)
	}
}

func TestRenderThenParseRoundTrip(t *testing.T) {
	existing := task.Task{ID: 7, Text: "Buy milk", Description: "2%\n\n- oat", Priority: task.PriorityP3}

	content, err := RenderTaskTOML(DataFromTask(existing))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	parsed, err := ParseTaskTOML(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := parsed.Apply(existing)
	if got != existing {
		t.Errorf("round trip changed task: %+v -> %+v", existing, got)
	}
}

func TestParseTaskTOML(t *testing.T) {
	cases := []struct {
		name        string
		content     string
		text        string
		priority    task.Priority
		description string
		wantErr     error
	}{
		{
			name:     "minimal",
			content:  "text = \"Walk dog\"\n",
			text:     "Walk dog",
			priority: task.PriorityP4,
		},
		{
			name:        "numeric priority and body",
			content:     "text = \"  Call   mom \"\npriority = \"1\"\n---\n\nAsk about Sunday\n\n",
			text:        "Call mom",
			priority:    task.PriorityP1,
			description: "Ask about Sunday",
		},
		{
			name:        "crlf",
			content:     "text = \"Pay rent\"\r\n---\r\nby friday\r\n",
			text:        "Pay rent",
			priority:    task.PriorityP4,
			description: "by friday",
		},
		{
			name:    "empty text",
			content: "text = \"   \"\n",
			wantErr: task.ErrEmptyText,
		},
		{
			name:    "bad priority",
			content: "text = \"x\"\npriority = \"urgent\"\n",
			wantErr: task.ErrInvalidPriority,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseTaskTOML(tc.content)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if parsed.Text != tc.text {
				t.Errorf("text = %q, want %q", parsed.Text, tc.text)
			}
			if parsed.Priority != tc.priority {
				t.Errorf("priority = %q, want %q", parsed.Priority, tc.priority)
			}
			if parsed.Description != tc.description {
				t.Errorf("description = %q, want %q", parsed.Description, tc.description)
			}
		})
	}
}

func TestParseTaskTOML_InvalidTOML(t *testing.T) {
	if _, err := ParseTaskTOML("text = \n---\n"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEditTaskWithData_UsesEditor(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor")
	body := "#!/bin/sh\nprintf 'text = \"From editor\"\\npriority = \"p2\"\\n---\\nnotes\\n' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake editor: %v", err)
	}
	t.Setenv("EDITOR", script)

	parsed, err := EditTask(nil)
	if err != nil {
		t.Fatalf("EditTask failed: %v", err)
	}
	if parsed.Text != "From editor" || parsed.Priority != task.PriorityP2 || parsed.Description != "notes" {
		t.Errorf("unexpected parse: %+v", parsed)
	}
}

func TestEditTaskWithData_EditorFailure(t *testing.T) {
	t.Setenv("EDITOR", "false")

	if _, err := EditTask(nil); err == nil {
		t.Fatal("expected error when editor exits non-zero")
	}
}
