package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	internalstrings "github.com/amonks/ordoflow/internal/strings"
	"github.com/amonks/ordoflow/task"
)

// TaskData represents the data used to render the TOML form.
type TaskData struct {
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	// ID is the task ID (only for updates).
	ID int64
	// Text is the task title.
	Text string
	// Priority is p1..p4.
	Priority task.Priority
	// Completed is shown read-only for updates.
	Completed bool
	// Description is the free text body.
	Description string
}

// DefaultCreateData returns TaskData with default values for a new task.
func DefaultCreateData() TaskData {
	return TaskData{Priority: task.DefaultPriority}
}

// DataFromTask creates TaskData from an existing task for editing.
func DataFromTask(t task.Task) TaskData {
	return TaskData{
		IsUpdate:    true,
		ID:          t.ID,
		Text:        t.Text,
		Priority:    t.Priority,
		Completed:   t.Completed,
		Description: t.Description,
	}
}

var taskTemplate = template.Must(template.New("task").Parse(`{{- if .IsUpdate }}# editing task {{ .ID }}{{ if .Completed }} (completed){{ end }}
{{ end -}}
text = {{ printf "%q" .Text }}
priority = {{ printf "%q" .Priority }} # p1, p2, p3, p4 (no priority)
---
{{ .Description }}
`))

// RenderTaskTOML renders the form for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the editor.
type ParsedTask struct {
	Text        string        `toml:"text"`
	RawPriority string        `toml:"priority"`
	Priority    task.Priority `toml:"-"`
	Description string        `toml:"-"`
}

// ParseTaskTOML parses the form content from the editor. The text is
// collapsed to a single line; the description keeps its line breaks.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var parsed ParsedTask
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Text = internalstrings.NormalizeWhitespace(parsed.Text)
	parsed.Description = internalstrings.TrimTrailingWhitespace(strings.TrimLeft(body, "\n"))

	if err := task.ValidateText(parsed.Text); err != nil {
		return nil, err
	}
	priority, err := task.ParsePriority(parsed.RawPriority)
	if err != nil {
		return nil, err
	}
	parsed.Priority = priority

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

// EditTask opens the editor for a task and returns the parsed result.
// Pass nil to create a task.
func EditTask(existing *task.Task) (*ParsedTask, error) {
	data := DefaultCreateData()
	if existing != nil {
		data = DataFromTask(*existing)
	}
	return EditTaskWithData(data)
}

// EditTaskWithData opens the editor with pre-populated data.
func EditTaskWithData(data TaskData) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "ordo-task-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited))
}

// Apply copies the parsed fields onto t.
func (p *ParsedTask) Apply(t task.Task) task.Task {
	t.Text = p.Text
	t.Description = p.Description
	t.Priority = p.Priority
	return t
}
