package tasktui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/amonks/ordoflow/internal/markdown"
	"github.com/amonks/ordoflow/task"
)

// renderDetail shows one task read-only: wrapped title, metadata and
// the description rendered as markdown.
func renderDetail(t task.Task, width int, s styles, mdStyle markdown.Style) string {
	width = max(width, 10)

	status := "Active"
	if t.Completed {
		status = "Completed"
	}
	priority := s.priority(s.palette.PriorityColor(t.Priority)).Render(t.Priority.Label())

	lines := []string{
		s.heading.Render(wordwrap.String(t.Text, width)),
		"",
		fmt.Sprintf("%s %s", s.label.Render("Priority:"), priority),
		fmt.Sprintf("%s %s", s.label.Render("Status:"), s.muted.Render(status)),
		fmt.Sprintf("%s %s", s.label.Render("Created:"), s.muted.Render(valueOrDash(t.Date))),
		fmt.Sprintf("%s %s", s.label.Render("ID:"), s.muted.Render(fmt.Sprint(t.ID))),
	}

	description := markdown.SafeRenderStyled(mdStyle, width, 0, []byte(t.Description))
	if len(description) > 0 {
		lines = append(lines, "", s.label.Render("Description"), string(description))
	}
	return strings.Join(lines, "\n")
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
