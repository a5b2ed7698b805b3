package main

import (
	"strconv"

	"github.com/amonks/ordoflow/internal/ui"
	"github.com/amonks/ordoflow/task"
)

// tableStyle decorates table cells.
type tableStyle struct {
	priority func(task.Priority) string
	muted    func(string) string
	strike   func(string) string
}

var plainTableStyle = tableStyle{
	priority: plainPriority,
	muted:    plainText,
	strike:   plainText,
}

// paletteTableStyle colors priorities and dims completed tasks.
func paletteTableStyle(palette ui.Palette) tableStyle {
	return tableStyle{
		priority: palette.PriorityBadge,
		muted:    palette.Muted,
		strike:   palette.Strike,
	}
}

// formatTaskTable renders tasks as an aligned table.
func formatTaskTable(tasks []task.Task, style tableStyle) string {
	builder := ui.NewTableBuilder([]string{"ID", "PRI", "STATUS", "DATE", "TEXT"}, len(tasks))

	for _, t := range tasks {
		status := taskStatus(t)
		text := ui.TruncateTableCell(t.Text)
		if t.Completed {
			status = style.muted(status)
			text = style.strike(text)
		}
		builder.AddRow([]string{
			strconv.FormatInt(t.ID, 10),
			style.priority(t.Priority),
			status,
			t.Date,
			text,
		})
	}

	return builder.String()
}

func taskStatus(t task.Task) string {
	if t.Completed {
		return "done"
	}
	return "active"
}

func plainPriority(p task.Priority) string {
	return string(p)
}

func plainText(value string) string {
	return value
}
