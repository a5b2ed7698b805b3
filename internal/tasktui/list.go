package tasktui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	internalstrings "github.com/amonks/ordoflow/internal/strings"
	"github.com/amonks/ordoflow/task"
)

type taskItem struct {
	task task.Task
}

func (item taskItem) FilterValue() string {
	return item.task.Text
}

type taskItemDelegate struct {
	styles styles
}

func newTaskItemDelegate(s styles) taskItemDelegate {
	return taskItemDelegate{styles: s}
}

func (d taskItemDelegate) Height() int                             { return 1 }
func (d taskItemDelegate) Spacing() int                            { return 0 }
func (d taskItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(taskItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	fmt.Fprint(w, d.renderLine(item.task, m.Width(), selected))
}

// renderLine lays a task out as "> [ ] p1 text ... date".
func (d taskItemDelegate) renderLine(t task.Task, width int, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	date := t.Date
	prefix := fmt.Sprintf("%s%s %s ", cursor, check, t.Priority)
	text := internalstrings.NormalizeWhitespace(t.Text)

	textWidth := width - runewidth.StringWidth(prefix) - runewidth.StringWidth(date) - 1
	if width <= 0 {
		textWidth = runewidth.StringWidth(text)
	}
	text = truncateText(text, max(textWidth, 1))
	gap := 1
	if width > 0 {
		gap = max(width-runewidth.StringWidth(prefix)-runewidth.StringWidth(text)-runewidth.StringWidth(date), 1)
	}

	textStyle := d.styles.text
	switch {
	case selected:
		textStyle = d.styles.selected
	case t.Completed:
		textStyle = d.styles.done
	}
	badge := d.styles.priority(d.styles.palette.PriorityColor(t.Priority)).Render(string(t.Priority))

	var b strings.Builder
	b.WriteString(cursor)
	b.WriteString(check)
	b.WriteString(" ")
	b.WriteString(badge)
	b.WriteString(" ")
	b.WriteString(textStyle.Render(text))
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(d.styles.muted.Render(date))
	return b.String()
}

func newTaskList(s styles) list.Model {
	taskList := list.New(nil, newTaskItemDelegate(s), 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetFilteringEnabled(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)
	taskList.DisableQuitKeybindings()
	return taskList
}

func taskItems(tasks []task.Task) []list.Item {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	return items
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}
