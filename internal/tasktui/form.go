package tasktui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	internalstrings "github.com/amonks/ordoflow/internal/strings"
	"github.com/amonks/ordoflow/task"
)

type formField int

const (
	fieldText formField = iota
	fieldDescription
	fieldPriority
	fieldCount
)

type formAction int

const (
	formNone formAction = iota
	formSave
	formCancel
)

// taskForm edits the text, description and priority of a task. A draft
// form creates a new task on save.
type taskForm struct {
	task        task.Task
	isDraft     bool
	text        textinput.Model
	description textarea.Model
	priority    task.Priority
	field       formField
}

func newTaskForm(t task.Task, isDraft bool) taskForm {
	text := textinput.New()
	text.Prompt = ""
	text.Placeholder = "e.g., Finish sales report by Thu at 3pm"
	text.CharLimit = task.MaxTextLength
	text.SetValue(t.Text)

	description := textarea.New()
	description.Prompt = ""
	description.Placeholder = "Description"
	description.ShowLineNumbers = false
	description.SetHeight(5)
	description.SetValue(t.Description)

	priority := t.Priority
	if !priority.IsValid() {
		priority = task.DefaultPriority
	}

	form := taskForm{
		task:        t,
		isDraft:     isDraft,
		text:        text,
		description: description,
		priority:    priority,
	}
	return form.focusField(fieldText)
}

func (form taskForm) SetSize(width int) taskForm {
	inputWidth := max(width-4, 10)
	form.text.Width = inputWidth
	form.description.SetWidth(inputWidth)
	return form
}

func (form taskForm) focusField(field formField) taskForm {
	form.text.Blur()
	form.description.Blur()
	form.field = field
	switch field {
	case fieldText:
		form.text.Focus()
	case fieldDescription:
		form.description.Focus()
	}
	return form
}

func (form taskForm) Update(msg tea.Msg) (taskForm, tea.Cmd, formAction) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+s":
			return form, nil, formSave
		case "esc":
			return form, nil, formCancel
		case "tab":
			return form.focusField((form.field + 1) % fieldCount), nil, formNone
		case "shift+tab", "backtab":
			return form.focusField((form.field + fieldCount - 1) % fieldCount), nil, formNone
		case "ctrl+p":
			form.priority = form.priority.Next()
			return form, nil, formNone
		case "enter":
			if form.field != fieldDescription {
				return form, nil, formSave
			}
		}
		if form.field == fieldPriority {
			switch key.String() {
			case " ", "right", "l", "j", "down":
				form.priority = form.priority.Next()
			case "left", "h", "k", "up":
				form.priority = previousPriority(form.priority)
			case "1", "2", "3", "4":
				form.priority = task.Priority("p" + key.String())
			}
			return form, nil, formNone
		}
	}

	var cmd tea.Cmd
	switch form.field {
	case fieldText:
		form.text, cmd = form.text.Update(msg)
	case fieldDescription:
		form.description, cmd = form.description.Update(msg)
	}
	return form, cmd, formNone
}

func previousPriority(p task.Priority) task.Priority {
	valid := task.ValidPriorities()
	for i, candidate := range valid {
		if candidate == p {
			return valid[(i+len(valid)-1)%len(valid)]
		}
	}
	return task.DefaultPriority
}

// Result returns the task with the form's values applied.
func (form taskForm) Result() task.Task {
	result := form.task
	result.Text = internalstrings.NormalizeWhitespace(form.text.Value())
	result.Description = internalstrings.TrimTrailingWhitespace(form.description.Value())
	result.Priority = form.priority
	return result
}

// Validate checks the values that would be saved.
func (form taskForm) Validate() error {
	return task.ValidateText(form.Result().Text)
}

func (form taskForm) IsDirty() bool {
	result := form.Result()
	return result.Text != internalstrings.NormalizeWhitespace(form.task.Text) ||
		result.Description != internalstrings.TrimTrailingWhitespace(form.task.Description) ||
		result.Priority != form.task.Priority
}

func (form taskForm) View(s styles) string {
	title := "Edit task"
	if form.isDraft {
		title = "New task"
	}

	marker := func(field formField) string {
		if form.field == field {
			return s.selected.Render(">")
		}
		return " "
	}

	var priorities []string
	for _, p := range task.ValidPriorities() {
		label := p.Label()
		if p == form.priority {
			label = s.priority(s.palette.PriorityColor(p)).Bold(true).Render("(" + label + ")")
		} else {
			label = s.muted.Render(label)
		}
		priorities = append(priorities, label)
	}

	lines := []string{
		s.heading.Render(title),
		"",
		fmt.Sprintf("%s %s", marker(fieldText), s.label.Render("Text")),
		"  " + form.text.View(),
		"",
		fmt.Sprintf("%s %s", marker(fieldDescription), s.label.Render("Description")),
		form.description.View(),
		"",
		fmt.Sprintf("%s %s", marker(fieldPriority), s.label.Render("Priority")),
		"  " + strings.Join(priorities, "  "),
		"",
		s.muted.Render("tab next field | ctrl+p priority | ctrl+s save | esc cancel"),
	}
	return strings.Join(lines, "\n")
}
