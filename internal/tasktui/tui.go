// Package tasktui is the interactive terminal interface of ordo.
package tasktui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/ordoflow/internal/markdown"
	internalstrings "github.com/amonks/ordoflow/internal/strings"
	"github.com/amonks/ordoflow/internal/ui"
	"github.com/amonks/ordoflow/task"
)

type tabKind int

const (
	tabTasks tabKind = iota
	tabCompleted
	tabSearch
)

var tabLabels = []string{"[1] Tasks", "[2] Completed", "[3] Search"}

type focusPane int

const (
	focusList focusPane = iota
	focusSearch
	focusForm
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalDeleteTask
	modalDeleteCompleted
	modalDiscardEdits
)

type confirmModal struct {
	kind        modalKind
	title       string
	message     string
	confirmText string
	cancelText  string
	selected    int
	taskID      int64
}

// Options configures Run.
type Options struct {
	// Palette colors the interface. The zero value means LightPalette.
	Palette ui.Palette

	// MarkdownStyle renders task descriptions.
	MarkdownStyle markdown.Style
}

type model struct {
	ctx         context.Context
	manager     *task.Manager
	styles      styles
	mdStyle     markdown.Style
	width       int
	height      int
	activeTab   tabKind
	focus       focusPane
	taskList    list.Model
	search      textinput.Model
	form        taskForm
	snapshot    task.Snapshot
	selected    map[tabKind]int64
	modal       confirmModal
	status      string
	statusLevel statusLevel
	updates     <-chan task.Snapshot
}

// Run shows the interface until the user quits. Every change made by
// any writer of manager is reflected as soon as its snapshot is published.
func Run(ctx context.Context, manager *task.Manager, opts Options) error {
	if manager == nil {
		return fmt.Errorf("task manager is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	updates, unsubscribe := manager.Subscribe()
	defer unsubscribe()

	m := newModel(ctx, manager, opts)
	m.updates = updates
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, manager *task.Manager, opts Options) model {
	palette := opts.Palette
	if palette.Name == "" {
		palette = ui.LightPalette
	}
	mdStyle := opts.MarkdownStyle
	if mdStyle == "" {
		mdStyle = markdown.StyleASCII
	}
	s := newStyles(palette)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search all tasks..."

	m := model{
		ctx:       ctx,
		manager:   manager,
		styles:    s,
		mdStyle:   mdStyle,
		activeTab: tabTasks,
		focus:     focusList,
		taskList:  newTaskList(s),
		search:    search,
		selected:  map[tabKind]int64{},
		modal:     confirmModal{kind: modalNone},
	}
	if manager != nil {
		m.snapshot = manager.Snapshot()
		m.refreshItems()
	}
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.waitForSnapshotCmd(), m.reloadCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case snapshotMsg:
		m.applySnapshot(msg.snapshot)
		return m, m.waitForSnapshotCmd()
	case mutationMsg:
		return m.handleMutation(msg), nil
	}

	if m.modal.kind != modalNone {
		return m.updateModal(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}
	switch m.focus {
	case focusForm:
		return m.updateForm(msg)
	case focusSearch:
		return m.updateSearch(key)
	}
	updated, cmd, handled := m.handleKey(key)
	if handled {
		return updated, cmd
	}
	return updated.updateFocused(msg)
}

func (m model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusForm:
		return m.updateForm(msg)
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading tasks..."
	}
	contentHeight := max(m.height-3, 1)
	leftWidth, rightWidth := splitWidths(m.width)

	listPane := m.renderPane(m.listContent(), leftWidth, contentHeight, m.focus != focusForm)
	detailPane := m.renderPane(m.detailContent(rightWidth-4), rightWidth, contentHeight, m.focus == focusForm)
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	view := strings.Join([]string{m.renderTabs(), m.renderHelpLine(), content, m.renderStatusLine()}, "\n")
	if m.modal.kind != modalNone {
		view = m.renderModalOverlay(view)
	}
	return view
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case "?":
		return m.openHelp(), nil, true
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "1":
		return m.activateTab(tabTasks), nil, true
	case "2":
		return m.activateTab(tabCompleted), nil, true
	case "3":
		return m.activateTab(tabSearch), nil, true
	case "tab", "]":
		return m.activateTab((m.activeTab + 1) % 3), nil, true
	case "shift+tab", "backtab", "[":
		return m.activateTab((m.activeTab + 2) % 3), nil, true
	case "up", "k":
		return m.moveSelection(-1), nil, true
	case "down", "j":
		return m.moveSelection(1), nil, true
	case "home", "g":
		return m.moveSelection(-len(m.taskList.Items())), nil, true
	case "end", "G":
		return m.moveSelection(len(m.taskList.Items())), nil, true
	case " ", "x":
		updated, cmd := m.toggleSelected()
		return updated, cmd, true
	case "K", "shift+up":
		updated, cmd := m.moveTask(-1)
		return updated, cmd, true
	case "J", "shift+down":
		updated, cmd := m.moveTask(1)
		return updated, cmd, true
	case "a", "n":
		return m.startDraft(), nil, true
	case "e", "enter":
		return m.startEdit(), nil, true
	case "d", "delete":
		return m.promptDelete(), nil, true
	case "D":
		return m.promptDeleteCompleted(), nil, true
	case "/":
		m = m.activateTab(tabSearch)
		return m.setFocus(focusSearch), nil, true
	case "r", "ctrl+r":
		return m, m.reloadCmd(), true
	}
	return m, nil, false
}

func (m model) activateTab(target tabKind) model {
	if target == m.activeTab {
		return m
	}
	m.rememberSelection()
	m.activeTab = target
	if m.focus == focusSearch && target != tabSearch {
		m = m.setFocus(focusList)
	}
	m.refreshItems()
	return m
}

func (m model) setFocus(target focusPane) model {
	m.focus = target
	if target == focusSearch {
		m.search.Focus()
	} else {
		m.search.Blur()
	}
	return m
}

func (m model) updateSearch(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter", "down", "tab":
		return m.setFocus(focusList), nil
	}
	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(key)
	if m.search.Value() != before {
		m.refreshItems()
	}
	return m, cmd
}

func (m model) moveSelection(delta int) model {
	items := m.taskList.Items()
	if len(items) == 0 {
		return m
	}
	next := min(max(m.taskList.Index()+delta, 0), len(items)-1)
	m.taskList.Select(next)
	m.rememberSelection()
	return m
}

// visibleTasks returns the tasks the active tab shows.
func (m model) visibleTasks() []task.Task {
	switch m.activeTab {
	case tabCompleted:
		return m.snapshot.Completed()
	case tabSearch:
		return m.snapshot.Search(m.search.Value())
	default:
		return m.snapshot.Active()
	}
}

func (m *model) refreshItems() {
	m.taskList.SetItems(taskItems(m.visibleTasks()))
	m.selectByID(m.selected[m.activeTab])
}

func (m *model) selectByID(id int64) {
	items := m.taskList.Items()
	if len(items) == 0 {
		return
	}
	for i, item := range items {
		if current, ok := item.(taskItem); ok && current.task.ID == id {
			m.taskList.Select(i)
			return
		}
	}
	m.taskList.Select(min(max(m.taskList.Index(), 0), len(items)-1))
}

func (m *model) rememberSelection() {
	if current, ok := m.currentTask(); ok {
		m.selected[m.activeTab] = current.ID
	}
}

func (m model) currentTask() (task.Task, bool) {
	item := m.taskList.SelectedItem()
	if item == nil {
		return task.Task{}, false
	}
	current, ok := item.(taskItem)
	return current.task, ok
}

func (m *model) applySnapshot(snapshot task.Snapshot) {
	m.snapshot = snapshot
	m.refreshItems()
	if m.focus == focusForm && !m.form.isDraft {
		if _, ok := snapshot.Find(m.form.task.ID); !ok {
			m.focus = focusList
			m.setStatus("Task was deleted", statusError)
		}
	}
}

func (m model) handleMutation(msg mutationMsg) model {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("%s failed: %v", msg.op, msg.err), statusError)
		return m
	}
	if msg.selectID != 0 {
		m.selected[m.activeTab] = msg.selectID
		m.selectByID(msg.selectID)
	}
	if msg.status != "" {
		m.setStatus(msg.status, statusInfo)
	}
	return m
}

func (m model) toggleSelected() (model, tea.Cmd) {
	current, ok := m.currentTask()
	if !ok {
		return m, nil
	}
	completed := !current.Completed
	status := "Completed: " + current.Text
	if !completed {
		status = "Reopened: " + current.Text
	}
	return m, m.mutateCmd("Toggle", status, func(ctx context.Context) error {
		return m.manager.ToggleCompleted(ctx, current.ID, completed)
	})
}

// moveTask swaps the selected task with its neighbour in the partition
// shown by the active tab.
func (m model) moveTask(delta int) (model, tea.Cmd) {
	if m.activeTab == tabSearch {
		m.setStatus("Reordering is not available in search results", statusError)
		return m, nil
	}
	current, ok := m.currentTask()
	if !ok {
		return m, nil
	}
	partition := m.visibleTasks()
	index := -1
	for i, t := range partition {
		if t.ID == current.ID {
			index = i
			break
		}
	}
	target := index + delta
	if index < 0 || target < 0 || target >= len(partition) {
		return m, nil
	}

	reordered := make([]task.Task, len(partition))
	copy(reordered, partition)
	reordered[index], reordered[target] = reordered[target], reordered[index]
	m.selected[m.activeTab] = current.ID

	return m, m.mutateCmd("Reorder", "", func(ctx context.Context) error {
		return m.manager.ReorderTasks(ctx, reordered)
	})
}

func (m model) startDraft() model {
	m.form = newTaskForm(task.Task{Priority: task.DefaultPriority}, true).SetSize(m.detailWidth())
	m.focus = focusForm
	m.setStatus("Adding task", statusInfo)
	return m
}

func (m model) startEdit() model {
	current, ok := m.currentTask()
	if !ok {
		return m
	}
	m.form = newTaskForm(current, false).SetSize(m.detailWidth())
	m.focus = focusForm
	m.setStatus(fmt.Sprintf("Editing task %d", current.ID), statusInfo)
	return m
}

func (m model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd, action := m.form.Update(msg)
	m.form = form
	switch action {
	case formSave:
		return m.saveForm()
	case formCancel:
		if m.form.IsDirty() {
			m.modal = confirmModal{
				kind:        modalDiscardEdits,
				title:       "Discard changes",
				message:     "Discard unsaved task changes?",
				confirmText: "Discard",
				cancelText:  "Keep editing",
				selected:    1,
			}
			return m, nil
		}
		m.focus = focusList
		m.setStatus("", statusNone)
		return m, nil
	}
	return m, cmd
}

func (m model) saveForm() (tea.Model, tea.Cmd) {
	if err := m.form.Validate(); err != nil {
		m.setStatus(err.Error(), statusError)
		return m, nil
	}
	result := m.form.Result()
	m.focus = focusList

	if m.form.isDraft {
		if m.activeTab != tabTasks {
			m = m.activateTab(tabTasks)
		}
		manager := m.manager
		return m, func() tea.Msg {
			created, err := manager.AddTask(m.ctx, result.Text, result.Description, result.Priority)
			if err != nil {
				return mutationMsg{op: "Add", err: err}
			}
			if created == nil {
				return mutationMsg{op: "Add"}
			}
			return mutationMsg{op: "Add", status: "Added: " + created.Text, selectID: created.ID}
		}
	}
	return m, m.mutateCmd("Save", "Saved: "+result.Text, func(ctx context.Context) error {
		return m.manager.UpdateTask(ctx, result)
	})
}

func (m model) promptDelete() model {
	current, ok := m.currentTask()
	if !ok {
		return m
	}
	m.modal = confirmModal{
		kind:        modalDeleteTask,
		title:       "Delete Task",
		message:     fmt.Sprintf("Are you sure you want to delete this task?\n\n%s", truncateText(current.Text, 50)),
		confirmText: "Delete",
		cancelText:  "Cancel",
		selected:    1,
		taskID:      current.ID,
	}
	return m
}

func (m model) promptDeleteCompleted() model {
	count := len(m.snapshot.Completed())
	if count == 0 {
		m.setStatus("No completed tasks yet", statusInfo)
		return m
	}
	m.modal = confirmModal{
		kind:        modalDeleteCompleted,
		title:       "Delete Completed",
		message:     fmt.Sprintf("Delete all %d completed %s?", count, plural(count, "task", "tasks")),
		confirmText: "Delete",
		cancelText:  "Cancel",
		selected:    1,
	}
	return m
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.modal.kind == modalHelp {
		switch key.String() {
		case "?", "esc", "enter":
			m.modal = confirmModal{kind: modalNone}
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}
	switch key.String() {
	case "left", "right", "tab", "shift+tab", "backtab", "h", "l":
		m.modal.selected = 1 - m.modal.selected
		return m, nil
	case "enter":
		return m.resolveModal(m.modal.selected == 0)
	case "y":
		return m.resolveModal(true)
	case "esc", "n":
		return m.resolveModal(false)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	modal := m.modal
	m.modal = confirmModal{kind: modalNone}
	if !confirm {
		return m, nil
	}
	switch modal.kind {
	case modalDeleteTask:
		id := modal.taskID
		return m, m.mutateCmd("Delete", "Task deleted", func(ctx context.Context) error {
			return m.manager.DeleteTask(ctx, id)
		})
	case modalDeleteCompleted:
		return m, m.mutateCmd("Delete completed", "Completed tasks deleted", func(ctx context.Context) error {
			return m.manager.DeleteAllCompleted(ctx)
		})
	case modalDiscardEdits:
		m.focus = focusList
		m.setStatus("Edits discarded", statusInfo)
	}
	return m, nil
}

func (m *model) resize() {
	contentHeight := max(m.height-3, 1)
	leftWidth, _ := splitWidths(m.width)
	listHeight := max(contentHeight-4, 1)
	m.taskList.SetSize(max(leftWidth-4, 1), listHeight)
	m.search.Width = max(leftWidth-8, 1)
	if m.focus == focusForm {
		m.form = m.form.SetSize(m.detailWidth())
	}
}

func (m model) detailWidth() int {
	_, rightWidth := splitWidths(m.width)
	return max(rightWidth-4, 1)
}

func splitWidths(width int) (int, int) {
	left := width / 2
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func (m model) listContent() string {
	header := m.styles.heading.Render(m.tabTitle())
	lines := []string{header}
	if m.activeTab == tabSearch {
		lines = append(lines, m.search.View())
	}
	lines = append(lines, "")

	switch {
	case !m.snapshot.Loaded:
		lines = append(lines, m.styles.muted.Render("Loading tasks..."))
	case len(m.taskList.Items()) == 0:
		lines = append(lines, m.styles.muted.Render(m.emptyMessage()))
	default:
		lines = append(lines, m.taskList.View())
	}
	return strings.Join(lines, "\n")
}

func (m model) tabTitle() string {
	switch m.activeTab {
	case tabCompleted:
		return fmt.Sprintf("Completed (%d)", len(m.snapshot.Completed()))
	case tabSearch:
		return "Search"
	default:
		return fmt.Sprintf("Tasks (%d)", len(m.snapshot.Active()))
	}
}

func (m model) emptyMessage() string {
	switch m.activeTab {
	case tabCompleted:
		return "No completed tasks yet"
	case tabSearch:
		if internalstrings.IsBlank(m.search.Value()) {
			return "Type / to begin searching."
		}
		return "No tasks match your search."
	default:
		return "No tasks yet"
	}
}

func (m model) detailContent(width int) string {
	if m.focus == focusForm {
		return m.form.View(m.styles)
	}
	current, ok := m.currentTask()
	if !ok {
		return m.styles.muted.Render("No task selected")
	}
	return renderDetail(current, width, m.styles, m.mdStyle)
}

func (m model) renderTabs() string {
	parts := make([]string, 0, len(tabLabels))
	for i, label := range tabLabels {
		style := m.styles.tabInactive
		if tabKind(i) == m.activeTab {
			style = m.styles.tabActive
		}
		parts = append(parts, style.Render(label))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	helpHint := m.styles.muted.Render("Press ? for help")
	spacerWidth := max(m.width-lipgloss.Width(content)-lipgloss.Width(helpHint), 1)
	return m.styles.tabBar.Render(content + strings.Repeat(" ", spacerWidth) + helpHint)
}

func (m model) renderPane(content string, width, height int, focused bool) string {
	style := m.styles.pane
	if focused {
		style = m.styles.paneActive
	}
	return style.Width(max(width-2, 0)).Height(max(height-2, 0)).Render(content)
}

func (m model) renderStatusLine() string {
	if internalstrings.IsBlank(m.status) {
		return ""
	}
	style := m.styles.muted
	switch m.statusLevel {
	case statusError:
		style = m.styles.statusError
	case statusInfo:
		style = m.styles.statusSuccess
	}
	return style.Render(truncateText(m.status, m.width))
}

func (m model) renderHelpLine() string {
	return m.styles.muted.Render(truncateText(m.helpSummary(), m.width))
}

func (m model) helpSummary() string {
	switch m.focus {
	case focusForm:
		return "Keys: tab next field | ctrl+p priority | ctrl+s save | esc cancel"
	case focusSearch:
		return "Keys: type to search | enter/esc back to results"
	}
	if m.activeTab == tabSearch {
		return "Keys: / search | j/k move | space toggle | e edit | d delete | ? help | q quit"
	}
	return "Keys: j/k move | J/K reorder | space toggle | a add | e edit | d delete | D clear completed | ? help | q quit"
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) openHelp() model {
	m.modal = confirmModal{kind: modalHelp}
	return m
}

func (m model) helpContent() string {
	sections := []string{
		m.styles.label.Render("Global"),
		"q or ctrl+c: quit",
		"1/2/3, tab or [ ]: switch tabs",
		"r: reload from disk",
		"?: toggle help",
		"",
		m.styles.label.Render("Tasks"),
		"up/down or j/k: move selection",
		"space or x: toggle completed",
		"J/K: move task down/up",
		"a: add task",
		"e or enter: edit task",
		"d: delete task",
		"D: delete all completed tasks",
		"/: search",
		"",
		m.styles.label.Render("Editing"),
		"tab/shift+tab: next/previous field",
		"ctrl+p: cycle priority",
		"ctrl+s: save, esc: cancel",
	}
	return strings.Join(sections, "\n")
}

func (m model) renderModalOverlay(content string) string {
	if m.modal.kind == modalNone {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
}

func (m model) modalView() string {
	if m.modal.kind == modalHelp {
		return m.styles.modal.Render(m.helpContent())
	}
	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, len(options))
	for i, option := range options {
		style := m.styles.button
		if i == m.modal.selected {
			style = m.styles.buttonActive
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	lines := []string{m.styles.heading.Render(m.modal.title), "", m.modal.message, "", strings.Join(buttons, " ")}
	return m.styles.modal.Render(strings.Join(lines, "\n"))
}

func (m model) mutateCmd(op, status string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			return mutationMsg{op: op, err: err}
		}
		return mutationMsg{op: op, status: status}
	}
}

func (m model) reloadCmd() tea.Cmd {
	manager := m.manager
	if manager == nil {
		return nil
	}
	return m.mutateCmd("Reload", "", manager.Reload)
}

func (m model) waitForSnapshotCmd() tea.Cmd {
	updates := m.updates
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snapshot, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg{snapshot: snapshot}
	}
}

func plural(count int, one, many string) string {
	if count == 1 {
		return one
	}
	return many
}

type snapshotMsg struct {
	snapshot task.Snapshot
}

type mutationMsg struct {
	op       string
	status   string
	selectID int64
	err      error
}
