package tasktui

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/amonks/ordoflow/internal/ui"
	"github.com/amonks/ordoflow/task"
)

const (
	screenWidth  = 100
	screenHeight = 30
)

func useASCIIRenderer(t *testing.T) {
	originalProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(originalProfile)
	})
}

func newTestManager(t *testing.T, texts ...string) *task.Manager {
	t.Helper()

	ctx := context.Background()
	store, err := task.OpenSQLite(ctx, task.SQLiteOptions{Path: filepath.Join(t.TempDir(), "tui.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	manager := task.NewManager(store, task.ManagerOptions{})
	if err := manager.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	for _, text := range texts {
		if _, err := manager.AddTask(ctx, text, "", task.PriorityP4); err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
	}
	return manager
}

func newTestModel(t *testing.T, manager *task.Manager) model {
	t.Helper()
	useASCIIRenderer(t)

	m := newModel(context.Background(), manager, Options{Palette: ui.DarkPalette})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: screenWidth, Height: screenHeight})
	return updated.(model)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends keys and drops any command they return.
func press(t *testing.T, m model, keys ...string) model {
	t.Helper()

	for _, key := range keys {
		updated, _ := m.Update(keyMsg(key))
		m = updated.(model)
	}
	return m
}

// pressAndRun sends a key whose command must be a mutation, runs it and
// delivers the result plus the manager's new snapshot.
func pressAndRun(t *testing.T, m model, key string) model {
	t.Helper()

	updated, cmd := m.Update(keyMsg(key))
	m = updated.(model)
	if cmd == nil {
		t.Fatalf("key %q produced no command", key)
	}
	return deliver(t, m, cmd)
}

func deliver(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()

	msg := cmd()
	mutation, ok := msg.(mutationMsg)
	if !ok {
		t.Fatalf("expected mutationMsg, got %T", msg)
	}
	updated, _ := m.Update(snapshotMsg{snapshot: m.manager.Snapshot()})
	m = updated.(model)
	updated, _ = m.Update(mutation)
	return updated.(model)
}

func visibleTexts(m model) []string {
	var texts []string
	for _, item := range m.taskList.Items() {
		texts = append(texts, item.(taskItem).task.Text)
	}
	return texts
}

func selectedText(t *testing.T, m model) string {
	t.Helper()

	current, ok := m.currentTask()
	if !ok {
		t.Fatal("no task selected")
	}
	return current.Text
}

func TestViewShowsTabsAndTasks(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "Buy milk", "Call mom"))

	view := m.View()
	for _, want := range []string{"[1] Tasks", "[2] Completed", "[3] Search", "Tasks (2)", "Buy milk", "Call mom", "Press ? for help"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewBeforeSizeIsLoading(t *testing.T) {
	m := newModel(context.Background(), newTestManager(t), Options{})
	if got := m.View(); got != "Loading tasks..." {
		t.Errorf("View = %q", got)
	}
}

func TestResizeBeforeAndDuringForm(t *testing.T) {
	useASCIIRenderer(t)

	m := newModel(context.Background(), nil, Options{})
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: screenWidth, Height: screenHeight})
	m = updated.(model)
	if cmd != nil {
		t.Error("resize should not return a command")
	}
	if m.width != screenWidth || m.height != screenHeight {
		t.Errorf("size = %dx%d", m.width, m.height)
	}

	m = press(t, m, "a")
	updated, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(model)
	if m.focus != focusForm {
		t.Fatal("expected draft form to stay open")
	}
	if m.form.text.Width != m.detailWidth()-4 {
		t.Errorf("form width = %d, want %d", m.form.text.Width, m.detailWidth()-4)
	}
}

func TestEmptyMessages(t *testing.T) {
	m := newTestModel(t, newTestManager(t))

	if !strings.Contains(m.View(), "No tasks yet") {
		t.Error("expected empty tasks message")
	}
	m = press(t, m, "2")
	if !strings.Contains(m.View(), "No completed tasks yet") {
		t.Error("expected empty completed message")
	}
	m = press(t, m, "3")
	if !strings.Contains(m.View(), "Type / to begin searching.") {
		t.Error("expected search hint")
	}
}

func TestNavigationMovesSelection(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "one", "two", "three"))

	if got := selectedText(t, m); got != "one" {
		t.Fatalf("initial selection = %q", got)
	}
	m = press(t, m, "j", "j", "j")
	if got := selectedText(t, m); got != "three" {
		t.Errorf("after j j j = %q, want three", got)
	}
	m = press(t, m, "k")
	if got := selectedText(t, m); got != "two" {
		t.Errorf("after k = %q, want two", got)
	}
}

func TestToggleMovesTaskToCompletedTab(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "one", "two"))

	m = pressAndRun(t, m, " ")
	if got := visibleTexts(m); !slices.Equal(got, []string{"two"}) {
		t.Errorf("tasks tab = %v", got)
	}
	if !strings.Contains(m.status, "Completed: one") {
		t.Errorf("status = %q", m.status)
	}

	m = press(t, m, "2")
	if got := visibleTexts(m); !slices.Equal(got, []string{"one"}) {
		t.Errorf("completed tab = %v", got)
	}

	m = pressAndRun(t, m, "x")
	if len(m.snapshot.Completed()) != 0 {
		t.Errorf("expected task reopened, completed = %v", m.snapshot.Completed())
	}
}

func TestShiftJMovesTaskDown(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "one", "two", "three"))

	m = pressAndRun(t, m, "J")
	if got := visibleTexts(m); !slices.Equal(got, []string{"two", "one", "three"}) {
		t.Errorf("order = %v", got)
	}
	if got := selectedText(t, m); got != "one" {
		t.Errorf("selection did not follow the moved task: %q", got)
	}

	m = pressAndRun(t, m, "K")
	if got := visibleTexts(m); !slices.Equal(got, []string{"one", "two", "three"}) {
		t.Errorf("order after K = %v", got)
	}
}

func TestMoveAtEdgeIsNoOp(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "one", "two"))

	updated, cmd := m.Update(keyMsg("K"))
	if cmd != nil {
		t.Error("moving the first task up should not issue a command")
	}
	if got := visibleTexts(updated.(model)); !slices.Equal(got, []string{"one", "two"}) {
		t.Errorf("order = %v", got)
	}
}

func TestAddTaskThroughForm(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "existing"))

	m = press(t, m, "a")
	if m.focus != focusForm || !m.form.isDraft {
		t.Fatal("expected draft form to open")
	}
	m = press(t, m, "Buy milk", "ctrl+p")
	if m.form.priority != task.PriorityP1 {
		t.Errorf("priority after ctrl+p = %q, want p1", m.form.priority)
	}

	m = pressAndRun(t, m, "ctrl+s")
	if m.focus != focusList {
		t.Error("expected form to close after save")
	}
	if got := visibleTexts(m); !slices.Equal(got, []string{"existing", "Buy milk"}) {
		t.Errorf("tasks = %v", got)
	}
	if got := selectedText(t, m); got != "Buy milk" {
		t.Errorf("new task not selected: %q", got)
	}
	added := m.snapshot.Active()[1]
	if added.Priority != task.PriorityP1 {
		t.Errorf("saved priority = %q", added.Priority)
	}
}

func TestAddBlankTaskIsRejected(t *testing.T) {
	m := newTestModel(t, newTestManager(t))

	m = press(t, m, "a", "   ")
	updated, cmd := m.Update(keyMsg("ctrl+s"))
	m = updated.(model)
	if cmd != nil {
		t.Error("blank task should not be saved")
	}
	if m.focus != focusForm {
		t.Error("form should stay open")
	}
	if m.statusLevel != statusError || !strings.Contains(m.status, "empty") {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditTaskThroughForm(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "Buy milk"))

	m = press(t, m, "e")
	if m.focus != focusForm || m.form.isDraft {
		t.Fatal("expected edit form to open")
	}
	m = press(t, m, " today", "tab", "2% please", "tab", " ")
	m = pressAndRun(t, m, "ctrl+s")

	got := m.snapshot.Active()[0]
	if got.Text != "Buy milk today" || got.Description != "2% please" || got.Priority != task.PriorityP1 {
		t.Errorf("edited task = %+v", got)
	}
}

func TestCancelDirtyFormAsksToDiscard(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "Buy milk"))

	m = press(t, m, "e", "!", "esc")
	if m.modal.kind != modalDiscardEdits {
		t.Fatalf("expected discard modal, got %v", m.modal.kind)
	}
	m = press(t, m, "n")
	if m.focus != focusForm {
		t.Error("keep editing should leave the form open")
	}
	m = press(t, m, "esc", "y")
	if m.focus != focusList {
		t.Error("discard should close the form")
	}
	if got := m.snapshot.Active()[0].Text; got != "Buy milk" {
		t.Errorf("discarded edit was saved: %q", got)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "one", "two"))

	m = press(t, m, "d")
	if m.modal.kind != modalDeleteTask {
		t.Fatalf("expected delete modal, got %v", m.modal.kind)
	}
	if !strings.Contains(m.View(), "Are you sure you want to delete this task?") {
		t.Error("modal message missing from view")
	}

	// Cancel is selected by default.
	m = press(t, m, "enter")
	if m.modal.kind != modalNone || len(m.snapshot.Tasks) != 2 {
		t.Fatalf("cancel deleted a task")
	}

	m = press(t, m, "d", "left")
	m = pressAndRun(t, m, "enter")
	if got := visibleTexts(m); !slices.Equal(got, []string{"two"}) {
		t.Errorf("tasks after delete = %v", got)
	}
}

func TestDeleteAllCompleted(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "one", "two", "three"))

	m = press(t, m, "D")
	if m.modal.kind != modalNone || m.status != "No completed tasks yet" {
		t.Fatalf("expected no-op with status, got modal %v status %q", m.modal.kind, m.status)
	}

	m = pressAndRun(t, m, " ")
	m = pressAndRun(t, m, " ")
	m = press(t, m, "D")
	if m.modal.kind != modalDeleteCompleted || !strings.Contains(m.modal.message, "Delete all 2 completed tasks?") {
		t.Fatalf("modal = %+v", m.modal)
	}
	m = pressAndRun(t, m, "y")

	if got := texts(m.snapshot.Tasks); !slices.Equal(got, []string{"three"}) {
		t.Errorf("remaining = %v", got)
	}
}

func TestSearchFiltersAcrossPartitions(t *testing.T) {
	manager := newTestManager(t, "Buy milk", "Call mom", "Milk the cow")
	m := newTestModel(t, manager)
	m = press(t, m, "G")
	m = pressAndRun(t, m, " ")
	if len(m.snapshot.Completed()) != 1 {
		t.Fatalf("expected one completed task")
	}

	m = press(t, m, "/")
	if m.activeTab != tabSearch || m.focus != focusSearch {
		t.Fatal("expected search tab with focused input")
	}
	m = press(t, m, "MILK")
	if got := visibleTexts(m); !slices.Equal(got, []string{"Buy milk", "Milk the cow"}) {
		t.Errorf("results = %v", got)
	}

	m = press(t, m, "esc")
	if m.focus != focusList {
		t.Error("esc should return to results")
	}
	m = press(t, m, "/", "zzz", "esc")
	if !strings.Contains(m.View(), "No tasks match your search.") {
		t.Error("expected no-match message")
	}
}

func TestReorderDisabledInSearch(t *testing.T) {
	m := newTestModel(t, newTestManager(t, "milk one", "milk two"))

	m = press(t, m, "/", "milk", "esc")
	updated, cmd := m.Update(keyMsg("J"))
	if cmd != nil {
		t.Error("reorder should not run in search results")
	}
	if updated.(model).statusLevel != statusError {
		t.Error("expected an explanatory status")
	}
}

func TestHelpModal(t *testing.T) {
	m := newTestModel(t, newTestManager(t))

	m = press(t, m, "?")
	if m.modal.kind != modalHelp || !strings.Contains(m.View(), "ctrl+p: cycle priority") {
		t.Fatal("expected help modal")
	}
	m = press(t, m, "?")
	if m.modal.kind != modalNone {
		t.Error("expected help to close")
	}
}

func TestSnapshotFromAnotherWriterRefreshesList(t *testing.T) {
	manager := newTestManager(t, "one")
	m := newTestModel(t, manager)

	if _, err := manager.AddTask(context.Background(), "from elsewhere", "", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	updated, _ := m.Update(snapshotMsg{snapshot: manager.Snapshot()})
	m = updated.(model)

	if got := visibleTexts(m); !slices.Equal(got, []string{"one", "from elsewhere"}) {
		t.Errorf("tasks = %v", got)
	}
}

func TestDetailPaneRendersDescription(t *testing.T) {
	manager := newTestManager(t)
	if _, err := manager.AddTask(context.Background(), "Plan trip", "Book **train** tickets", task.PriorityP2); err != nil {
		t.Fatalf("add: %v", err)
	}
	m := newTestModel(t, manager)

	view := m.View()
	for _, want := range []string{"Priority 2", "Status: Active", "train"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail missing %q:\n%s", want, view)
		}
	}
}

func texts(tasks []task.Task) []string {
	var result []string
	for _, t := range tasks {
		result = append(result, t.Text)
	}
	return result
}
