package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ManagerOptions configures NewManager.
type ManagerOptions struct {
	// Logger receives command diagnostics. Nil discards them.
	Logger *slog.Logger

	// Now returns the current time, used for creation dates. Defaults to time.Now.
	Now func() time.Time
}

// Manager owns the in-memory snapshot of the task list and is the only
// writer of the store. Every mutating command writes to storage, then
// reloads the whole table, so the snapshot never drifts from disk.
//
// Commands are serialized by an internal lock; snapshot reads never block
// on a command's storage I/O for longer than the swap itself.
type Manager struct {
	storage Storage
	logger  *slog.Logger
	now     func() time.Time

	// cmdMu serializes commands (write + reload).
	cmdMu sync.Mutex

	mu          sync.RWMutex
	snapshot    Snapshot
	subscribers map[int]chan Snapshot
	nextSubID   int
}

// NewManager returns a manager over storage. The snapshot is empty and
// Loading reports true until Reload succeeds once.
func NewManager(storage Storage, opts ManagerOptions) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		storage:     storage,
		logger:      logger,
		now:         now,
		snapshot:    Snapshot{Tasks: []Task{}},
		subscribers: make(map[int]chan Snapshot),
	}
}

// Snapshot returns a copy of the current snapshot.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot.clone()
}

// Loading reports whether the first load has not completed yet.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.snapshot.Loaded
}

// Subscribe returns a channel that receives every new snapshot, and a
// function that ends the subscription. The channel holds only the latest
// undelivered snapshot: slow readers skip intermediate states but always
// see the newest one.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = ch
	if m.snapshot.Loaded {
		ch <- m.snapshot.clone()
	}
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subscribers, id)
			m.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Reload replaces the snapshot with the store's contents and notifies
// subscribers.
func (m *Manager) Reload(ctx context.Context) error {
	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()
	return m.reload(ctx)
}

func (m *Manager) reload(ctx context.Context) error {
	tasks, err := m.storage.FetchAll(ctx)
	if err != nil {
		m.logger.Error("reload failed", "error", err)
		return fmt.Errorf("reload tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = Snapshot{Tasks: tasks, Loaded: true}
	for _, ch := range m.subscribers {
		publish(ch, m.snapshot.clone())
	}
	m.logger.Debug("snapshot reloaded", "tasks", len(tasks))
	return nil
}

// publish delivers snap, replacing an undelivered older snapshot.
func publish(ch chan Snapshot, snap Snapshot) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

// mutate runs write under the command lock and reloads afterwards.
func (m *Manager) mutate(ctx context.Context, op string, write func() error) error {
	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	if err := write(); err != nil {
		m.logger.Error("command failed", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return m.reload(ctx)
}

// AddTask appends a new active task at the end of the display order.
// Blank text is ignored: AddTask returns (nil, nil) and changes nothing.
// Text longer than MaxTextLength is rejected with ErrTextTooLong. An
// empty priority means DefaultPriority.
func (m *Manager) AddTask(ctx context.Context, text, description string, priority Priority) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		m.logger.Debug("ignoring task with blank text")
		return nil, nil
	}
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	if priority == "" {
		priority = DefaultPriority
	}
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}

	m.cmdMu.Lock()
	defer m.cmdMu.Unlock()

	id, err := m.insertLast(ctx, NewTask{
		Text:        text,
		Description: description,
		Priority:    priority,
		Date:        FormatDate(m.now()),
	})
	if err != nil {
		m.logger.Error("command failed", "op", "add task", "error", err)
		return nil, fmt.Errorf("add task: %w", err)
	}
	if err := m.reload(ctx); err != nil {
		return nil, err
	}
	m.logger.Debug("task added", "id", id)

	created, ok := m.Snapshot().Find(id)
	if !ok {
		return nil, fmt.Errorf("add task: task %d missing after reload", id)
	}
	return &created, nil
}

// insertLast stores t after every existing task. Callers hold cmdMu.
func (m *Manager) insertLast(ctx context.Context, t NewTask) (int64, error) {
	next, err := m.storage.NextOrderIndex(ctx)
	if err != nil {
		return 0, err
	}
	t.OrderIndex = next
	return m.storage.Insert(ctx, t)
}

// UpdateTask persists the text, description and priority of t. The
// completion flag and order index are left untouched. Unknown ids and
// blank text are ignored. Text longer than MaxTextLength is rejected with
// ErrTextTooLong.
func (m *Manager) UpdateTask(ctx context.Context, t Task) error {
	text := strings.TrimSpace(t.Text)
	if text == "" {
		m.logger.Debug("ignoring update with blank text", "id", t.ID)
		return nil
	}
	if err := ValidateText(text); err != nil {
		return err
	}
	priority := t.Priority
	if priority == "" {
		priority = DefaultPriority
	}
	if err := ValidatePriority(priority); err != nil {
		return err
	}

	return m.mutate(ctx, "update task", func() error {
		return m.storage.Update(ctx, t.ID, text, t.Description, priority)
	})
}

// ToggleCompleted sets the completion flag of a task. Setting the value
// it already has is harmless.
func (m *Manager) ToggleCompleted(ctx context.Context, id int64, completed bool) error {
	return m.mutate(ctx, "toggle task", func() error {
		return m.storage.SetCompleted(ctx, id, completed)
	})
}

// ReorderTasks rearranges the given tasks into the given order. The tasks
// keep the display slots they occupied between them; every other task
// keeps its slot. The update is applied as one atomic batch.
func (m *Manager) ReorderTasks(ctx context.Context, ordered []Task) error {
	return m.mutate(ctx, "reorder tasks", func() error {
		current, err := m.storage.FetchAll(ctx)
		if err != nil {
			return err
		}
		updates := planReorder(current, IDs(ordered))
		m.logger.Debug("reordering tasks", "requested", len(ordered), "updates", len(updates))
		return m.storage.UpdateOrderIndexBatch(ctx, updates)
	})
}

// DeleteTask permanently removes a task.
func (m *Manager) DeleteTask(ctx context.Context, id int64) error {
	return m.mutate(ctx, "delete task", func() error {
		return m.storage.Delete(ctx, id)
	})
}

// DeleteAllCompleted permanently removes every completed task.
func (m *Manager) DeleteAllCompleted(ctx context.Context) error {
	return m.mutate(ctx, "delete completed tasks", func() error {
		return m.storage.DeleteCompleted(ctx)
	})
}
