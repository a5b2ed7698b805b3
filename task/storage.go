package task

import "context"

// Storage is the durable home of the task table. The Manager is its only
// caller. Operations on ids that do not exist are no-ops, not errors.
// Every database failure is reported wrapped in ErrStorage.
type Storage interface {
	// Initialize ensures the table exists. It is safe to call on every start
	// and never destroys data.
	Initialize(ctx context.Context) error

	// FetchAll returns every task ordered by OrderIndex (ties by ID).
	FetchAll(ctx context.Context) ([]Task, error)

	// NextOrderIndex returns one past the highest OrderIndex, or 0 when empty.
	NextOrderIndex(ctx context.Context) (int, error)

	// Insert stores a new task and returns the assigned ID.
	Insert(ctx context.Context, t NewTask) (int64, error)

	// Update rewrites text, description and priority of one task.
	Update(ctx context.Context, id int64, text, description string, priority Priority) error

	// UpdateOrderIndexBatch applies every update or none of them.
	UpdateOrderIndexBatch(ctx context.Context, updates []OrderUpdate) error

	// SetCompleted sets the completion flag of one task.
	SetCompleted(ctx context.Context, id int64, completed bool) error

	// Delete removes one task permanently.
	Delete(ctx context.Context, id int64) error

	// DeleteCompleted removes every completed task in one atomic operation.
	DeleteCompleted(ctx context.Context) error

	// Close releases the underlying database handle.
	Close() error
}
