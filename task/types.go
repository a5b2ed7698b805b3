// Package task implements a local, single-user task list.
//
// Tasks live in an SQLite table (see SQLiteStore). A Manager sits between
// the store and the user interfaces: every command performs one storage
// operation (or one atomic batch), then reloads the whole table and
// publishes the new Snapshot to subscribers.
//
// The public API mirrors the commands of the ordo CLI:
//   - AddTask, UpdateTask, ToggleCompleted, DeleteTask, DeleteAllCompleted
//   - ReorderTasks for user-controlled ordering
//   - Snapshot, Subscribe and the Active/Completed/Search projections
package task

import (
	"strings"

	"github.com/amonks/ordoflow/internal/validation"
)

// Priority is the urgency of a task. PriorityP1 is the most urgent.
type Priority string

const (
	// PriorityP1 is the highest priority.
	PriorityP1 Priority = "p1"

	// PriorityP2 is the second priority level.
	PriorityP2 Priority = "p2"

	// PriorityP3 is the third priority level.
	PriorityP3 Priority = "p3"

	// PriorityP4 means "no priority" and is the default.
	PriorityP4 Priority = "p4"

	// DefaultPriority is applied when no priority is given.
	DefaultPriority = PriorityP4
)

// ValidPriorities returns all priorities, most urgent first.
func ValidPriorities() []Priority {
	return []Priority{PriorityP1, PriorityP2, PriorityP3, PriorityP4}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Rank returns the sort rank of the priority (1 = most urgent).
// Unknown priorities sort after p4.
func (p Priority) Rank() int {
	switch p {
	case PriorityP1:
		return 1
	case PriorityP2:
		return 2
	case PriorityP3:
		return 3
	case PriorityP4:
		return 4
	default:
		return 5
	}
}

// Label returns the human-readable name shown in the priority picker.
func (p Priority) Label() string {
	switch p {
	case PriorityP1:
		return "Priority 1"
	case PriorityP2:
		return "Priority 2"
	case PriorityP3:
		return "Priority 3"
	case PriorityP4:
		return "No Priority"
	default:
		return "unknown"
	}
}

// Next cycles to the following priority, wrapping p4 back to p1.
func (p Priority) Next() Priority {
	switch p {
	case PriorityP1:
		return PriorityP2
	case PriorityP2:
		return PriorityP3
	case PriorityP3:
		return PriorityP4
	default:
		return PriorityP1
	}
}

// ParsePriority accepts "p1".."p4" or "1".."4" (case-insensitive).
// An empty value yields DefaultPriority.
func ParsePriority(value string) (Priority, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return DefaultPriority, nil
	}
	if len(normalized) == 1 {
		normalized = "p" + normalized
	}
	priority := Priority(normalized)
	if !priority.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidPriority, Priority(value), ValidPriorities())
	}
	return priority, nil
}
