package task

import "time"

// DateLayout formats the creation date the way the task list shows it ("Jan 5").
const DateLayout = "Jan 2"

// MaxTextLength is the maximum allowed length for a task title, in bytes.
const MaxTextLength = 500

// Task is a single to-do item.
type Task struct {
	// ID is assigned by the store on insert and never changes.
	ID int64 `json:"id"`

	// Text is the title of the task.
	Text string `json:"text"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Completed moves the task from the active to the completed partition.
	Completed bool `json:"completed"`

	// Date is the creation date in DateLayout, set once.
	Date string `json:"date"`

	// Priority is the urgency (p1..p4).
	Priority Priority `json:"priority"`

	// OrderIndex positions the task in the user-controlled display order.
	OrderIndex int `json:"orderIndex"`
}

// NewTask holds the columns written when a task is inserted.
type NewTask struct {
	Text        string
	Description string
	Priority    Priority
	OrderIndex  int
	Date        string
}

// OrderUpdate assigns a new order index to one task.
type OrderUpdate struct {
	ID         int64
	OrderIndex int
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
