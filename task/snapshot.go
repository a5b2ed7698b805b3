package task

import (
	"sort"
	"strings"
)

// Snapshot is the full task list as last loaded from the store.
type Snapshot struct {
	// Tasks are in display order (OrderIndex, then ID).
	Tasks []Task `json:"tasks"`

	// Loaded is false until the first successful load.
	Loaded bool `json:"loaded"`
}

func (s Snapshot) clone() Snapshot {
	tasks := make([]Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	return Snapshot{Tasks: tasks, Loaded: s.Loaded}
}

// Active returns the tasks that are not completed, in display order.
func (s Snapshot) Active() []Task {
	return s.filter(func(t Task) bool { return !t.Completed })
}

// Completed returns the completed tasks, in display order.
func (s Snapshot) Completed() []Task {
	return s.filter(func(t Task) bool { return t.Completed })
}

// Search returns tasks whose text or description contains query,
// ignoring case. A blank query matches nothing.
func (s Snapshot) Search(query string) []Task {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	return s.filter(func(t Task) bool {
		return strings.Contains(strings.ToLower(t.Text), query) ||
			strings.Contains(strings.ToLower(t.Description), query)
	})
}

// Find returns the task with the given id.
func (s Snapshot) Find(id int64) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Partition returns the tasks sharing the completion state of completed.
func (s Snapshot) Partition(completed bool) []Task {
	if completed {
		return s.Completed()
	}
	return s.Active()
}

func (s Snapshot) filter(keep func(Task) bool) []Task {
	var result []Task
	for _, t := range s.Tasks {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// SortByPriority returns a copy of tasks ordered by priority (p1 first),
// keeping display order within a priority.
func SortByPriority(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
	})
	return sorted
}

// IDs returns the ids of tasks in order.
func IDs(tasks []Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}
