package task

import (
	"slices"
	"testing"
)

func orderedTasks(ids ...int64) []Task {
	tasks := make([]Task, len(ids))
	for i, id := range ids {
		tasks[i] = Task{ID: id, OrderIndex: i}
	}
	return tasks
}

// applyUpdates returns ids of current sorted by the order indexes after
// applying updates, ties broken by id.
func applyUpdates(current []Task, updates []OrderUpdate) []int64 {
	tasks := slices.Clone(current)
	for _, u := range updates {
		for i := range tasks {
			if tasks[i].ID == u.ID {
				tasks[i].OrderIndex = u.OrderIndex
			}
		}
	}
	slices.SortStableFunc(tasks, func(a, b Task) int {
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex - b.OrderIndex
		}
		return int(a.ID - b.ID)
	})
	return IDs(tasks)
}

func TestPlanReorder(t *testing.T) {
	tests := []struct {
		name      string
		current   []Task
		requested []int64
		want      []int64
		updates   int
	}{
		{
			name:      "swap first two",
			current:   orderedTasks(1, 2, 3),
			requested: []int64{2, 1},
			want:      []int64{2, 1, 3},
			updates:   2,
		},
		{
			name:      "full reverse",
			current:   orderedTasks(1, 2, 3),
			requested: []int64{3, 2, 1},
			want:      []int64{3, 2, 1},
			updates:   2,
		},
		{
			name:      "subset keeps other slots",
			current:   orderedTasks(1, 2, 3, 4),
			requested: []int64{4, 2},
			want:      []int64{1, 4, 3, 2},
			updates:   2,
		},
		{
			name:      "same order is a no-op",
			current:   orderedTasks(1, 2, 3),
			requested: []int64{1, 2, 3},
			want:      []int64{1, 2, 3},
			updates:   0,
		},
		{
			name:      "unknown and repeated ids ignored",
			current:   orderedTasks(1, 2, 3),
			requested: []int64{3, 99, 3, 1},
			want:      []int64{3, 2, 1},
			updates:   2,
		},
		{
			name:      "nothing known",
			current:   orderedTasks(1, 2),
			requested: []int64{42},
			want:      []int64{1, 2},
			updates:   0,
		},
		{
			name: "tied indexes become unique",
			current: []Task{
				{ID: 1, OrderIndex: 0},
				{ID: 2, OrderIndex: 0},
				{ID: 3, OrderIndex: 1},
			},
			requested: []int64{3, 1},
			want:      []int64{3, 2, 1},
			updates:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates := planReorder(tt.current, tt.requested)
			if len(updates) != tt.updates {
				t.Errorf("got %d updates (%v), want %d", len(updates), updates, tt.updates)
			}
			if got := applyUpdates(tt.current, updates); !slices.Equal(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}
