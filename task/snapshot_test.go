package task

import (
	"slices"
	"testing"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Loaded: true,
		Tasks: []Task{
			{ID: 1, Text: "Buy milk", Priority: PriorityP3, OrderIndex: 0},
			{ID: 2, Text: "Call mom", Description: "about the MILKMAN", Priority: PriorityP1, OrderIndex: 1},
			{ID: 3, Text: "Pay rent", Completed: true, Priority: PriorityP1, OrderIndex: 2},
			{ID: 4, Text: "Walk dog", Priority: PriorityP4, OrderIndex: 3},
		},
	}
}

func TestSnapshotPartitions(t *testing.T) {
	snap := testSnapshot()

	if got := IDs(snap.Active()); !slices.Equal(got, []int64{1, 2, 4}) {
		t.Errorf("Active ids = %v", got)
	}
	if got := IDs(snap.Completed()); !slices.Equal(got, []int64{3}) {
		t.Errorf("Completed ids = %v", got)
	}
	if got := IDs(snap.Partition(true)); !slices.Equal(got, []int64{3}) {
		t.Errorf("Partition(true) ids = %v", got)
	}
}

func TestSnapshotSearch(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		query string
		want  []int64
	}{
		{"milk", []int64{1, 2}},
		{"  RENT ", []int64{3}},
		{"nothing", nil},
		{"", nil},
		{"   ", nil},
	}

	for _, tt := range tests {
		got := IDs(snap.Search(tt.query))
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestSnapshotFind(t *testing.T) {
	snap := testSnapshot()

	got, ok := snap.Find(2)
	if !ok || got.Text != "Call mom" {
		t.Errorf("Find(2) = %+v, %v", got, ok)
	}
	if _, ok := snap.Find(99); ok {
		t.Error("Find(99) found a task")
	}
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	snap := testSnapshot()
	clone := snap.clone()
	clone.Tasks[0].Text = "changed"

	if snap.Tasks[0].Text != "Buy milk" {
		t.Errorf("clone shares backing array with original")
	}
}

func TestSortByPriorityIsStable(t *testing.T) {
	snap := testSnapshot()
	sorted := SortByPriority(snap.Tasks)

	if got := IDs(sorted); !slices.Equal(got, []int64{2, 3, 1, 4}) {
		t.Errorf("SortByPriority ids = %v", got)
	}
	if snap.Tasks[0].ID != 1 {
		t.Errorf("SortByPriority modified its input")
	}
}
