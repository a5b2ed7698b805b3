package main

import (
	"fmt"
	"strconv"

	"github.com/amonks/ordoflow/task"
	"github.com/spf13/cobra"
)

// move
var moveCmd = &cobra.Command{
	Use:   "move <id> <position>",
	Short: "Move a task to a position in its list",
	Long: `Move a task to a position in its list.

Positions start at 1 and count within the task's own list (active or
completed). Positions past the end move the task to the end.`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

// reorder
var reorderCmd = &cobra.Command{
	Use:   "reorder <id>...",
	Short: "Put the given tasks in the given order",
	Long: `Put the given tasks in the given order.

The tasks trade the places they already hold between them; every other
task keeps its place.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runReorder,
}

func init() {
	rootCmd.AddCommand(moveCmd, reorderCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	position, err := strconv.Atoi(args[1])
	if err != nil || position < 1 {
		return fmt.Errorf("invalid position %q (want a number starting at 1)", args[1])
	}

	return withApp(cmd, func(a *app) error {
		found, err := findTask(a.manager, id)
		if err != nil {
			return err
		}

		partition := a.manager.Snapshot().Partition(found.Completed)
		reordered, position := moveWithin(partition, found.ID, position)
		if err := a.manager.ReorderTasks(cmd.Context(), reordered); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %d to position %d\n", found.ID, position)
		return nil
	})
}

// moveWithin returns tasks with id moved to the 1-based position, clamped
// to the list, and the position it ended up at.
func moveWithin(tasks []task.Task, id int64, position int) ([]task.Task, int) {
	var moving task.Task
	rest := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == id {
			moving = t
			continue
		}
		rest = append(rest, t)
	}
	if len(rest) == len(tasks) {
		return tasks, 0
	}

	index := min(max(position-1, 0), len(rest))
	result := make([]task.Task, 0, len(tasks))
	result = append(result, rest[:index]...)
	result = append(result, moving)
	result = append(result, rest[index:]...)
	return result, index + 1
}

// partitionPosition returns the 1-based place of id within its partition.
func partitionPosition(snapshot task.Snapshot, id int64) int {
	found, ok := snapshot.Find(id)
	if !ok {
		return 0
	}
	for i, t := range snapshot.Partition(found.Completed) {
		if t.ID == id {
			return i + 1
		}
	}
	return 0
}

func runReorder(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		tasks, err := resolveTasks(a.manager, args)
		if err != nil {
			return err
		}
		if err := a.manager.ReorderTasks(cmd.Context(), tasks); err != nil {
			return err
		}
		count := len(tasks)
		fmt.Fprintf(cmd.OutOrStdout(), "Reordered %d %s\n", count, plural(count, "task", "tasks"))
		return nil
	})
}
