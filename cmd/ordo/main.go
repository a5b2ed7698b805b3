// Package main implements the ordo CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/amonks/ordoflow/task"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ordo",
	Short: "Ordoflow - a prioritized, hand-ordered to-do list",
	Long: `Ordoflow keeps a to-do list in a local SQLite database.

Tasks have a priority (p1 through p4) and a position you control. Run
"ordo tui" for the interactive interface, or use the subcommands below
from scripts.`,
	SilenceUsage:      true,
	PersistentPreRunE: configureOutput,
}

var (
	rootDBPath   string
	rootTheme    string
	rootLogLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDBPath, "db", "", "Database file (overrides $ORDOFLOW_DB and config)")
	rootCmd.PersistentFlags().StringVar(&rootTheme, "theme", "", "Color theme (auto, light, dark)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// parseTaskID parses a task ID argument.
func parseTaskID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", value)
	}
	return id, nil
}

// findTask returns the task with the given ID from the manager's snapshot.
func findTask(manager *task.Manager, id int64) (task.Task, error) {
	found, ok := manager.Snapshot().Find(id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}
	return found, nil
}

// resolveTasks parses each argument as a task ID and looks it up.
func resolveTasks(manager *task.Manager, args []string) ([]task.Task, error) {
	tasks := make([]task.Task, 0, len(args))
	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return nil, err
		}
		found, err := findTask(manager, id)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, found)
	}
	return tasks, nil
}
