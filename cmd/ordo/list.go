package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/amonks/ordoflow/internal/listflags"
	"github.com/amonks/ordoflow/internal/markdown"
	"github.com/amonks/ordoflow/internal/ui"
	"github.com/amonks/ordoflow/task"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks in display order",
	Long: `List tasks in display order.

Shows active tasks by default. Use --completed for the completed tasks
or --all for both.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listCompleted bool
	listAll       bool
	listSort      string
	listJSON      bool
)

// search
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find tasks whose text or description contains the query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var searchJSON bool

// show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task with its description",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

const (
	sortOrder    = "order"
	sortPriority = "priority"
)

func init() {
	rootCmd.AddCommand(listCmd, searchCmd, showCmd)

	listCmd.Flags().BoolVar(&listCompleted, "completed", false, "List completed tasks")
	listflags.AddAllFlag(listCmd, &listAll)
	listCmd.Flags().StringVar(&listSort, "sort", sortOrder, "Sort by display order or priority (order, priority)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	if listSort != sortOrder && listSort != sortPriority {
		return fmt.Errorf("invalid --sort %q (want order or priority)", listSort)
	}
	if listAll && listCompleted {
		return fmt.Errorf("--all and --completed cannot be combined")
	}

	return withApp(cmd, func(a *app) error {
		snapshot := a.manager.Snapshot()
		tasks := snapshot.Active()
		empty := "No tasks found."
		switch {
		case listAll:
			tasks = snapshot.Tasks
		case listCompleted:
			tasks = snapshot.Completed()
			empty = "No completed tasks yet"
		}
		if listSort == sortPriority {
			tasks = task.SortByPriority(tasks)
		}

		return printTasks(cmd.OutOrStdout(), a, tasks, listJSON, empty)
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	return withApp(cmd, func(a *app) error {
		results := a.manager.Snapshot().Search(query)
		return printTasks(cmd.OutOrStdout(), a, results, searchJSON, "No tasks match your search.")
	})
}

func printTasks(out io.Writer, a *app, tasks []task.Task, asJSON bool, empty string) error {
	if asJSON {
		if tasks == nil {
			tasks = []task.Task{}
		}
		return encodeJSON(out, tasks)
	}
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(out, empty)
		return err
	}

	style := plainTableStyle
	if ui.ColorEnabled() {
		style = paletteTableStyle(a.palette())
	}
	_, err := fmt.Fprint(out, formatTaskTable(tasks, style))
	return err
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(a *app) error {
		found, err := findTask(a.manager, id)
		if err != nil {
			return err
		}
		if showJSON {
			return encodeJSON(cmd.OutOrStdout(), found)
		}
		position := partitionPosition(a.manager.Snapshot(), found.ID)
		_, err = fmt.Fprint(cmd.OutOrStdout(), formatTaskDetail(found, position, a.markdownStyle()))
		return err
	})
}

const taskDetailLineWidth = 80

// formatTaskDetail renders one task with its description as markdown.
// position is the 1-based place of the task within its partition.
func formatTaskDetail(t task.Task, position int, style markdown.Style) string {
	var builder strings.Builder
	text := wordwrap.String(t.Text, taskDetailLineWidth-10)
	text = strings.ReplaceAll(text, "\n", "\n          ")

	fmt.Fprintf(&builder, "ID:       %d\n", t.ID)
	fmt.Fprintf(&builder, "Text:     %s\n", text)
	fmt.Fprintf(&builder, "Priority: %s (%s)\n", t.Priority.Label(), t.Priority)
	fmt.Fprintf(&builder, "Status:   %s\n", taskStatus(t))
	fmt.Fprintf(&builder, "Created:  %s\n", valueOrDash(t.Date))
	fmt.Fprintf(&builder, "Position: %d\n", position)

	if strings.TrimSpace(t.Description) != "" {
		rendered := markdown.SafeRenderStyled(style, taskDetailLineWidth, 2, []byte(t.Description))
		fmt.Fprintf(&builder, "\nDescription:\n%s\n", strings.TrimRight(string(rendered), "\n"))
	}
	return builder.String()
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
