package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amonks/ordoflow/internal/editor"
	"github.com/amonks/ordoflow/task"
	"github.com/spf13/cobra"
)

// add
var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a task to the end of the list",
	Long: `Add a task to the end of the list.

When no text is given and stdin is a terminal, opens $EDITOR with a TOML
form for the task. Use --no-edit to skip the editor, or --edit to force
it even when text is given.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAdd,
}

var (
	addDescription string
	addPriority    string
	addEdit        bool
	addNoEdit      bool
)

// edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the text, description or priority of a task",
	Long: `Change the text, description or priority of a task.

Without update flags, opens $EDITOR when stdin is a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editText        string
	editDescription string
	editPriority    string
	editEdit        bool
	editNoEdit      bool
)

// done
var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark one or more tasks as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetCompleted(cmd, args, true)
	},
}

// undo
var undoCmd = &cobra.Command{
	Use:   "undo <id>...",
	Short: "Mark one or more completed tasks as active again",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetCompleted(cmd, args, false)
	},
}

// delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Permanently delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

// clear
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Permanently delete all completed tasks",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var clearYes bool

func init() {
	rootCmd.AddCommand(addCmd, editCmd, doneCmd, undoCmd, deleteCmd, clearCmd)
	addTaskFlagAliases(addCmd, editCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(task.DefaultPriority), "Priority (p1, p2, p3, p4)")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no text)")
	addCmd.Flags().BoolVar(&addNoEdit, "no-edit", false, "Do not open $EDITOR")

	editCmd.Flags().StringVar(&editText, "text", "", "New text")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority (p1, p2, p3, p4)")
	editCmd.Flags().BoolVarP(&editEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no flags)")
	editCmd.Flags().BoolVar(&editNoEdit, "no-edit", false, "Do not open $EDITOR")

	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Do not ask for confirmation")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("description") {
		desc, err := readDescription(addDescription, os.Stdin)
		if err != nil {
			return err
		}
		addDescription = desc
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	priority, err := task.ParsePriority(addPriority)
	if err != nil {
		return err
	}
	description := addDescription

	if shouldUseEditor(text != "", addEdit, addNoEdit, editor.IsInteractive()) {
		data := editor.DefaultCreateData()
		data.Text = text
		data.Priority = priority
		data.Description = description

		parsed, err := editor.EditTaskWithData(data)
		if err != nil {
			return err
		}
		text, description, priority = parsed.Text, parsed.Description, parsed.Priority
	}

	if text == "" {
		return fmt.Errorf("task text is required (use --edit to open editor)")
	}
	if err := task.ValidateText(text); err != nil {
		return err
	}

	return withApp(cmd, func(a *app) error {
		created, err := a.manager.AddTask(cmd.Context(), text, description, priority)
		if err != nil {
			return err
		}
		if created == nil {
			return task.ErrEmptyText
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created task %d: %s\n", created.ID, created.Text)
		return nil
	})
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("description") {
		desc, err := readDescription(editDescription, os.Stdin)
		if err != nil {
			return err
		}
		editDescription = desc
	}

	return withApp(cmd, func(a *app) error {
		existing, err := findTask(a.manager, id)
		if err != nil {
			return err
		}

		updated, err := applyEditFlags(cmd, existing)
		if err != nil {
			return err
		}

		hasFields := hasChangedFlags(cmd, "text", "description", "priority")
		if shouldUseEditor(hasFields, editEdit, editNoEdit, editor.IsInteractive()) {
			data := editor.DataFromTask(updated)
			parsed, err := editor.EditTaskWithData(data)
			if err != nil {
				return err
			}
			updated = parsed.Apply(updated)
		} else if !hasFields {
			return fmt.Errorf("nothing to update (use --text, --description, --priority or --edit)")
		}

		if err := task.ValidateTask(&updated); err != nil {
			return err
		}
		if err := a.manager.UpdateTask(cmd.Context(), updated); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d: %s\n", updated.ID, updated.Text)
		return nil
	})
}

// applyEditFlags copies the changed edit flags onto t.
func applyEditFlags(cmd *cobra.Command, t task.Task) (task.Task, error) {
	if cmd.Flags().Changed("text") {
		t.Text = strings.TrimSpace(editText)
	}
	if cmd.Flags().Changed("description") {
		t.Description = editDescription
	}
	if cmd.Flags().Changed("priority") {
		priority, err := task.ParsePriority(editPriority)
		if err != nil {
			return t, err
		}
		t.Priority = priority
	}
	return t, nil
}

func runSetCompleted(cmd *cobra.Command, args []string, completed bool) error {
	verb := "Completed"
	if !completed {
		verb = "Reopened"
	}

	return withApp(cmd, func(a *app) error {
		tasks, err := resolveTasks(a.manager, args)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if err := a.manager.ToggleCompleted(cmd.Context(), t.ID, completed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d: %s\n", verb, t.ID, t.Text)
		}
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		tasks, err := resolveTasks(a.manager, args)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if err := a.manager.DeleteTask(cmd.Context(), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d: %s\n", t.ID, t.Text)
		}
		return nil
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		out := cmd.OutOrStdout()
		count := len(a.manager.Snapshot().Completed())
		if count == 0 {
			fmt.Fprintln(out, "No completed tasks yet")
			return nil
		}

		if !clearYes {
			if !editor.IsInteractive() {
				return fmt.Errorf("refusing to delete %d completed %s without --yes", count, plural(count, "task", "tasks"))
			}
			prompt := fmt.Sprintf("Delete all %d completed %s?", count, plural(count, "task", "tasks"))
			ok, err := confirm(cmd.Context(), out, os.Stdin, prompt)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Canceled")
				return nil
			}
		}

		if err := a.manager.DeleteAllCompleted(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d completed %s\n", count, plural(count, "task", "tasks"))
		return nil
	})
}

// confirm asks a yes/no question; only "y" or "yes" confirms.
func confirm(ctx context.Context, out io.Writer, in io.Reader, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", prompt)

	answers := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			errs <- err
			return
		}
		answers <- line
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errs:
		return false, fmt.Errorf("read confirmation: %w", err)
	case line := <-answers:
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	}
}
