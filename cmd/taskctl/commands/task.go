package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"taskmanager/domain/task"
)

// TaskCommand returns the task command with subcommands
func TaskCommand() *cli.Command {
	return &cli.Command{
		Name:  "task",
		Usage: "Manage tasks",
		Commands: []*cli.Command{
			addTaskCommand(),
			listTaskCommand(),
			editTaskCommand(),
			toggleTaskCommand(),
			removeTaskCommand(),
		},
	}
}

func titleFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "title",
		Aliases: []string{"t"},
		Usage:   "Task title",
	}
}

func taskFieldFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "description",
			Aliases: []string{"d"},
			Usage:   "Task description",
		},
		&cli.StringFlag{
			Name:    "priority",
			Aliases: []string{"p"},
			Usage:   "Task priority (low, medium, high)",
		},
		&cli.StringFlag{
			Name:  "due",
			Usage: "Due date (YYYY-MM-DD)",
		},
	}
}

// addTaskCommand returns the add subcommand
func addTaskCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Create a new task",
		ArgsUsage: "<title>",
		Flags:     taskFieldFlags(),
		Action:    addTaskAction,
	}
}

func addTaskAction(ctx context.Context, c *cli.Command) error {
	if err := validateFieldFlags(c); err != nil {
		return err
	}

	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}

	draft := task.Draft{
		Title:       strings.Join(c.Args().Slice(), " "),
		Description: c.String("description"),
		Priority:    task.Priority(c.String("priority")),
		DueDate:     c.String("due"),
	}

	created, err := store.CreateTask(ctx, draft)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return render(ctx, c, task.IndexedTask{Index: store.Len() - 1, Task: created})
}

// listTaskCommand returns the list subcommand
func listTaskCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List tasks matching the current filter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Set the filter first (all, completed, incomplete)",
			},
		},
		Action: listTaskAction,
	}
}

func listTaskAction(ctx context.Context, c *cli.Command) error {
	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}

	if c.IsSet("filter") {
		if err := store.SetFilter(ctx, task.Filter(c.String("filter"))); err != nil {
			return err
		}
	}

	return render(ctx, c, store.VisibleTasks())
}

// editTaskCommand returns the edit subcommand
func editTaskCommand() *cli.Command {
	flags := append([]cli.Flag{titleFlag()}, taskFieldFlags()...)

	return &cli.Command{
		Name:      "edit",
		Usage:     "Change fields of a task, leaving the others as they are",
		ArgsUsage: "<index>",
		Flags:     flags,
		Action:    editTaskAction,
	}
}

func editTaskAction(ctx context.Context, c *cli.Command) error {
	index, err := indexArg(c)
	if err != nil {
		return err
	}
	if err := validateFieldFlags(c); err != nil {
		return err
	}

	patch := patchFromFlags(c)
	if patch.Empty() {
		return fmt.Errorf("nothing to change: set --title, --description, --priority or --due")
	}

	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}

	updated, err := store.UpdateTask(ctx, index, patch)
	if err != nil {
		return err
	}

	return render(ctx, c, task.IndexedTask{Index: index, Task: updated})
}

func toggleTaskCommand() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Usage:     "Mark a task complete or incomplete",
		ArgsUsage: "<index>",
		Action: func(ctx context.Context, c *cli.Command) error {
			index, err := indexArg(c)
			if err != nil {
				return err
			}

			store, err := openStore(ctx, c)
			if err != nil {
				return err
			}

			toggled, err := store.ToggleComplete(ctx, index)
			if err != nil {
				return err
			}
			return render(ctx, c, task.IndexedTask{Index: index, Task: toggled})
		},
	}
}

func removeTaskCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task; later tasks move up by one index",
		ArgsUsage: "<index>",
		Action: func(ctx context.Context, c *cli.Command) error {
			index, err := indexArg(c)
			if err != nil {
				return err
			}

			store, err := openStore(ctx, c)
			if err != nil {
				return err
			}

			return store.DeleteTask(ctx, index)
		},
	}
}

// indexArg reads the task index, which refers to the unfiltered list.
func indexArg(c *cli.Command) (int, error) {
	if c.Args().Len() != 1 {
		return 0, fmt.Errorf("task index is required")
	}

	index, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return 0, fmt.Errorf("invalid task index %q", c.Args().Get(0))
	}
	return index, nil
}

// validateFieldFlags mirrors the form widgets: a fixed priority menu and a date picker.
func validateFieldFlags(c *cli.Command) error {
	if c.IsSet("priority") {
		switch task.Priority(c.String("priority")) {
		case task.PriorityLow, task.PriorityMedium, task.PriorityHigh:
		default:
			return fmt.Errorf("priority must be low, medium or high")
		}
	}

	if due := c.String("due"); due != "" {
		if _, ok := (task.Task{DueDate: due}).Due(); !ok {
			return fmt.Errorf("due date must be YYYY-MM-DD")
		}
	}

	return nil
}

func patchFromFlags(c *cli.Command) task.Patch {
	var p task.Patch
	if c.IsSet("title") {
		v := c.String("title")
		p.Title = &v
	}
	if c.IsSet("description") {
		v := c.String("description")
		p.Description = &v
	}
	if c.IsSet("priority") {
		v := task.Priority(c.String("priority"))
		p.Priority = &v
	}
	if c.IsSet("due") {
		v := c.String("due")
		p.DueDate = &v
	}
	return p
}
