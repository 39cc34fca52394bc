package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"taskmanager/cmd/taskctl/output"
	"taskmanager/domain/task"
)

// DraftCommand works on the pending new-task form. The draft is never
// persisted, so it is only useful inside a shell session.
func DraftCommand() *cli.Command {
	return &cli.Command{
		Name:  "draft",
		Usage: "Compose a new task step by step",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the current draft",
				Action: func(ctx context.Context, c *cli.Command) error {
					store, err := openStore(ctx, c)
					if err != nil {
						return err
					}
					return render(ctx, c, store.Draft())
				},
			},
			{
				Name:   "set",
				Usage:  "Change fields of the draft, keeping the others",
				Flags:  append([]cli.Flag{titleFlag()}, taskFieldFlags()...),
				Action: setDraftAction,
			},
			{
				Name:  "submit",
				Usage: "Create a task from the draft and clear it",
				Action: func(ctx context.Context, c *cli.Command) error {
					store, err := openStore(ctx, c)
					if err != nil {
						return err
					}

					created, err := store.SubmitDraft(ctx)
					if err != nil {
						return fmt.Errorf("failed to create task: %w", err)
					}
					return render(ctx, c, task.IndexedTask{Index: store.Len() - 1, Task: created})
				},
			},
		},
	}
}

func setDraftAction(ctx context.Context, c *cli.Command) error {
	if err := validateFieldFlags(c); err != nil {
		return err
	}

	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}

	draft := store.Draft()
	if c.IsSet("title") {
		draft.Title = c.String("title")
	}
	if c.IsSet("description") {
		draft.Description = c.String("description")
	}
	if c.IsSet("priority") {
		draft.Priority = task.Priority(c.String("priority"))
	}
	if c.IsSet("due") {
		draft.DueDate = c.String("due")
	}
	store.SetDraft(draft)

	return render(ctx, c, store.Draft())
}

// EditCommand opens one task for editing and saves or discards the change.
func EditCommand() *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Edit a task through the form",
		Commands: []*cli.Command{
			{
				Name:      "begin",
				Usage:     "Open a task for editing",
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
					if err := store.BeginEdit(index); err != nil {
						return err
					}
					return renderEditState(ctx, c)
				},
			},
			{
				Name:   "show",
				Usage:  "Print which task is open for editing",
				Action: renderEditState,
			},
			{
				Name:   "save",
				Usage:  "Apply changes to the open task and close the edit",
				Flags:  append([]cli.Flag{titleFlag()}, taskFieldFlags()...),
				Action: saveEditAction,
			},
			{
				Name:  "cancel",
				Usage: "Close the edit without changes",
				Action: func(ctx context.Context, c *cli.Command) error {
					store, err := openStore(ctx, c)
					if err != nil {
						return err
					}
					store.CancelEdit()
					return renderEditState(ctx, c)
				},
			},
		},
	}
}

func saveEditAction(ctx context.Context, c *cli.Command) error {
	if err := validateFieldFlags(c); err != nil {
		return err
	}

	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}

	index, _ := store.EditingIndex()
	updated, err := store.SaveEdit(ctx, patchFromFlags(c))
	if err != nil {
		return err
	}
	return render(ctx, c, task.IndexedTask{Index: index, Task: updated})
}

func renderEditState(ctx context.Context, c *cli.Command) error {
	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}

	index, editing := store.EditingIndex()
	return render(ctx, c, output.EditState{Editing: editing, Index: index})
}
