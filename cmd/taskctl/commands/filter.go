package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"taskmanager/domain/task"
)

// FilterCommand returns the filter command. A new process always starts with
// the filter at "all", so a set filter only lasts for the rest of a shell session.
func FilterCommand() *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "Show or change the task filter",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Print the current filter",
				Action: func(ctx context.Context, c *cli.Command) error {
					store, err := openStore(ctx, c)
					if err != nil {
						return err
					}
					return render(ctx, c, store.Filter())
				},
			},
			{
				Name:      "set",
				Usage:     "Change the filter",
				ArgsUsage: "<all|completed|incomplete>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("filter value is required")
					}

					store, err := openStore(ctx, c)
					if err != nil {
						return err
					}

					if err := store.SetFilter(ctx, task.Filter(c.Args().Get(0))); err != nil {
						return err
					}
					return render(ctx, c, store.Filter())
				},
			},
		},
	}
}
