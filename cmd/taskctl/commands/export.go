package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"taskmanager/internal/export"
)

func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the visible tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format (json, csv, pdf)",
				Value: "json",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write to file instead of stdout",
			},
		},
		Action: exportAction,
	}
}

func exportAction(ctx context.Context, c *cli.Command) error {
	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}

	data, err := export.Export(store.VisibleTasks(), c.String("format"))
	if err != nil {
		return err
	}

	if path := c.String("out"); path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		return nil
	}

	_, err = c.Root().Writer.Write(data)
	return err
}
