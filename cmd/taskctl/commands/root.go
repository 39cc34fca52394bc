package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"taskmanager/version"
)

// NewApp creates the root CLI application
func NewApp() *cli.Command {
	var owned *session

	return &cli.Command{
		Name:    "taskctl",
		Usage:   "Task Manager CLI - create, edit, complete and filter tasks",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "storage",
				Usage: "Storage driver (sqlite, file, memory, postgres, mysql)",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "Storage location for the selected driver",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output format (text, json)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level",
				Value: "warn",
			},
		},
		// A session already in ctx belongs to an enclosing shell and is
		// left open for it.
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if _, ok := ctx.Value(sessionKey{}).(*session); ok {
				return ctx, nil
			}
			owned = &session{}
			return context.WithValue(ctx, sessionKey{}, owned), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if owned == nil {
				return nil
			}
			return owned.close()
		},
		Commands: []*cli.Command{
			TaskCommand(),
			FilterCommand(),
			DraftCommand(),
			EditCommand(),
			ExportCommand(),
			ShellCommand(),
		},
	}
}
