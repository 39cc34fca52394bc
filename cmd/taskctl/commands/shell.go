package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/urfave/cli/v3"
)

const shellPrompt = "taskctl> "

// ShellCommand keeps one engine open and runs each input line as a taskctl
// command against it, so the filter and the draft and edit commands keep
// their state for the session.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Run commands interactively against one session",
		Action: shellAction,
	}
}

func shellAction(ctx context.Context, c *cli.Command) error {
	if _, err := openStore(ctx, c); err != nil {
		return err
	}

	root := c.Root()
	scanner := bufio.NewScanner(root.Reader)

	for {
		fmt.Fprint(root.Writer, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(root.Writer)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		args, err := shellwords.Parse(line)
		if err != nil {
			fmt.Fprintf(root.ErrWriter, "invalid command syntax: %v\n", err)
			continue
		}
		if len(args) > 0 && args[0] == "shell" {
			fmt.Fprintln(root.ErrWriter, "already in a shell")
			continue
		}

		sub := NewApp()
		sub.Writer = root.Writer
		sub.ErrWriter = root.ErrWriter
		sub.Flags = withParentValues(sub.Flags, root)
		sub.ExitErrHandler = func(context.Context, *cli.Command, error) {}

		if err := sub.Run(ctx, append([]string{root.Name}, args...)); err != nil {
			fmt.Fprintf(root.ErrWriter, "error: %v\n", err)
		}
	}
}

// withParentValues carries the shell's --output choice into each line.
func withParentValues(flags []cli.Flag, root *cli.Command) []cli.Flag {
	for _, f := range flags {
		if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "output" {
			sf.Value = root.String("output")
		}
	}
	return flags
}
