package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"taskmanager/app"
	"taskmanager/app/services/taskstore"
	"taskmanager/cmd/taskctl/config"
	"taskmanager/cmd/taskctl/output"
	"taskmanager/internal/logging"
)

type sessionKey struct{}

// session holds one engine for the lifetime of a command or a shell.
type session struct {
	container *app.Container
	cfg       *config.Config
}

var errNoSession = errors.New("no task session")

func (s *session) open(ctx context.Context, root *cli.Command) (*taskstore.Store, error) {
	if s.container != nil {
		return s.container.TaskStore, nil
	}

	cfg, err := s.config()
	if err != nil {
		return nil, err
	}

	driver := cfg.GetStorage()
	if root.IsSet("storage") {
		driver = root.String("storage")
	}
	url := cfg.GetStorageURL()
	if root.IsSet("url") {
		url = root.String("url")
	} else if root.IsSet("storage") {
		url = cfg.DefaultStorageURL(driver)
	}

	// sqlite does not create missing parent directories
	if driver == "sqlite" && url == cfg.DefaultStorageURL(driver) {
		if err := os.MkdirAll(cfg.StateDir(), 0700); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	logger := log.New()
	logging.Configure(logger, root.String("log-level"), "text", os.Stderr)

	container, err := app.NewContainer(ctx,
		app.NewConfig().WithDriver(driver).WithURL(url),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", driver, err)
	}
	s.container = container
	return container.TaskStore, nil
}

func (s *session) config() (*config.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	s.cfg = cfg
	return cfg, nil
}

func (s *session) close() error {
	if s.container == nil {
		return nil
	}
	err := s.container.Close()
	s.container = nil
	return err
}

// openStore returns the engine of the session carried by ctx, opening it on first use.
func openStore(ctx context.Context, c *cli.Command) (*taskstore.Store, error) {
	s, ok := ctx.Value(sessionKey{}).(*session)
	if !ok {
		return nil, errNoSession
	}
	return s.open(ctx, c.Root())
}

// render writes data with the formatter chosen by --output or the config file.
func render(ctx context.Context, c *cli.Command, data any) error {
	name := c.Root().String("output")
	if name == "" {
		if s, ok := ctx.Value(sessionKey{}).(*session); ok {
			if cfg, err := s.config(); err == nil {
				name = cfg.GetOutput()
			}
		}
	}

	out, err := output.New(name).Format(data)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Fprintln(c.Root().Writer, out)
	return nil
}
