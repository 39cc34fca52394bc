package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/oklog/ulid/v2"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"taskmanager/app"
	"taskmanager/app/jobs/resyncjob"
	"taskmanager/config"
	"taskmanager/config/appconf"
	"taskmanager/internal/logging"
	"taskmanager/internal/validator"
	"taskmanager/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "taskmanager",
		Usage:   "Serve the task list over HTTP",
		Version: version.Version,
		Commands: []*cli.Command{
			serveCommand(),
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(ctx context.Context, c *cli.Command) error {
					fmt.Fprintln(c.Root().Writer, version.Version)
					return nil
				},
			},
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: appconf.Port(),
			},
			&cli.StringFlag{
				Name:  "storage",
				Usage: "Storage driver (sqlite, file, memory, postgres, mysql)",
				Value: appconf.StorageDriver(),
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "Storage location for the selected driver",
				Value: appconf.StorageURL(),
			},
		},
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, c *cli.Command) error {
	logging.Configure(log.StandardLogger(), appconf.LogLevel(), appconf.LogFormat(), nil)

	cfg := app.NewConfig().
		WithDriver(c.String("storage")).
		WithURL(c.String("url"))

	container, err := app.NewContainer(ctx, cfg, log.StandardLogger())
	if err != nil {
		return err
	}
	defer container.Close()

	e := newServer(container)

	resync := resyncjob.New()
	resync.Register(ctx, container.TaskStore)
	defer resync.Shutdown()

	go func() {
		addr := fmt.Sprintf(":%s", c.String("port"))
		log.WithFields(log.Fields{
			"addr":    addr,
			"storage": cfg.Driver,
		}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	<-stop
	log.Info("shut down signal received...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info("shut down gracefully")
	return nil
}

func newServer(container *app.Container) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(gommonlog.INFO)
	e.Validator = validator.New()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return "req_" + ulid.Make().String()
		},
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	config.AddRoutes(e, container.TaskStore)
	return e
}
