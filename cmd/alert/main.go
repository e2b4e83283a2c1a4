package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BenLYNC/AI-Automation-Alert/internal/adapters/cli"
	"github.com/BenLYNC/AI-Automation-Alert/internal/bootstrap"
	"github.com/BenLYNC/AI-Automation-Alert/internal/config"
	"github.com/BenLYNC/AI-Automation-Alert/internal/observability/logging"
)

// Set by ldflags at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cli.Options{
		Version:    version,
		LoadConfig: config.Load,
		NewService: newService,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// newService logs to stderr so stdout stays clean for reports and MCP frames.
func newService(ctx context.Context, cfg config.Config) (cli.Service, func(), error) {
	logger := logging.NewTextLogger(cfg.LogLevel, os.Stderr)
	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		Service: "cli",
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return app.Scorer, app.Close, nil
}
