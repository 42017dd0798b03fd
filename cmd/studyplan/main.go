package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/cli"
	"github.com/alexanderramin/studyplan/internal/config"
	"github.com/alexanderramin/studyplan/internal/logging"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	a := &cli.App{
		Load:          load,
		IsInteractive: isInteractive,
	}
	if err := cli.Execute(context.Background(), a, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func load(ctx context.Context, configPath string) (*app.Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	c, err := app.Build(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	logger.Debug("services ready",
		zap.String("db", cfg.DB.Path),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.Bool("calendar", c.Sync != nil),
	)
	return c, nil
}

func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
