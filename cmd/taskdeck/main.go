// Package main is the entry point for the taskdeck CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"taskdeck/internal/backend/googletasks"
	"taskdeck/internal/backend/rest"
	"taskdeck/internal/cli"
	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newBackend)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// newBackend picks the task API named by the backend setting.
func newBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Backend, error) {
	switch cfg.Settings.Backend {
	case config.BackendREST:
		client, err := rest.New(rest.Config{
			BaseURL: cfg.Settings.API.BaseURL,
			Token:   cfg.Settings.API.Token,
			Timeout: cfg.Settings.API.Timeout,
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.BackendGoogleTasks:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("%s not found in %s", config.OAuthClientFile, cfg.Dir)
		}
		if !cfg.HasToken() {
			return nil, fmt.Errorf("not authorized (run: taskdeck authorize)")
		}
		client, err := googletasks.New(ctx, cfg, cfg.Settings.Google.ListID, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Settings.Backend)
	}
}
