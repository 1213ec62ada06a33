// Package main runs the in-memory task API used for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"taskdeck/internal/devserver"
	"taskdeck/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("taskdeck-devserver", pflag.ContinueOnError)
	addr := flagSet.String("addr", "localhost:8000", "listen address")
	seed := flagSet.Bool("seed", false, "start with a few example tasks")
	debug := flagSet.Bool("debug", false, "log every request")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	gin.SetMode(gin.ReleaseMode)
	server := devserver.New(logger)
	if *seed {
		server.Seed([]service.Task{
			{ID: "1", Name: "Water the plants", DueDate: "2024-05-01"},
			{ID: "2", Name: "Write the release notes", Description: "Cover the new pagination"},
			{ID: "3", Name: "Book dentist appointment", Completed: true},
		})
	}

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", *addr, "base", devserver.BasePath)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	return httpServer.Shutdown(shutdownCtx)
}
