package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/services"
)

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "taskboard",
		Short: "A user-scoped task management API server",
		Long: `Taskboard serves a JSON API for creating, updating, and listing tasks
scoped to a user. Tasks carry a name, description, priority, tags, and
a completion flag; listings are filtered by completion state with
deterministic ordering.

Configuration is read from TASKBOARD_* environment variables.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	return root
}

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the taskboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides TASKBOARD_SERVER_ADDR)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := NewRepositoryFactory(cfg)
	repo, err := factory.CreateRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	server := api.New(
		services.NewTaskService(repo),
		services.NewQueryService(repo),
	)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("taskboard listening on %s (driver=%s)", cfg.Server.Addr, cfg.Database.Driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
