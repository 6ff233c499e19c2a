package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobmatch/internal/mcp"
	"github.com/honeycarbs/jobmatch/internal/server"
	"github.com/honeycarbs/jobmatch/pkg/shutdown"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve POST /search_jobs and the MCP endpoint over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	res, err := server.InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		return err
	}

	mcpServer := mcp.NewServer(mcp.Resources{
		Searcher: res.Aggregator,
		Exporter: res.Exporter,
	}, version, logger)

	router := server.NewRouter(server.RouterDeps{
		Searcher:       res.Aggregator,
		MCPHandler:     mcp.NewHandler(mcpServer),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
	})

	srv := server.NewServer(logger, cfg.Host, cfg.Port, router)

	go shutdown.Graceful(
		ctx,
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		srv,
		shutdownTimeout,
		logger,
	)

	logger.Info("jobmatch server initialized and starting",
		"addr", srv.Addr(),
		"providers", res.Aggregator.Providers(),
		"version", version,
	)

	if err := srv.Run(); err != nil {
		logger.Error("HTTP server exited with error", "err", err)
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
