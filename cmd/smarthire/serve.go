package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/smarthire/internal/config"
	"github.com/jonathan/smarthire/internal/observability"
	"github.com/jonathan/smarthire/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for job postings, resume uploads and screening sessions.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (defaults to PORT env var when set)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	port, err := resolveServePort(cmd.Flags().Changed("port"))
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	srv, err := server.New(context.Background(), cfg, port, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// resolveServePort picks the port to listen on: --port when given
// explicitly, otherwise the PORT env var, otherwise the flag default.
// Resolved at run time rather than as the flag default so values loaded
// from .env are seen.
func resolveServePort(flagChanged bool) (int, error) {
	if flagChanged {
		return servePort, nil
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return 0, fmt.Errorf("invalid PORT: %v", err)
		}
		return port, nil
	}
	return servePort, nil
}
