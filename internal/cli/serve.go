package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/provision-dev/provision/internal/api"
	"github.com/provision-dev/provision/internal/config"
	"github.com/provision-dev/provision/internal/logging"
	"github.com/provision-dev/provision/internal/status"
)

var serveAddress string

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Starts the HTTP API for submitting infrastructure requests and polling
run status. The server runs until interrupted.`,
	RunE: runServe,
}

func init() {
	ServeCmd.Flags().StringVar(&serveAddress, "address", "", "Listen address (overrides SERVER_ADDRESS)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if serveAddress != "" {
		cfg.ServerAddress = serveAddress
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger := logging.NewLogger("server")
	defer func() { _ = logger.Sync() }()

	p := buildPipeline(cfg, logger)
	registry := status.NewRegistry()
	server := api.NewServer(cfg, p, registry, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
