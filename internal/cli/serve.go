package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/slabstock/internal/app"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(e *env) *cobra.Command {
	var transportMode string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory over MCP and HTTP",
		Long: `Serve the inventory to MCP clients.

With --transport stdio (the default) MCP is spoken on stdin/stdout and logs
go to stderr. With --transport http the server listens on server.host and
server.port and mounts:

  POST /rpc          JSON-RPC 2.0 with the MCP tool names as methods
  GET  /export.csv   the CSV export
  GET  /health       liveness
  GET  /metrics      prometheus metrics
  /mcp               streamable MCP`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("transport") {
				cfg.Transport.Mode = transportMode
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("config: %w", err)
				}
			}

			a, err := e.open(cmd.Context(), cfg, app.Deps{})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Transport.Mode == "http" {
				return runHTTP(ctx, a)
			}
			return runStdio(ctx, a)
		},
	}

	cmd.Flags().StringVar(&transportMode, "transport", "", "Transport (stdio|http), default from config")
	return cmd
}

// runStdio blocks until stdin closes or ctx is canceled.
func runStdio(ctx context.Context, a *app.App) error {
	a.Logger.Info("starting stdio transport", "auth", "disabled")
	if err := a.MCPServer().Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	a.Logger.Info("shutting down")
	return nil
}

func runHTTP(ctx context.Context, a *app.App) error {
	addr := a.Config.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           a.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", "addr", addr, "auth", a.Config.Server.Token != "")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	return waitForShutdown(a.Logger, server)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
