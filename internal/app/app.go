// Package app assembles the inventory, its storage and the surfaces that
// drive it from a Config.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/slabstock/internal/config"
	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/rpggio/slabstock/internal/mcp"
	"github.com/rpggio/slabstock/internal/metrics"
	"github.com/rpggio/slabstock/internal/platform"
	"github.com/rpggio/slabstock/internal/transport"
	"github.com/rpggio/slabstock/internal/ui"
)

// Deps overrides the host capabilities. Nil fields get the defaults for a
// server process: no clipboard, deliveries from the export config, log notices.
type Deps struct {
	Storage   slab.Storage
	Clipboard platform.Clipboard
	Delivery  platform.Delivery
	Notifier  platform.Notifier
}

// App is a fully wired inventory.
type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Inventory  *slab.Service
	Controller *ui.Controller
	Handler    *mcp.Handler
	Metrics    *metrics.Recorder
	Catalog    ui.Catalog

	closers []io.Closer
}

// New opens storage, loads the inventory and wires the collaborators.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, deps Deps) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &App{Config: cfg, Logger: logger}

	storage := deps.Storage
	if storage == nil {
		store, closer, err := OpenStorage(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
		}
		storage = store
		a.closers = append(a.closers, closer)
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New(nil)
	}

	opts := slab.Options{StrictImport: cfg.Import.Strict}
	if a.Metrics != nil {
		opts.Metrics = a.Metrics
	}
	a.Inventory = slab.NewService(storage, opts, logger)
	a.Inventory.Load(ctx)

	delivery := deps.Delivery
	if delivery == nil {
		d, err := NewDelivery(ctx, cfg.Export)
		if err != nil {
			a.Close()
			return nil, err
		}
		delivery = d
	}

	a.Catalog = ui.Catalog{Colors: cfg.Catalog.Colors, Widths: cfg.Catalog.Widths}.Normalize()
	a.Controller = ui.NewController(a.Inventory, ui.Deps{
		Clipboard: deps.Clipboard,
		Delivery:  delivery,
		Notifier:  deps.Notifier,
		Logger:    logger,
	})
	a.Handler = mcp.NewHandler(a.Inventory, a.Controller, a.Catalog)
	return a, nil
}

// NewDelivery picks the S3 bucket when one is configured and the export
// directory otherwise.
func NewDelivery(ctx context.Context, cfg config.ExportConfig) (platform.Delivery, error) {
	if cfg.S3.Bucket != "" {
		d, err := platform.NewS3Delivery(ctx, platform.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			Prefix:    cfg.S3.Prefix,
			PathStyle: cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("configure s3 export: %w", err)
		}
		return d, nil
	}
	return platform.NewFileDelivery(cfg.Dir), nil
}

// MCPServer builds an MCP server over the inventory.
func (a *App) MCPServer() *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Handler:       a.Handler,
		Token:         a.Config.Server.Token,
		TransportMode: a.Config.Transport.Mode,
		Logger:        a.Logger,
	})
}

// HTTPHandler mounts JSON-RPC, CSV export, metrics and streamable MCP.
func (a *App) HTTPHandler() http.Handler {
	opts := transport.Options{
		RPC:      a.Handler,
		Exporter: a.Inventory,
		MCP:      mcp.NewHTTPHandler(a.MCPServer(), mcp.DefaultSessionTimeout),
		Token:    a.Config.Server.Token,
		Logger:   a.Logger,
	}
	if a.Metrics != nil {
		opts.Metrics = a.Metrics.Handler()
	}
	return transport.NewServer(opts)
}

// Close releases storage.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
