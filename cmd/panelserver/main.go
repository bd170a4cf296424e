package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	dashboard "github.com/goliatone/go-admin-panel/components/dashboard"
	"github.com/goliatone/go-admin-panel/components/dashboard/commands"
	"github.com/goliatone/go-admin-panel/components/dashboard/gorouter"
	"github.com/goliatone/go-admin-panel/pkg/config"
)

type cli struct {
	Addr     string `help:"Listen address (overrides PANEL_ADDR)."`
	BasePath string `name:"base-path" help:"Mount point for the dashboard routes (overrides PANEL_BASE_PATH)."`
	Content  string `type:"path" help:"Content document to serve (overrides PANEL_CONTENT_PATH)."`
	Debug    bool   `help:"Force a development build with diagnostics."`
}

func main() {
	var flags cli
	kctx := kong.Parse(&flags,
		kong.Description("Admin panel dashboard server."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(run(context.Background(), flags))
}

func run(ctx context.Context, flags cli) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg = flags.apply(cfg)

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	telemetry := dashboard.NewZapTelemetry(logger.Named("dashboard"))
	store := dashboard.NewContentStore(dashboard.DefaultContent(), dashboard.NewJSONSchemaValidator(nil))
	reload := commands.NewReloadContentCommand(store, nil, telemetry)
	if cfg.ContentPath != "" {
		if err := reload.Execute(ctx, commands.ReloadContentInput{Path: cfg.ContentPath}); err != nil {
			return err
		}
	}

	feed := dashboard.NewMemoryActivityFeed(0)
	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("panelserver: template renderer: %w", err)
	}
	controller := dashboard.NewController(dashboard.ControllerOptions{
		Content:    store,
		Activity:   feed,
		Renderer:   renderer,
		DebugBuild: cfg.DebugBuild(),
		Telemetry:  telemetry,
	})

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:       server.Router(),
		Controller:   controller,
		Reload:       reload,
		Record:       commands.NewRecordActivityCommand(feed, telemetry),
		ContentPath:  cfg.ContentPath,
		BasePath:     cfg.BasePath,
		AdminModule:  cfg.AdminModule,
		TrustHeaders: cfg.TrustProxyHeaders,
		Log:          logger.Named("routes"),
	}); err != nil {
		return fmt.Errorf("panelserver: register routes: %w", err)
	}

	go reloadOnHangup(ctx, logger, reload, cfg.ContentPath)

	logger.Info("dashboard routes ready",
		zap.String("addr", cfg.Addr),
		zap.String("base_path", cfg.BasePath),
		zap.Bool("debug_build", cfg.DebugBuild()),
		zap.Bool("trust_proxy_headers", cfg.TrustProxyHeaders),
	)
	return server.Serve(cfg.Addr)
}

func (c cli) apply(cfg config.Config) config.Config {
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.BasePath != "" {
		cfg.BasePath = c.BasePath
	}
	if c.Content != "" {
		cfg.ContentPath = c.Content
	}
	if c.Debug {
		cfg.Environment = config.EnvDevelopment
	}
	return cfg
}

// reloadOnHangup re-reads the content document whenever the process receives SIGHUP.
// A failed reload keeps the previous document live.
func reloadOnHangup(ctx context.Context, logger *zap.Logger, reload *commands.ReloadContentCommand, path string) {
	if path == "" {
		return
	}
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP)
	defer signal.Stop(signals)
	for {
		select {
		case <-ctx.Done():
			return
		case <-signals:
			if err := reload.Execute(ctx, commands.ReloadContentInput{Path: path}); err != nil {
				logger.Warn("reload dashboard content", zap.String("path", path), zap.Error(err))
				continue
			}
			logger.Info("dashboard content reloaded", zap.String("path", path))
		}
	}
}
