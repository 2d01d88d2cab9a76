package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/starmap/internal/config"
	"github.com/iudanet/starmap/internal/server"
	"github.com/iudanet/starmap/internal/server/audit"
	"github.com/iudanet/starmap/internal/server/service"
	"github.com/iudanet/starmap/internal/server/session"
	"github.com/iudanet/starmap/internal/server/storage/boltdb"
	"github.com/iudanet/starmap/internal/server/storage/sqlite"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the map server",
		Long:  "Start the HTTP server with the map API and pages. The database is created and seeded on first start.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.runServe(ctx, cfg)
		},
	}

	cmd.Flags().String("host", "", "HTTP listen host")
	cmd.Flags().IntP("port", "p", 0, "HTTP listen port")
	cmd.Flags().String("public-dir", "", "directory with the HTML pages and the map image")
	cmd.Flags().String("revoked-db", "", "path to the session revocation database")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().String("log-format", "", "log format: text or json")
	storeFlags(cmd.Flags())

	return cmd
}

func (a *app) runServe(ctx context.Context, cfg *config.Config) error {
	// Ошибка конфигурации секрета фатальна при старте
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	store, err := sqlite.New(ctx, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()
	logger.Info("storage opened", slog.String("path", cfg.Storage.Path))

	revoked, err := boltdb.New(ctx, cfg.Storage.RevocationPath)
	if err != nil {
		return fmt.Errorf("failed to open revocation store: %w", err)
	}
	defer func() {
		if err := revoked.Close(); err != nil {
			logger.Error("failed to close revocation store", slog.Any("error", err))
		}
	}()

	seed := service.AdminSeed{Username: cfg.Admin.Username, Password: cfg.Admin.Password}
	if err := service.Bootstrap(ctx, logger, store, seed); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	trail := audit.NewTrail(logger, store)
	codec := session.NewCodec([]byte(cfg.Auth.JWTSecret), cfg.Auth.SessionTTL, revoked)

	srv := server.New(server.Config{
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		PublicDir:          cfg.Server.PublicDir,
		CORSOrigins:        cfg.Server.CORSOrigins,
		ShutdownTimeout:    cfg.Server.ShutdownTimeout,
		LoginRatePerMinute: cfg.Auth.LoginRatePerMinute,
		Version:            a.info.Version,
	}, server.Services{
		DB:      store,
		Codec:   codec,
		Auth:    service.NewAuth(logger, store, codec, trail),
		Users:   service.NewUsers(logger, store, trail),
		Graph:   service.NewGraph(logger, store, trail),
		Catalog: service.NewCatalog(logger, store, trail),
		Admin:   service.NewAdmin(logger, store, trail),
	}, logger)

	logger.Info("starmap starting",
		slog.String("version", a.info.Version),
		slog.String("public_dir", cfg.Server.PublicDir),
		slog.Bool("cors", len(cfg.Server.CORSOrigins) > 0))

	return srv.ListenAndServe(ctx)
}
