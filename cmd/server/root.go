package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"restaurantlisting/internal/api"
	"restaurantlisting/internal/config"
	"restaurantlisting/internal/logger"
	"restaurantlisting/internal/restaurant"
	"restaurantlisting/internal/seed"
	"restaurantlisting/internal/storage"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "restaurant-server",
		Short:        "Restaurant listing HTTP service",
		SilenceUsage: true,
		RunE:         runServe,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the restaurants table for the configured SQL store and exit",
			RunE:  runMigrate,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

// setup: конфиг (файл -> ENV -> флаги) и логгер.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	if err := config.ApplyFlags(&cfg, cmd.Flags()); err != nil {
		return cfg, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func storeOptions(cfg config.Config) storage.Options {
	return storage.Options{
		Driver:        cfg.StoreDriver,
		DBURL:         cfg.DBURL,
		SQLitePath:    cfg.SQLitePath,
		EtcdEndpoints: cfg.EtcdEndpoints,
		AutoMigrate:   cfg.AutoMigrate,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := storage.Open(ctx, storeOptions(cfg), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("store.close", "err", err)
		}
	}()
	log.Info("store.opened", "driver", cfg.StoreDriver)

	svc := restaurant.NewService(store, log)

	if cfg.SeedDir != "" {
		items, err := seed.LoadDir(cfg.SeedDir)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		if _, err := seed.Apply(ctx, svc, items, log); err != nil {
			return err
		}
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(svc, api.Options{CORSOrigins: cfg.CORSOrigins, Log: log})
	return api.RunServer(ctx, ":"+cfg.Port, router, log)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := storage.Migrate(context.Background(), storeOptions(cfg), log); err != nil {
		return err
	}
	log.Info("migrate.done", "driver", cfg.StoreDriver)
	return nil
}
