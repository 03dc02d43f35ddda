package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mohammadpnp/collaborators-api/internal/bootstrap"
	"github.com/mohammadpnp/collaborators-api/internal/config"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/db"
	"github.com/mohammadpnp/collaborators-api/internal/logging"
)

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:          "api",
		Short:        "Collaborators API server and maintenance tools",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the process environment")

	cmd.AddCommand(
		newServeCmd(&envFile),
		newImportCmd(&envFile),
		newSeedCmd(&envFile),
	)
	return cmd
}

type deps struct {
	cfg       *config.Config
	logger    *logrus.Logger
	resources *bootstrap.Resources
	app       *bootstrap.App
}

func (r *deps) Close() {
	if r.resources != nil {
		r.resources.Close()
	}
}

func openRuntime(ctx context.Context, envFile string) (*deps, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	res, err := bootstrap.OpenResources(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	rt := &deps{cfg: cfg, logger: logger, resources: res}

	if err := db.AutoMigrate(res.DB); err != nil {
		rt.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	stores, err := bootstrap.NewStores(cfg, res, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}

	app, err := bootstrap.Wire(stores, bootstrap.OptionsFromConfig(cfg), logger)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.app = app
	return rt, nil
}
