package main

import (
	"context"
	"fmt"
	"io"

	"payment-webhook-bridge/config"
	pgStorage "payment-webhook-bridge/internal/adapter/storage/postgres"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// migrator is the part of pgStorage.Migrator the CLI drives.
type migrator interface {
	Up() (bool, error)
	Down(steps int) error
	Version() (version uint, dirty bool, ok bool, err error)
	Close() error
}

type purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// backend opens the stores a command works on. Tests swap in fakes.
type backend struct {
	newMigrator  func(dsn string) (migrator, error)
	openMappings func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.MappingRepository, func(), error)
	openPurger   func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (purger, func(), error)
}

func defaultBackend() backend {
	return backend{
		newMigrator: func(dsn string) (migrator, error) {
			return pgStorage.NewMigrator(dsn)
		},
		openMappings: func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.MappingRepository, func(), error) {
			pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
			if err != nil {
				return nil, nil, err
			}
			return pgStorage.NewMappingRepo(pool), pool.Close, nil
		},
		openPurger: func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (purger, func(), error) {
			pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
			if err != nil {
				return nil, nil, err
			}
			return pgStorage.NewEventGuard(pool), pool.Close, nil
		},
	}
}

// cli carries state shared by every subcommand.
type cli struct {
	backend    backend
	configPath string
	cfg        *config.Config
	log        zerolog.Logger
}

func newRootCmd(b backend) *cobra.Command {
	c := &cli{backend: b}

	root := &cobra.Command{
		Use:           "bridgectl",
		Short:         "Operator tool for the payment webhook bridge",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.cfg = cfg
			c.log = logger.NewWithWriter(cfg.Log.Level, cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a config file (default ./config.yaml)")

	root.AddCommand(c.migrateCmd())
	root.AddCommand(c.mappingsCmd())
	root.AddCommand(c.adminCmd())
	root.AddCommand(c.eventsCmd())
	return root
}

// requirePostgres rejects commands that need a database when the bridge runs in memory.
func (c *cli) requirePostgres() error {
	if c.cfg.Database.InMemory() {
		return fmt.Errorf("database.driver is %q; this command needs postgres", c.cfg.Database.Driver)
	}
	return nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
