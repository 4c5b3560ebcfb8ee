package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/osse101/CurioSync_Go/internal/audit"
	"github.com/osse101/CurioSync_Go/internal/bootstrap"
	"github.com/osse101/CurioSync_Go/internal/config"
	"github.com/osse101/CurioSync_Go/internal/database"
	"github.com/osse101/CurioSync_Go/internal/event"
	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/providersync"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var validFormats = []string{formatText, formatJSON}

// Migrator is the subset of database.Migrator the migrate command drives
type Migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
	Status(ctx context.Context) ([]database.MigrationStatus, error)
}

// Environment is what a command runs against
type Environment struct {
	Sync     providersync.Service
	Audit    audit.Service
	Migrator Migrator
	Close    func()
}

// Opener builds an Environment. Commands call it only after their flags validate.
type Opener func(ctx context.Context) (*Environment, error)

type rootOptions struct {
	Format string
	open   Opener
}

// NewRootCommand creates the curioctl root command
func NewRootCommand(open Opener) *cobra.Command {
	opts := &rootOptions{open: open}

	cmd := &cobra.Command{
		Use:           "curioctl",
		Short:         "CurioSync maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", formatText, "output format (text|json)")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSyncCommand(opts))
	cmd.AddCommand(newBackfillCommand(opts))
	cmd.AddCommand(newAuditCommand(opts))
	cmd.AddCommand(newReconcileCommand(opts))
	cmd.AddCommand(newUnattributedCommand(opts))

	return cmd
}

// withEnvironment opens the environment, runs fn and closes it
func (o *rootOptions) withEnvironment(ctx context.Context, fn func(env *Environment) error) error {
	env, err := o.open(ctx)
	if err != nil {
		return err
	}
	if env.Close != nil {
		defer env.Close()
	}
	return fn(env)
}

// openEnvironment wires the real services from the process environment.
// Logs go to stderr so json output stays parseable.
func openEnvironment(ctx context.Context) (*Environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.InitLoggerWithWriter(logger.NewConfig(
		cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false,
	), os.Stderr)

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, bootstrap.DBMaxConnIdleTime, bootstrap.DBMaxConnLifetime)
	if err != nil {
		return nil, err
	}

	migrator, err := database.NewMigrator(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	bus := event.NewMemoryBus()
	if err := bootstrap.RegisterEventHandlers(bus); err != nil {
		_ = migrator.Close()
		pool.Close()
		return nil, err
	}

	svcs, err := bootstrap.InitializeServices(cfg, bootstrap.InitializeRepositories(pool), bus)
	if err != nil {
		_ = migrator.Close()
		pool.Close()
		return nil, err
	}

	return &Environment{
		Sync:     svcs.Sync,
		Audit:    svcs.Audit,
		Migrator: migrator,
		Close: func() {
			_ = migrator.Close()
			pool.Close()
		},
	}, nil
}
