package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/config"
	"github.com/diewo77/fibertelecom/internal/db"
	"github.com/diewo77/fibertelecom/internal/logging"
	"github.com/diewo77/fibertelecom/internal/services"
)

// options lets tests swap the config source and the database.
type options struct {
	out    io.Writer
	config func() *config.Config
	open   func(config.DatabaseConfig, *zap.Logger) (*gorm.DB, error)
	clock  clock.Clock
}

func defaultOptions() options {
	return options{out: os.Stdout, config: config.Load, open: db.Open, clock: clock.NewRealClock()}
}

// env is built once per invocation, before the subcommand runs.
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
	svc *services.Services
	out io.Writer

	jsonOutput bool
}

func newRootCmd(opts options) *cobra.Command {
	e := &env{out: opts.out}
	var logLevel string

	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operator tools for the FIBERTELECOM ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e.cfg = opts.config()
			if logLevel == "" {
				logLevel = "warn"
			}
			log, err := logging.New(logLevel, e.cfg.App.Dev)
			if err != nil {
				return err
			}
			e.log = log
			if err := e.cfg.Validate(); err != nil {
				return err
			}
			e.db, err = opts.open(e.cfg.Database, log)
			if err != nil {
				return err
			}
			e.svc = services.New(e.db, opts.clock, log)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.log != nil {
				_ = e.log.Sync()
			}
			return nil
		},
	}
	root.SetOut(opts.out)
	root.PersistentFlags().BoolVar(&e.jsonOutput, "json", false, "Output results in JSON format")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (default warn)")

	root.AddCommand(
		newMigrateCmd(e),
		newSeedCmd(e),
		newSummaryCmd(e),
		newDebtorsCmd(e),
		newLowStockCmd(e),
		newReceiptCmd(e),
	)
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	var sqlMigrations bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sqlMigrations || e.cfg.App.Migrations {
				if err := db.MigrateSQL(e.db, e.cfg.Database.Driver); err != nil {
					return fmt.Errorf("sql migrations: %w", err)
				}
			} else if err := db.Migrate(e.db); err != nil {
				return fmt.Errorf("automigrate: %w", err)
			}
			fmt.Fprintln(e.out, "Migrations completed successfully")
			return nil
		},
	}
	cmd.Flags().BoolVar(&sqlMigrations, "sql", false, "Apply the versioned SQL migrations instead of AutoMigrate")
	return cmd
}

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo catalog (existing products are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.Seed(e.db); err != nil {
				return err
			}
			fmt.Fprintln(e.out, "Seeding completed successfully")
			return nil
		},
	}
}
