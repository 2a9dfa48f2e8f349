package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/bolspread/internal/config"
	"github.com/gyeh/bolspread/internal/db"
	"github.com/gyeh/bolspread/internal/exitcode"
	"github.com/gyeh/bolspread/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the bolspread schema used by analyze --dsn",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := loadConfig(cmd); err != nil {
		log.Error().Err(err).Msg("config load failed")
		os.Exit(exitcode.UsageError)
	}
	log = logging.Setup(cfg.LogFormat)

	if cfg.DSN == "" {
		log.Error().Msgf("--dsn or %s_DSN is required", config.EnvPrefix)
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN, log)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(exitcode.LoadError)
	}
	return nil
}
