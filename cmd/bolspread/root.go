package main

import (
	"github.com/spf13/cobra"

	"github.com/gyeh/bolspread/internal/config"
)

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "bolspread",
	Short: "BOL ETA/ATA spread report",
	Long: "Groups container rows of a shipment table by bill of lading, measures how far apart\n" +
		"their ETA and ATA timestamps are, and flags BOLs with partially missing ATAs.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ConfigPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&cfg.DSN, config.FlagDSN, "", "Postgres connection string (or set "+config.EnvPrefix+"_DSN)")
	pf.StringVar(&cfg.LogFormat, config.FlagLogFormat, cfg.LogFormat, "Log format: text or json")
}

// addRunFlags registers the flags shared by analyze and plan.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to the shipment table, .csv, .tsv or .xlsx (required)")
	f.BoolVar(&cfg.DayFirst, config.FlagDayFirst, cfg.DayFirst, "Read ambiguous dates like 02/03/2024 as day first")
	f.IntVar(&cfg.Workers, config.FlagWorkers, cfg.Workers, "Parallel aggregation shards")
	f.StringVar(&cfg.Columns.Identifier, config.FlagIdentifier, cfg.Columns.Identifier, "Column holding the row identifier")
	f.StringVar(&cfg.Columns.ShipmentType, config.FlagShipmentType, cfg.Columns.ShipmentType, "Column holding the shipment type")
	f.StringVar(&cfg.Columns.BOLID, config.FlagBOLID, cfg.Columns.BOLID, "Column holding the BOL id")
	f.StringVar(&cfg.Columns.ETA, config.FlagETA, cfg.Columns.ETA, "Column holding the ETA")
	f.StringVar(&cfg.Columns.ATA, config.FlagATA, cfg.Columns.ATA, "Column holding the ATA")
	_ = cmd.MarkFlagRequired("file")
}

// loadConfig layers the config file, then BOLSPREAD_* env, then any flag
// the user set explicitly, and stores the result back into cfg.
func loadConfig(cmd *cobra.Command) error {
	flags := cfg

	resolved := config.Default()
	resolved.ConfigPath = flags.ConfigPath
	resolved.FilePath = flags.FilePath
	resolved.OutputPath = flags.OutputPath
	resolved.Force = flags.Force

	if resolved.ConfigPath != "" {
		if err := resolved.LoadFromFile(resolved.ConfigPath); err != nil {
			return err
		}
	}
	if err := resolved.ApplyEnv(); err != nil {
		return err
	}
	resolved.KeepExplicit(flags, cmd.Flags().Changed)

	cfg = resolved
	return nil
}
