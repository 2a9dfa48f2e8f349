package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/bolspread/internal/analysis"
	"github.com/gyeh/bolspread/internal/config"
	"github.com/gyeh/bolspread/internal/db"
	"github.com/gyeh/bolspread/internal/exitcode"
	"github.com/gyeh/bolspread/internal/logging"
	"github.com/gyeh/bolspread/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build the spread report and write it out",
	RunE:  runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&cfg.OutputPath, "out", "", "Output path (default depends on --format)")
	f.StringVar(&cfg.Format, config.FlagFormat, cfg.Format, "Output format: zip, dir, xlsx or parquet")
	f.BoolVar(&cfg.Force, "force", false, "Replace an existing output path")
	addRunFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := loadConfig(cmd); err != nil {
		log.Error().Err(err).Msg("config load failed")
		os.Exit(exitcode.UsageError)
	}
	log = logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		if errors.Is(err, config.ErrInvalidRoles) {
			os.Exit(exitcode.ValidationError)
		}
		os.Exit(exitcode.UsageError)
	}

	var loader report.Loader
	if cfg.DSN != "" {
		pool, err := db.NewPool(ctx, cfg.DSN, log)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
		loader = db.NewSink(pool, log)
	}

	rep, err := report.Run(ctx, log, &cfg, loader)
	if err != nil {
		var pe *report.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("analyze failed")
			switch pe.Phase {
			case report.PhaseRead, report.PhaseValidate:
				os.Exit(exitcode.ValidationError)
			case report.PhaseWrite:
				os.Exit(exitcode.WriteError)
			case report.PhaseLoad:
				os.Exit(exitcode.LoadError)
			default:
				os.Exit(exitcode.AnalyzeError)
			}
		}
		log.Error().Err(err).Msg("analyze failed")
		os.Exit(exitcode.AnalyzeError)
	}

	if rep.Result.Outcome == analysis.OutcomeEmpty {
		fmt.Printf("No container rows found; wrote empty report to %s\n", rep.Summary.OutputPath)
		return nil
	}
	fmt.Printf("Report complete: %d BOLs from %d container rows, %d with mixed ATA presence → %s (%.1fs)\n",
		rep.Summary.BOLs, rep.Summary.ContainerRows, rep.Summary.MixedATABOLs,
		rep.Summary.OutputPath, rep.Summary.DurationTotal.Seconds())
	return nil
}
