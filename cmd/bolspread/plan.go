package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/bolspread/internal/config"
	"github.com/gyeh/bolspread/internal/exitcode"
	"github.com/gyeh/bolspread/internal/logging"
	"github.com/gyeh/bolspread/internal/report"
)

var previewRows int

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the report tables without writing anything",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().IntVar(&previewRows, "rows", report.DefaultPreviewRows, "Rows to show per table")
	addRunFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

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

	rep, err := report.Analyze(context.Background(), log, &cfg)
	if err != nil {
		log.Error().Err(err).Msg("plan failed")
		var pe *report.PipelineError
		if errors.As(err, &pe) && pe.Phase == report.PhaseAnalyze {
			os.Exit(exitcode.AnalyzeError)
		}
		os.Exit(exitcode.ValidationError)
	}

	if err := report.PrintPreview(os.Stdout, rep, previewRows); err != nil {
		log.Error().Err(err).Msg("print preview failed")
		os.Exit(exitcode.WriteError)
	}
	return nil
}
