package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/bolspread/internal/analysis"
	"github.com/gyeh/bolspread/internal/config"
	"github.com/gyeh/bolspread/internal/model"
	"github.com/gyeh/bolspread/internal/normalize"
	"github.com/gyeh/bolspread/internal/tableread"
)

// Pipeline phases, in execution order.
const (
	PhaseRead     = "read"
	PhaseValidate = "validate"
	PhaseAnalyze  = "analyze"
	PhaseWrite    = "write"
	PhaseLoad     = "load"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Loader receives a finished report, e.g. to copy it into a database.
type Loader interface {
	LoadReport(ctx context.Context, meta RunMeta, res *analysis.Result) (int64, error)
}

// RunMeta identifies one report run.
type RunMeta struct {
	ReportID   uuid.UUID
	FilePath   string
	FileSHA256 string
	Outcome    analysis.Outcome
	CreatedAt  time.Time
}

// Report is everything a run produced.
type Report struct {
	Meta    RunMeta
	Table   *tableread.Table
	Result  *analysis.Result
	Summary model.RunSummary
}

// Analyze runs the read, validate and analyze phases without writing.
func Analyze(ctx context.Context, log zerolog.Logger, cfg *config.Config) (*Report, error) {
	totalStart := time.Now()

	// Phase 1: Read
	start := time.Now()
	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseRead, Err: err}
	}
	tbl, err := tableread.Open(cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseRead, Err: err}
	}
	readDur := time.Since(start)
	log.Info().
		Str("file", cfg.FilePath).
		Str("sha256", sha).
		Int("rows", tbl.NumRows()).
		Int("columns", tbl.NumCols()).
		Dur("duration", readDur).
		Msg("input loaded")

	// Phase 2: Validate column roles against the header
	bindings, err := tableread.Resolve(tbl.Header, cfg.Columns)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseValidate, Err: err}
	}

	// Phase 3: Analyze
	start = time.Now()
	res, err := analysis.Analyze(ctx, tbl.InputRows(bindings), analysis.Options{
		Parser:  normalize.TimestampParser{DayFirst: cfg.DayFirst},
		Workers: cfg.Workers,
	})
	if err != nil {
		return nil, &PipelineError{Phase: PhaseAnalyze, Err: err}
	}
	reduceDur := time.Since(start)

	if res.Outcome == analysis.OutcomeEmpty {
		log.Warn().
			Str("column", cfg.Columns.ShipmentType).
			Msgf("no container rows found; looked for values 'Container' or 'CONTAINER_ID' in column '%s'", cfg.Columns.ShipmentType)
	} else {
		log.Info().
			Int("container_rows", len(res.Containers)).
			Int("bols", len(res.BOLs)).
			Int("mixed_ata_bols", res.MixedCount()).
			Dur("duration", reduceDur).
			Msgf("%d rows detected as containers using column '%s'", len(res.Containers), cfg.Columns.ShipmentType)
	}

	meta := RunMeta{
		ReportID:   uuid.New(),
		FilePath:   cfg.FilePath,
		FileSHA256: sha,
		Outcome:    res.Outcome,
		CreatedAt:  time.Now().UTC(),
	}
	return &Report{
		Meta:   meta,
		Table:  tbl,
		Result: res,
		Summary: model.RunSummary{
			ReportID:       meta.ReportID.String(),
			FilePath:       cfg.FilePath,
			FileSHA256:     sha,
			RowsRead:       int64(tbl.NumRows()),
			ContainerRows:  int64(len(res.Containers)),
			BOLs:           int64(len(res.BOLs)),
			MixedATABOLs:   int64(res.MixedCount()),
			DurationRead:   readDur,
			DurationReduce: reduceDur,
			DurationTotal:  time.Since(totalStart),
		},
	}, nil
}

// Run executes the full pipeline: read → validate → analyze → write → load.
// loader may be nil. A fault in any phase returns a *PipelineError; an input
// without container rows is not a fault and still writes empty tables.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config, loader Loader) (*Report, error) {
	totalStart := time.Now()

	rep, err := Analyze(ctx, log, cfg)
	if err != nil {
		return nil, err
	}

	// Phase 4: Write
	out := cfg.OutputPathOrDefault()
	start := time.Now()
	if err := Write(cfg.Format, out, rep.Result, cfg.Force); err != nil {
		return nil, &PipelineError{Phase: PhaseWrite, Err: err}
	}
	rep.Summary.OutputPath = out
	rep.Summary.DurationWrite = time.Since(start)
	log.Info().
		Str("format", cfg.Format).
		Str("output", out).
		Str("report_id", rep.Summary.ReportID).
		Dur("duration", rep.Summary.DurationWrite).
		Msg("report written")

	// Phase 5: Load (optional)
	if loader != nil {
		start = time.Now()
		n, err := loader.LoadReport(ctx, rep.Meta, rep.Result)
		if err != nil {
			return nil, &PipelineError{Phase: PhaseLoad, Err: err}
		}
		rep.Summary.RowsLoaded = n
		rep.Summary.DurationLoad = time.Since(start)
	}

	rep.Summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int64("rows_read", rep.Summary.RowsRead).
		Int64("container_rows", rep.Summary.ContainerRows).
		Int64("bols", rep.Summary.BOLs).
		Int64("rows_loaded", rep.Summary.RowsLoaded).
		Str("outcome", rep.Meta.Outcome.String()).
		Str("total_duration", rep.Summary.DurationTotal.String()).
		Msg("report pipeline complete")

	return rep, nil
}
