package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/bolspread/internal/analysis"
	"github.com/gyeh/bolspread/internal/model"
	"github.com/gyeh/bolspread/internal/report"
	embedsql "github.com/gyeh/bolspread/internal/sql"
)

const copyBuffer = 1024

var (
	spreadColumns = []string{
		"report_id", "metric", "bol_id", "n_containers", "n_present", "n_missing",
		"min_ts", "max_ts", "spread_hours", "bucket",
	}
	detailColumns  = []string{"report_id", "seq", "bol_id", "identifier", "shipment_type", "eta", "ata"}
	summaryColumns = []string{"report_id", "seq", "metric", "bucket", "description", "count"}
)

// Sink copies finished reports into the bolspread schema. Every load is a
// new report_runs row; earlier runs are never read or modified.
type Sink struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewSink returns a Sink writing through pool.
func NewSink(pool *pgxpool.Pool, log zerolog.Logger) *Sink {
	return &Sink{pool: pool, log: log}
}

var _ report.Loader = (*Sink)(nil)

// LoadReport writes the run row and all four tables in one transaction and
// returns the number of table rows copied.
func (s *Sink) LoadReport(ctx context.Context, meta report.RunMeta, res *analysis.Result) (int64, error) {
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin load: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, embedsql.InsertReportRun,
		meta.ReportID,
		meta.FilePath,
		meta.FileSHA256,
		meta.Outcome.String(),
		len(res.Containers),
		len(res.BOLs),
		res.MixedCount(),
		meta.CreatedAt,
	); err != nil {
		return 0, fmt.Errorf("insert report run: %w", err)
	}

	spread, err := copySpread(ctx, tx, meta, res.BOLs)
	if err != nil {
		return 0, err
	}

	detailRows := make([][]any, len(res.Mixed))
	for i, r := range res.Mixed {
		detailRows[i] = []any{meta.ReportID, i + 1, r.BOLID, r.Identifier, r.ShipmentType, r.ETA, r.ATA}
	}
	detail, err := tx.CopyFrom(ctx, pgx.Identifier{"bolspread", "mixed_ata_detail"}, detailColumns, pgx.CopyFromRows(detailRows))
	if err != nil {
		return 0, fmt.Errorf("copy mixed_ata_detail: %w", err)
	}

	summary, err := tx.CopyFrom(ctx, pgx.Identifier{"bolspread", "summary"}, summaryColumns,
		pgx.CopyFromSlice(len(res.Summary), func(i int) ([]any, error) {
			r := res.Summary[i]
			return []any{meta.ReportID, i + 1, string(r.Metric), string(r.Bucket), r.Description, r.Count}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy summary: %w", err)
	}

	if err := verifyCounts(ctx, tx, meta, spread, detail, summary); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit load: %w", err)
	}

	total := spread + detail + summary
	s.log.Info().
		Str("report_id", meta.ReportID.String()).
		Int64("spread_rows", spread).
		Int64("detail_rows", detail).
		Int64("summary_rows", summary).
		Dur("duration", time.Since(start)).
		Msg("report loaded")
	return total, nil
}

// copySpread streams both spread tables into bol_spread: every ETA row,
// then every ATA row.
func copySpread(ctx context.Context, tx pgx.Tx, meta report.RunMeta, bols []*model.BolAggregate) (int64, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan []any, copyBuffer)
	go func() {
		defer close(ch)
		for _, m := range []model.Metric{model.MetricETA, model.MetricATA} {
			for _, a := range bols {
				st := a.Stats(m)
				row := []any{
					meta.ReportID, string(m), a.BOLID, a.NContainers, st.Present, st.Missing,
					st.Min, st.Max, st.SpreadHours, string(st.Bucket),
				}
				select {
				case ch <- row:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"bolspread", "bol_spread"}, spreadColumns, NewChannelSource(ctx, ch))
	if err != nil {
		return 0, fmt.Errorf("copy bol_spread: %w", err)
	}
	return n, nil
}

func verifyCounts(ctx context.Context, tx pgx.Tx, meta report.RunMeta, spread, detail, summary int64) error {
	var gotSpread, gotDetail, gotSummary int64
	if err := tx.QueryRow(ctx, embedsql.CountReportRows, meta.ReportID).Scan(&gotSpread, &gotDetail, &gotSummary); err != nil {
		return fmt.Errorf("count loaded rows: %w", err)
	}
	if gotSpread != spread || gotDetail != detail || gotSummary != summary {
		return fmt.Errorf("loaded row counts mismatch: spread %d/%d detail %d/%d summary %d/%d",
			gotSpread, spread, gotDetail, detail, gotSummary, summary)
	}
	return nil
}

// CountReportRows returns the rows stored for one report, per table.
func CountReportRows(ctx context.Context, pool *pgxpool.Pool, meta report.RunMeta) (spread, detail, summary int64, err error) {
	err = pool.QueryRow(ctx, embedsql.CountReportRows, meta.ReportID).Scan(&spread, &detail, &summary)
	return spread, detail, summary, err
}
