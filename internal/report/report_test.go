package report

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gyeh/bolspread/internal/analysis"
	"github.com/gyeh/bolspread/internal/config"
	"github.com/gyeh/bolspread/internal/model"
	"github.com/gyeh/bolspread/internal/tableread"
)

const shipmentsCSV = "identifier,shipment_type,bol_id,eta,ata\n" +
	"C1,Container,B1,2024-01-01T00:00:00,2024-02-01\n" +
	"C2,CONTAINER,B1,2024-01-01T12:00:00,\n" +
	"T1,TRUCK,B9,2024-01-01,2024-01-01\n" +
	"C4,container_id,B2,,\n"

const trucksCSV = "identifier,shipment_type,bol_id,eta,ata\n" +
	"T1,TRUCK,B9,2024-01-01,2024-01-01\n"

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shipments.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T, input, format string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.FilePath = input
	cfg.Format = format
	cfg.OutputPath = filepath.Join(t.TempDir(), "out")
	return &cfg
}

func analyzeCSV(t *testing.T, content string) *analysis.Result {
	t.Helper()
	rep, err := Analyze(context.Background(), zerolog.Nop(), testConfig(t, writeInput(t, content), config.FormatZip))
	require.NoError(t, err)
	return rep.Result
}

func readZipCSV(t *testing.T, path string) map[string][][]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	out := make(map[string][][]string)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		recs, err := csv.NewReader(rc).ReadAll()
		rc.Close()
		require.NoError(t, err)
		out[strings.TrimSuffix(f.Name, ".csv")] = recs
	}
	assert.Equal(t, []string{
		TableETASpread + ".csv",
		TableATASpread + ".csv",
		TableDetail + ".csv",
		TableSummary + ".csv",
	}, names)
	return out
}

func TestBuildTables(t *testing.T) {
	tables := BuildTables(analyzeCSV(t, shipmentsCSV))
	require.Len(t, tables, 4)

	eta := tables[0]
	assert.Equal(t, TableETASpread, eta.Name)
	assert.Equal(t, model.SpreadColumns(model.MetricETA), eta.Header)
	require.Len(t, eta.Rows, 2)
	assert.Equal(t, []any{"B1", 2, 2, 0, "2024-01-01T00:00:00Z", "2024-01-01T12:00:00Z", 12.0, "BETWEEN_1_AND_24_HOURS"}, eta.Rows[0])
	assert.Equal(t, []any{"B2", 1, 0, 1, nil, nil, nil, "NO_VALID_TIMESTAMP"}, eta.Rows[1])

	ata := tables[1]
	assert.Equal(t, []any{"B1", 2, 1, 1, "2024-02-01T00:00:00Z", "2024-02-01T00:00:00Z", 0.0, "NO_DIFFERENCE"}, ata.Rows[0])

	detail := tables[2]
	assert.Equal(t, [][]any{
		{"B1", "C1", "Container", "2024-01-01T00:00:00", "2024-02-01"},
		{"B1", "C2", "CONTAINER", "2024-01-01T12:00:00", ""},
	}, detail.Rows)

	summary := tables[3]
	require.Len(t, summary.Rows, 5)
	assert.Equal(t, []any{"ATA_MIXED_PRESENCE", "MIXED_PRESENT_AND_MISSING", model.BucketMixedPresentAndMissing.Description(), 1}, summary.Rows[4])
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", CellString(nil))
	assert.Equal(t, "abc", CellString("abc"))
	assert.Equal(t, "42", CellString(42))
	assert.Equal(t, "12", CellString(12.0))
	assert.Equal(t, "0.5", CellString(0.5))
	assert.Equal(t, "24.0000001", CellString(24.0000001))
	assert.Equal(t, "7", CellString(int64(7)))
	assert.Equal(t, "true", CellString(true))
}

func TestWriteZip(t *testing.T) {
	res := analyzeCSV(t, shipmentsCSV)
	path := filepath.Join(t.TempDir(), "report.zip")
	require.NoError(t, Write(config.FormatZip, path, res, false))

	tables := readZipCSV(t, path)
	eta := tables[TableETASpread]
	require.Len(t, eta, 3)
	assert.Equal(t, model.SpreadColumns(model.MetricETA), eta[0])
	assert.Equal(t, []string{"B1", "2", "2", "0", "2024-01-01T00:00:00Z", "2024-01-01T12:00:00Z", "12", "BETWEEN_1_AND_24_HOURS"}, eta[1])
	assert.Equal(t, []string{"B2", "1", "0", "1", "", "", "", "NO_VALID_TIMESTAMP"}, eta[2])

	summary := tables[TableSummary]
	require.Len(t, summary, 6)
	assert.Equal(t, []string{"metric", "bucket", "description", "count"}, summary[0])
	assert.Equal(t, "ATA_MIXED_PRESENCE", summary[5][0])
	assert.Equal(t, "1", summary[5][3])
}

func TestWrite_RefusesExistingPath(t *testing.T) {
	res := analyzeCSV(t, shipmentsCSV)
	path := filepath.Join(t.TempDir(), "report.zip")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

	err := Write(config.FormatZip, path, res, false)
	assert.ErrorIs(t, err, ErrOutputExists)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "keep", string(data))

	require.NoError(t, Write(config.FormatZip, path, res, true))
	readZipCSV(t, path)
}

func TestWriteAtomic_FailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.zip")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

	err := writeAtomic(path, func(w io.Writer) error {
		if _, err := w.Write([]byte("partial")); err != nil {
			return err
		}
		return errors.New("disk full")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must be removed")
	assert.Equal(t, "report.zip", entries[0].Name())
}

func TestWriteDir_ForceLeavesNoTempFiles(t *testing.T) {
	res := analyzeCSV(t, shipmentsCSV)
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, Write(config.FormatDir, dir, res, false))
	require.NoError(t, Write(config.FormatDir, dir, res, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "."), e.Name())
		info, err := e.Info()
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	res := analyzeCSV(t, shipmentsCSV)
	err := Write("pdf", filepath.Join(t.TempDir(), "x"), res, false)
	assert.Error(t, err)
}

func TestWriteDir(t *testing.T) {
	res := analyzeCSV(t, shipmentsCSV)
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, Write(config.FormatDir, dir, res, false))

	for _, name := range []string{TableETASpread, TableATASpread, TableDetail, TableSummary} {
		f, err := os.Open(filepath.Join(dir, name+".csv"))
		require.NoError(t, err, name)
		recs, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)
		assert.NotEmpty(t, recs, name)
	}

	// Rewriting an existing directory leaves unrelated files alone.
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	require.NoError(t, Write(config.FormatDir, dir, res, true))
	assert.FileExists(t, other)
}

func TestWriteXLSX(t *testing.T) {
	res := analyzeCSV(t, shipmentsCSV)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Write(config.FormatXLSX, path, res, false))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TableETASpread, TableATASpread, TableDetail, TableSummary}, f.GetSheetList())

	rows, err := f.GetRows(TableETASpread)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "B1", rows[1][0])
	assert.Equal(t, "12", rows[1][6])
	assert.Equal(t, "BETWEEN_1_AND_24_HOURS", rows[1][7])

	rows, err = f.GetRows(TableDetail)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestWriteParquet(t *testing.T) {
	res := analyzeCSV(t, shipmentsCSV)
	dir := filepath.Join(t.TempDir(), "pq")
	require.NoError(t, Write(config.FormatParquet, dir, res, false))

	eta, err := parquet.ReadFile[model.ETASpreadRecord](filepath.Join(dir, TableETASpread+".parquet"))
	require.NoError(t, err)
	require.Len(t, eta, 2)
	assert.Equal(t, "B1", eta[0].BOLID)
	assert.Equal(t, int64(2), eta[0].NContainers)
	require.NotNil(t, eta[0].ETASpreadHours)
	assert.InDelta(t, 12.0, *eta[0].ETASpreadHours, 1e-9)
	require.NotNil(t, eta[0].ETAMin)
	assert.True(t, eta[0].ETAMin.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, eta[1].ETAMin)
	assert.Nil(t, eta[1].ETASpreadHours)
	assert.Equal(t, "NO_VALID_TIMESTAMP", eta[1].ETASpreadBucket)

	detail, err := parquet.ReadFile[model.DetailRecord](filepath.Join(dir, TableDetail+".parquet"))
	require.NoError(t, err)
	assert.Len(t, detail, 2)

	summary, err := parquet.ReadFile[model.SummaryRecord](filepath.Join(dir, TableSummary+".parquet"))
	require.NoError(t, err)
	require.Len(t, summary, 5)
	assert.Equal(t, "ATA_MIXED_PRESENCE", summary[4].Metric)
	assert.Equal(t, int64(1), summary[4].Count)
}

type fakeLoader struct {
	calls int
	meta  RunMeta
	err   error
}

func (f *fakeLoader) LoadReport(_ context.Context, meta RunMeta, res *analysis.Result) (int64, error) {
	f.calls++
	f.meta = meta
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(res.BOLs)*2 + len(res.Mixed) + len(res.Summary)), nil
}

func TestRun_Report(t *testing.T) {
	cfg := testConfig(t, writeInput(t, shipmentsCSV), config.FormatZip)
	loader := &fakeLoader{}

	rep, err := Run(context.Background(), zerolog.Nop(), cfg, loader)
	require.NoError(t, err)

	assert.Equal(t, analysis.OutcomeReport, rep.Result.Outcome)
	assert.Equal(t, int64(4), rep.Summary.RowsRead)
	assert.Equal(t, int64(3), rep.Summary.ContainerRows)
	assert.Equal(t, int64(2), rep.Summary.BOLs)
	assert.Equal(t, int64(1), rep.Summary.MixedATABOLs)
	assert.Equal(t, cfg.OutputPath, rep.Summary.OutputPath)
	assert.Len(t, rep.Summary.FileSHA256, 64)

	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, rep.Meta.ReportID, loader.meta.ReportID)
	assert.Equal(t, rep.Summary.ReportID, loader.meta.ReportID.String())
	assert.Equal(t, int64(2*2+2+5), rep.Summary.RowsLoaded)

	readZipCSV(t, cfg.OutputPath)
}

func TestRun_NoContainersIsEmptyNotFault(t *testing.T) {
	cfg := testConfig(t, writeInput(t, trucksCSV), config.FormatZip)

	rep, err := Run(context.Background(), zerolog.Nop(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, analysis.OutcomeEmpty, rep.Result.Outcome)
	assert.Equal(t, 0, rep.Result.MixedCount())

	tables := readZipCSV(t, cfg.OutputPath)
	assert.Len(t, tables[TableETASpread], 1)
	assert.Len(t, tables[TableDetail], 1)
	require.Len(t, tables[TableSummary], 2)
	assert.Equal(t, []string{"ATA_MIXED_PRESENCE", "MIXED_PRESENT_AND_MISSING", model.BucketMixedPresentAndMissing.Description(), "0"}, tables[TableSummary][1])
}

func TestRun_Faults(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg := testConfig(t, filepath.Join(t.TempDir(), "nope.csv"), config.FormatZip)
		_, err := Run(context.Background(), zerolog.Nop(), cfg, nil)
		var pe *PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, PhaseRead, pe.Phase)
	})

	t.Run("unknown column", func(t *testing.T) {
		cfg := testConfig(t, writeInput(t, shipmentsCSV), config.FormatZip)
		cfg.Columns.ATA = "actual_arrival"
		_, err := Run(context.Background(), zerolog.Nop(), cfg, nil)
		var pe *PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, PhaseValidate, pe.Phase)
		assert.ErrorIs(t, err, tableread.ErrUnknownColumn)
		assert.NoFileExists(t, cfg.OutputPath)
	})

	t.Run("output exists", func(t *testing.T) {
		cfg := testConfig(t, writeInput(t, shipmentsCSV), config.FormatZip)
		require.NoError(t, os.WriteFile(cfg.OutputPath, nil, 0644))
		_, err := Run(context.Background(), zerolog.Nop(), cfg, nil)
		var pe *PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, PhaseWrite, pe.Phase)
		assert.ErrorIs(t, err, ErrOutputExists)
	})

	t.Run("load fails", func(t *testing.T) {
		cfg := testConfig(t, writeInput(t, shipmentsCSV), config.FormatZip)
		boom := errors.New("connection reset")
		_, err := Run(context.Background(), zerolog.Nop(), cfg, &fakeLoader{err: boom})
		var pe *PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, PhaseLoad, pe.Phase)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "load: connection reset", err.Error())
	})
}

func TestPrintPreview(t *testing.T) {
	rep, err := Analyze(context.Background(), zerolog.Nop(), testConfig(t, writeInput(t, shipmentsCSV), config.FormatZip))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PrintPreview(&buf, rep, 1))
	out := buf.String()

	assert.Contains(t, out, "=== bolspread plan ===")
	assert.Contains(t, out, "Container rows: 3")
	assert.Contains(t, out, "--- "+TableETASpread+" (2 rows) ---")
	assert.Contains(t, out, "... 1 more")
	assert.Contains(t, out, "--- "+TableSummary+" (5 rows) ---")
	assert.NotContains(t, out, "(empty)")
}

func TestPrintPreview_Empty(t *testing.T) {
	rep, err := Analyze(context.Background(), zerolog.Nop(), testConfig(t, writeInput(t, trucksCSV), config.FormatZip))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PrintPreview(&buf, rep, 0))
	out := buf.String()
	assert.Contains(t, out, "Outcome:        empty")
	assert.Equal(t, 3, strings.Count(out, "(empty)"))
}
