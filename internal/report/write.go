package report

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/gyeh/bolspread/internal/analysis"
	"github.com/gyeh/bolspread/internal/config"
	"github.com/gyeh/bolspread/internal/model"
)

// ErrOutputExists is returned when the output path is taken and overwrite
// was not requested.
var ErrOutputExists = errors.New("output path already exists")

// Write renders res into path in the given format. An existing path is
// only replaced when overwrite is set; directory formats then replace their
// four files and leave anything else in the directory alone. Every file is
// renamed into place only after it was written completely.
func Write(format, path string, res *analysis.Result, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%w: %s (use --force to replace)", ErrOutputExists, path)
	}

	tables := BuildTables(res)
	switch format {
	case config.FormatZip:
		return WriteZip(path, tables)
	case config.FormatDir:
		return WriteDir(path, tables)
	case config.FormatXLSX:
		return WriteXLSX(path, tables)
	case config.FormatParquet:
		return WriteParquet(path, res)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteZip writes every table as <name>.csv into one deflated archive.
func WriteZip(path string, tables []Table) error {
	return writeAtomic(path, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		now := time.Now()
		for _, t := range tables {
			entry, err := zw.CreateHeader(&zip.FileHeader{
				Name:     t.Name + ".csv",
				Method:   zip.Deflate,
				Modified: now,
			})
			if err != nil {
				return fmt.Errorf("zip entry %s: %w", t.Name, err)
			}
			if err := writeCSV(entry, t); err != nil {
				return fmt.Errorf("zip entry %s: %w", t.Name, err)
			}
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("finish zip: %w", err)
		}
		return nil
	})
}

// WriteDir writes every table as <name>.csv into dir.
func WriteDir(dir string, tables []Table) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, t := range tables {
		if err := writeAtomic(filepath.Join(dir, t.Name+".csv"), func(w io.Writer) error {
			return writeCSV(w, t)
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeAtomic fills a temp file next to path and renames it over path once
// fill and close succeed. On failure the temp file is removed and any
// existing file at path is left untouched.
func writeAtomic(path string, fill func(io.Writer) error) error {
	name := filepath.Base(path)
	f, err := os.CreateTemp(filepath.Dir(path), "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	tmp := f.Name()
	if err := fill(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", name, err)
	}
	// CreateTemp opens 0600; match what os.Create would have produced.
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return err
	}
	return cw.Error()
}

// WriteXLSX writes one worksheet per table into a single workbook.
func WriteXLSX(path string, tables []Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := sheetName(t.Name)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("add sheet %s: %w", sheet, err)
		}

		sw, err := f.NewStreamWriter(sheet)
		if err != nil {
			return fmt.Errorf("stream sheet %s: %w", sheet, err)
		}
		header := make([]any, len(t.Header))
		for j, h := range t.Header {
			header[j] = h
		}
		if err := sw.SetRow("A1", header); err != nil {
			return fmt.Errorf("sheet %s header: %w", sheet, err)
		}
		for r, row := range t.Rows {
			cells := make([]any, len(row))
			for j, v := range row {
				if v == nil {
					v = ""
				}
				cells[j] = v
			}
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := sw.SetRow(cell, cells); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", sheet, r+2, err)
			}
		}
		if err := sw.Flush(); err != nil {
			return fmt.Errorf("flush sheet %s: %w", sheet, err)
		}
	}
	if err := writeAtomic(path, func(w io.Writer) error { return f.Write(w) }); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

// sheetName fits a table name into Excel's 31 character sheet limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}

// WriteParquet writes the four tables as <name>.parquet files into dir.
func WriteParquet(dir string, res *analysis.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	eta := make([]model.ETASpreadRecord, len(res.BOLs))
	ata := make([]model.ATASpreadRecord, len(res.BOLs))
	for i, a := range res.BOLs {
		eta[i] = a.ETARecord()
		ata[i] = a.ATARecord()
	}
	detail := make([]model.DetailRecord, len(res.Mixed))
	for i, r := range res.Mixed {
		detail[i] = model.DetailRecord{
			BOLID:        r.BOLID,
			Identifier:   r.Identifier,
			ShipmentType: r.ShipmentType,
			ETA:          r.ETA,
			ATA:          r.ATA,
		}
	}
	summary := make([]model.SummaryRecord, len(res.Summary))
	for i, s := range res.Summary {
		summary[i] = model.SummaryRecord{
			Metric:      string(s.Metric),
			Bucket:      string(s.Bucket),
			Description: s.Description,
			Count:       int64(s.Count),
		}
	}

	if err := writeParquetFile(filepath.Join(dir, TableETASpread+".parquet"), eta); err != nil {
		return err
	}
	if err := writeParquetFile(filepath.Join(dir, TableATASpread+".parquet"), ata); err != nil {
		return err
	}
	if err := writeParquetFile(filepath.Join(dir, TableDetail+".parquet"), detail); err != nil {
		return err
	}
	return writeParquetFile(filepath.Join(dir, TableSummary+".parquet"), summary)
}

func writeParquetFile[T any](path string, rows []T) error {
	return writeAtomic(path, func(f io.Writer) error {
		w := parquet.NewGenericWriter[T](f)
		if len(rows) > 0 {
			if _, err := w.Write(rows); err != nil {
				return err
			}
		}
		return w.Close()
	})
}
