// mkfixture writes a synthetic shipment table for trying out bolspread.
// Rows cover every bucket, mixed ATA presence, unparsable timestamps and
// non-container rows.
// Usage: go run ./cmd/mkfixture --out testdata/shipments.csv --bols 200 --seed 7
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var header = []string{"identifier", "shipment_type", "bol_id", "eta", "ata", "carrier"}

var (
	containerTypes = []string{"Container", "CONTAINER", " container ", "CONTAINER_ID", "container_id"}
	otherTypes     = []string{"TRUCK", "AIR", "Containerized", "LCL"}
	carriers       = []string{"MAEU", "MSCU", "CMDU", "HLCU", "ONEY"}
	layouts        = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"01/02/2006 15:04",
		"2006-01-02",
		"Jan 2, 2006 3:04 PM",
	}
)

func main() {
	out := flag.String("out", "testdata/shipments.csv", "output file (.csv or .xlsx)")
	bols := flag.Int("bols", 200, "number of BOLs")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	rows := generate(rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)), *bols)

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}
	var err error
	if strings.EqualFold(filepath.Ext(*out), ".xlsx") {
		err = writeXLSX(*out, rows)
	} else {
		err = writeCSV(*out, rows)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d rows for %d BOLs to %s\n", len(rows), *bols, *out)
}

func generate(r *rand.Rand, bols int) [][]string {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var rows [][]string
	seq := 0
	for b := 0; b < bols; b++ {
		bolID := fmt.Sprintf("BOL%06d", b+1)
		eta := base.Add(time.Duration(r.IntN(24*90)) * time.Hour)
		ata := eta.Add(time.Duration(r.IntN(72)-12) * time.Hour)
		// 0: identical, 1: within a day, 2: more than a day
		etaShape, ataShape := r.IntN(3), r.IntN(3)
		mixed := r.IntN(5) == 0
		carrier := carriers[r.IntN(len(carriers))]
		layout := layouts[r.IntN(len(layouts))]

		n := 1 + r.IntN(5)
		for c := 0; c < n; c++ {
			seq++
			row := []string{
				fmt.Sprintf("%s%07d", carrier, seq),
				containerTypes[r.IntN(len(containerTypes))],
				bolID,
				jitter(r, eta, etaShape, c).Format(layout),
				jitter(r, ata, ataShape, c).Format(layout),
				carrier,
			}
			switch {
			case mixed && c == n-1 && n > 1:
				row[4] = ""
			case r.IntN(40) == 0:
				row[3] = "TBD"
			case r.IntN(30) == 0:
				row[3], row[4] = "", ""
			}
			rows = append(rows, row)
		}

		if r.IntN(4) == 0 {
			seq++
			rows = append(rows, []string{
				fmt.Sprintf("%s%07d", carrier, seq),
				otherTypes[r.IntN(len(otherTypes))],
				bolID,
				eta.Format(layout),
				"",
				carrier,
			})
		}
	}
	r.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	return rows
}

func jitter(r *rand.Rand, t time.Time, shape, c int) time.Time {
	if c == 0 {
		return t
	}
	switch shape {
	case 1:
		return t.Add(time.Duration(1+r.IntN(24*60)) * time.Minute)
	case 2:
		return t.Add(time.Duration(25+r.IntN(24*10)) * time.Hour)
	}
	return t
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeXLSX(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	for i, rec := range append([][]string{header}, rows...) {
		cells := make([]any, len(rec))
		for j, v := range rec {
			cells[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := sw.SetRow(cell, cells); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
