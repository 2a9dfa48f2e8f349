package tableread

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gyeh/bolspread/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for input files that are neither CSV/TSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrEmptyTable is returned when the input has no header row.
	ErrEmptyTable = errors.New("input table has no columns")
	// ErrUnknownColumn is returned when a role names a column missing from the header.
	ErrUnknownColumn = errors.New("unknown column")
)

// missingTokens are cell values read as blank: the default null markers of
// pandas read_csv, which is what most exported shipment tables come from.
var missingTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Table is a fully text-typed input table. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Header) }

// Open reads the table at path, choosing the decoder by file extension.
func Open(path string) (*Table, error) {
	var (
		t   *Table
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		t, err = readCSV(path, ',')
	case ".tsv":
		t, err = readCSV(path, '\t')
	case ".xlsx":
		t, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(t.Header) == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// InputRows projects every row onto the five role-bound fields.
func (t *Table) InputRows(b Bindings) []model.InputRow {
	rows := make([]model.InputRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = model.InputRow{
			Identifier:   r[b.Identifier],
			ShipmentType: r[b.ShipmentType],
			BOLID:        r[b.BOLID],
			ETA:          r[b.ETA],
			ATA:          r[b.ATA],
		}
	}
	return rows
}

// blankMissing rewrites null tokens to "" and pads short rows to width.
func blankMissing(row []string, width int) []string {
	out := make([]string, width)
	for i := 0; i < width && i < len(row); i++ {
		if isMissingToken(row[i]) {
			continue
		}
		out[i] = row[i]
	}
	return out
}

func isMissingToken(s string) bool {
	for _, tok := range missingTokens {
		if s == tok {
			return true
		}
	}
	return false
}
