package tableread

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const utf8BOM = "\ufeff"

// readCSV loads a delimited file into a string-typed dataframe and reads
// the cells back, blank where the column is NaN.
// Rows shorter than the header are padded with blanks; longer rows are an error.
func readCSV(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	width := len(header)
	for i := 1; i < len(records); i++ {
		if len(records[i]) > width {
			return nil, fmt.Errorf("parse csv: line %d has %d fields, header has %d", i+1, len(records[i]), width)
		}
		if len(records[i]) < width {
			records[i] = append(records[i], make([]string, width-len(records[i]))...)
		}
	}
	if len(records) == 1 {
		return &Table{Header: header, Rows: [][]string{}}, nil
	}

	// Positional column keys keep duplicate or blank header names apart.
	keys := make([]string, width)
	for j := range keys {
		keys[j] = fmt.Sprintf("c%d", j)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.Names(keys...),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingTokens),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load csv: %w", df.Err)
	}
	if df.Ncol() != width {
		return nil, fmt.Errorf("load csv: dataframe has %d columns, header has %d", df.Ncol(), width)
	}

	rows := make([][]string, df.Nrow())
	for i := range rows {
		rows[i] = make([]string, width)
	}
	// Null tokens were loaded as NaN; every other cell keeps its text.
	for j, name := range df.Names() {
		col := df.Col(name)
		nan := col.IsNaN()
		for i, v := range col.Records() {
			if !nan[i] {
				rows[i][j] = v
			}
		}
	}
	return &Table{Header: header, Rows: rows}, nil
}
