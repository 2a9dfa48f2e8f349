package tableread

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX loads the first worksheet; its first row is the header.
// Cells come back as excelize formats them for display.
func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return &Table{}, nil
	}

	header := all[0]
	rows := make([][]string, 0, len(all)-1)
	for _, r := range all[1:] {
		rows = append(rows, blankMissing(r, len(header)))
	}
	return &Table{Header: header, Rows: rows}, nil
}
