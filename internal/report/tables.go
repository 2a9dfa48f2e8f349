package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gyeh/bolspread/internal/analysis"
	"github.com/gyeh/bolspread/internal/model"
	"github.com/gyeh/bolspread/internal/normalize"
)

// Artifact names, shared by every output format.
const (
	TableETASpread = "bol_eta_spread"
	TableATASpread = "bol_ata_spread"
	TableDetail    = "bol_mixed_ata_presence_detail"
	TableSummary   = "summary"
)

// Table is one output table. Cells are string, int or float64; nil is a
// blank cell.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// BuildTables renders a result into its four tables, in artifact order.
func BuildTables(res *analysis.Result) []Table {
	return []Table{
		spreadTable(TableETASpread, model.MetricETA, res.BOLs),
		spreadTable(TableATASpread, model.MetricATA, res.BOLs),
		detailTable(res.Mixed),
		summaryTable(res.Summary),
	}
}

func spreadTable(name string, m model.Metric, bols []*model.BolAggregate) Table {
	t := Table{Name: name, Header: model.SpreadColumns(m), Rows: make([][]any, 0, len(bols))}
	for _, a := range bols {
		s := a.Stats(m)
		t.Rows = append(t.Rows, []any{
			a.BOLID,
			a.NContainers,
			s.Present,
			s.Missing,
			timeCell(s.Min),
			timeCell(s.Max),
			floatCell(s.SpreadHours),
			string(s.Bucket),
		})
	}
	return t
}

func detailTable(rows []model.ContainerRow) Table {
	t := Table{Name: TableDetail, Header: model.DetailColumns(), Rows: make([][]any, 0, len(rows))}
	for i := range rows {
		vals := rows[i].DetailValues()
		row := make([]any, len(vals))
		for j, v := range vals {
			row[j] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func summaryTable(rows []model.SummaryRow) Table {
	t := Table{Name: TableSummary, Header: model.SummaryColumns(), Rows: make([][]any, 0, len(rows))}
	for _, s := range rows {
		t.Rows = append(t.Rows, []any{string(s.Metric), string(s.Bucket), s.Description, s.Count})
	}
	return t
}

func timeCell(t *time.Time) any {
	if t == nil {
		return nil
	}
	return normalize.FormatTimestamp(t)
}

func floatCell(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// CellString renders a cell as delimited text: nil is "", floats use the
// shortest representation that reads back exactly, anything else via fmt.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Records returns the table as text rows, header first.
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Header)
	for _, r := range t.Rows {
		rec := make([]string, len(r))
		for i, v := range r {
			rec[i] = CellString(v)
		}
		out = append(out, rec)
	}
	return out
}
