package analysis

import (
	"context"

	"github.com/gyeh/bolspread/internal/model"
	"github.com/gyeh/bolspread/internal/normalize"
)

// Outcome distinguishes a populated report from the valid "no container
// rows" result. Faults are not an Outcome; they are returned as errors by
// the caller that reads the input.
type Outcome int

const (
	OutcomeReport Outcome = iota
	OutcomeEmpty
)

func (o Outcome) String() string {
	if o == OutcomeEmpty {
		return "empty"
	}
	return "report"
}

// Options tunes a single Analyze call.
type Options struct {
	Parser normalize.TimestampParser
	// Workers > 1 aggregates in parallel shards.
	Workers int
}

// Result is the full output of one run.
type Result struct {
	Outcome    Outcome
	Containers []model.ContainerRow
	Aggregates map[string]*model.BolAggregate
	// BOLs holds Aggregates ordered by bol_id.
	BOLs    []*model.BolAggregate
	Mixed   []model.ContainerRow
	Summary []model.SummaryRow
}

// MixedCount returns the number of BOLs with mixed ATA presence.
func (r *Result) MixedCount() int {
	return r.Summary[len(r.Summary)-1].Count
}

// Analyze runs filter → parse → aggregate → classify → detect → summarize.
// With no container rows it returns OutcomeEmpty with empty tables and a
// summary holding only the zero mixed-presence row. The only error is ctx
// cancellation during parallel aggregation.
func Analyze(ctx context.Context, rows []model.InputRow, opts Options) (*Result, error) {
	containers := Containers(rows, opts.Parser)

	aggs, err := AggregateParallel(ctx, containers, opts.Workers)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Outcome:    OutcomeReport,
		Containers: containers,
		Aggregates: aggs,
		BOLs:       Sorted(aggs),
		Mixed:      DetectMixed(aggs, containers),
		Summary:    BuildSummary(aggs),
	}
	if len(containers) == 0 {
		res.Outcome = OutcomeEmpty
	}
	return res, nil
}
