package analysis

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gyeh/bolspread/internal/model"
	"github.com/gyeh/bolspread/internal/normalize"
)

// Aggregate groups rows by exact bol_id and reduces each group. The result
// does not depend on row order.
func Aggregate(rows []model.ContainerRow) map[string]*model.BolAggregate {
	aggs := fold(rows)
	for _, a := range aggs {
		finalize(a)
	}
	return aggs
}

// AggregateParallel splits rows into up to workers shards, folds them
// concurrently and merges the partial groups. It returns the same mapping as
// Aggregate. The only error is ctx cancellation.
func AggregateParallel(ctx context.Context, rows []model.ContainerRow, workers int) (map[string]*model.BolAggregate, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(rows) {
		workers = len(rows)
	}
	if workers <= 1 {
		return Aggregate(rows), nil
	}

	partials := make([]map[string]*model.BolAggregate, workers)
	shard := (len(rows) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		lo := i * shard
		hi := min(lo+shard, len(rows))
		if lo >= hi {
			partials[i] = map[string]*model.BolAggregate{}
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partials[i] = fold(rows[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	aggs := partials[0]
	for _, p := range partials[1:] {
		for id, b := range p {
			if a, ok := aggs[id]; ok {
				merge(a, b)
			} else {
				aggs[id] = b
			}
		}
	}
	for _, a := range aggs {
		finalize(a)
	}
	return aggs, nil
}

// Sorted returns the aggregates ordered by bol_id.
func Sorted(aggs map[string]*model.BolAggregate) []*model.BolAggregate {
	out := make([]*model.BolAggregate, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BOLID < out[j].BOLID })
	return out
}

func fold(rows []model.ContainerRow) map[string]*model.BolAggregate {
	aggs := make(map[string]*model.BolAggregate)
	for i := range rows {
		r := &rows[i]
		a, ok := aggs[r.BOLID]
		if !ok {
			a = &model.BolAggregate{BOLID: r.BOLID}
			aggs[r.BOLID] = a
		}
		a.NContainers++
		observe(&a.ETA, r.ETA, r.ETATime)
		observe(&a.ATA, r.ATA, r.ATATime)
	}
	return aggs
}

// observe counts presence on the raw text and widens the extrema with the
// parsed value. Unparsable text is present but has no timestamp.
func observe(s *model.MetricStats, raw string, ts *time.Time) {
	if normalize.IsBlank(raw) {
		s.Missing++
	} else {
		s.Present++
	}
	widen(s, ts, ts)
}

func widen(s *model.MetricStats, lo, hi *time.Time) {
	if lo != nil && (s.Min == nil || lo.Before(*s.Min)) {
		t := *lo
		s.Min = &t
	}
	if hi != nil && (s.Max == nil || hi.After(*s.Max)) {
		t := *hi
		s.Max = &t
	}
}

func merge(a, b *model.BolAggregate) {
	a.NContainers += b.NContainers
	mergeStats(&a.ETA, &b.ETA)
	mergeStats(&a.ATA, &b.ATA)
}

func mergeStats(a, b *model.MetricStats) {
	a.Present += b.Present
	a.Missing += b.Missing
	widen(a, b.Min, b.Max)
}

func finalize(a *model.BolAggregate) {
	for _, s := range []*model.MetricStats{&a.ETA, &a.ATA} {
		s.SpreadHours = SpreadHours(s.Min, s.Max)
		s.Bucket = Classify(s.SpreadHours)
	}
}
