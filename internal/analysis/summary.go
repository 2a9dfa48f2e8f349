package analysis

import (
	"sort"

	"github.com/gyeh/bolspread/internal/model"
)

// BuildSummary counts BOLs per observed bucket for ETA, then ATA, and ends
// with exactly one ATA_MIXED_PRESENCE row. Buckets nobody falls into are
// omitted; the mixed row is always present, even at zero. Within a metric,
// rows go by descending count, ties by bucket label.
func BuildSummary(aggs map[string]*model.BolAggregate) []model.SummaryRow {
	var rows []model.SummaryRow
	for _, m := range []model.Metric{model.MetricETA, model.MetricATA} {
		counts := make(map[model.Bucket]int)
		for _, a := range aggs {
			counts[a.Stats(m).Bucket]++
		}
		rows = append(rows, countRows(m, counts)...)
	}

	rows = append(rows, model.SummaryRow{
		Metric:      model.MetricATAMixedPresence,
		Bucket:      model.BucketMixedPresentAndMissing,
		Description: model.BucketMixedPresentAndMissing.Description(),
		Count:       len(MixedATABOLs(aggs)),
	})
	return rows
}

func countRows(m model.Metric, counts map[model.Bucket]int) []model.SummaryRow {
	out := make([]model.SummaryRow, 0, len(counts))
	for b, n := range counts {
		out = append(out, model.SummaryRow{
			Metric:      m,
			Bucket:      b,
			Description: b.Description(),
			Count:       n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Bucket < out[j].Bucket
	})
	return out
}
