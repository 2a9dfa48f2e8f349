package analysis

import "github.com/gyeh/bolspread/internal/model"

// MixedATABOLs returns the set of bol_ids with at least one present and at
// least one missing ATA.
func MixedATABOLs(aggs map[string]*model.BolAggregate) map[string]bool {
	out := make(map[string]bool)
	for id, a := range aggs {
		if a.MixedATAPresence() {
			out[id] = true
		}
	}
	return out
}

// DetectMixed returns every row whose BOL has mixed ATA presence, in the
// order the rows appear. The result is empty, never nil, when no BOL
// qualifies.
func DetectMixed(aggs map[string]*model.BolAggregate, rows []model.ContainerRow) []model.ContainerRow {
	mixed := MixedATABOLs(aggs)
	out := make([]model.ContainerRow, 0)
	if len(mixed) == 0 {
		return out
	}
	for _, r := range rows {
		if mixed[r.BOLID] {
			out = append(out, r)
		}
	}
	return out
}
