package model

import "time"

// MetricStats is the per-BOL reduction of one timestamp column.
// Present+Missing always equals the BOL's container count. SpreadHours is
// non-nil iff both Min and Max are non-nil.
type MetricStats struct {
	Present     int
	Missing     int
	Min         *time.Time
	Max         *time.Time
	SpreadHours *float64
	Bucket      Bucket
}

// BolAggregate summarizes all container rows sharing one bol_id.
type BolAggregate struct {
	BOLID       string
	NContainers int
	ETA         MetricStats
	ATA         MetricStats
}

// Stats returns the stats for the given metric. It returns the zero value
// for metrics that have no per-BOL stats.
func (a *BolAggregate) Stats(m Metric) MetricStats {
	switch m {
	case MetricETA:
		return a.ETA
	case MetricATA:
		return a.ATA
	}
	return MetricStats{}
}

// MixedATAPresence reports whether some containers carry an ATA and others don't.
func (a *BolAggregate) MixedATAPresence() bool {
	return a.ATA.Present > 0 && a.ATA.Missing > 0
}

// SpreadColumns returns the ordered header of the bol_<metric>_spread table.
func SpreadColumns(m Metric) []string {
	p := m.Prefix()
	return []string{
		"bol_id",
		"n_containers",
		"n_" + p + "_present",
		"n_" + p + "_missing",
		p + "_min",
		p + "_max",
		p + "_spread_hours",
		p + "_spread_bucket",
	}
}
