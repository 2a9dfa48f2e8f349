package model

import "time"

// SummaryRow is one line of the summary table.
type SummaryRow struct {
	Metric      Metric
	Bucket      Bucket
	Description string
	Count       int
}

// SummaryColumns returns the ordered header of the summary table.
func SummaryColumns() []string {
	return []string{"metric", "bucket", "description", "count"}
}

// RunSummary captures metrics from a single report run.
type RunSummary struct {
	ReportID       string
	FilePath       string
	FileSHA256     string
	OutputPath     string
	RowsRead       int64
	ContainerRows  int64
	BOLs           int64
	MixedATABOLs   int64
	RowsLoaded     int64
	DurationRead   time.Duration
	DurationReduce time.Duration
	DurationWrite  time.Duration
	DurationLoad   time.Duration
	DurationTotal  time.Duration
}
