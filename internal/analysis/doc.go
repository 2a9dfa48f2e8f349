// Package analysis is the BOL timing-consistency engine.
//
// Input rows are filtered down to containers, their ETA/ATA cells parsed,
// then grouped by the exact bol_id string. Each group is reduced to
// presence counts and timestamp extrema, the extrema are turned into an
// hour spread, and the spread is bucketed. BOLs whose containers disagree on
// whether an ATA exists are pulled out row by row, and everything is
// counted into a summary.
//
// Nothing here performs I/O or logs. Every function is deterministic in its
// input; the reduction is order-independent so rows may be aggregated in
// parallel shards.
package analysis
