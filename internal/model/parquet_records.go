package model

import "time"

// ETASpreadRecord mirrors the bol_eta_spread table for Parquet output.
type ETASpreadRecord struct {
	BOLID           string     `parquet:"bol_id"`
	NContainers     int64      `parquet:"n_containers"`
	NETAPresent     int64      `parquet:"n_eta_present"`
	NETAMissing     int64      `parquet:"n_eta_missing"`
	ETAMin          *time.Time `parquet:"eta_min,optional"`
	ETAMax          *time.Time `parquet:"eta_max,optional"`
	ETASpreadHours  *float64   `parquet:"eta_spread_hours,optional"`
	ETASpreadBucket string     `parquet:"eta_spread_bucket"`
}

// ATASpreadRecord mirrors the bol_ata_spread table for Parquet output.
type ATASpreadRecord struct {
	BOLID           string     `parquet:"bol_id"`
	NContainers     int64      `parquet:"n_containers"`
	NATAPresent     int64      `parquet:"n_ata_present"`
	NATAMissing     int64      `parquet:"n_ata_missing"`
	ATAMin          *time.Time `parquet:"ata_min,optional"`
	ATAMax          *time.Time `parquet:"ata_max,optional"`
	ATASpreadHours  *float64   `parquet:"ata_spread_hours,optional"`
	ATASpreadBucket string     `parquet:"ata_spread_bucket"`
}

// DetailRecord mirrors bol_mixed_ata_presence_detail for Parquet output.
type DetailRecord struct {
	BOLID        string `parquet:"bol_id"`
	Identifier   string `parquet:"identifier"`
	ShipmentType string `parquet:"shipment_type"`
	ETA          string `parquet:"eta"`
	ATA          string `parquet:"ata"`
}

// SummaryRecord mirrors the summary table for Parquet output.
type SummaryRecord struct {
	Metric      string `parquet:"metric"`
	Bucket      string `parquet:"bucket"`
	Description string `parquet:"description"`
	Count       int64  `parquet:"count"`
}

// ETARecord converts an aggregate into its ETA Parquet row.
func (a *BolAggregate) ETARecord() ETASpreadRecord {
	return ETASpreadRecord{
		BOLID:           a.BOLID,
		NContainers:     int64(a.NContainers),
		NETAPresent:     int64(a.ETA.Present),
		NETAMissing:     int64(a.ETA.Missing),
		ETAMin:          a.ETA.Min,
		ETAMax:          a.ETA.Max,
		ETASpreadHours:  a.ETA.SpreadHours,
		ETASpreadBucket: string(a.ETA.Bucket),
	}
}

// ATARecord converts an aggregate into its ATA Parquet row.
func (a *BolAggregate) ATARecord() ATASpreadRecord {
	return ATASpreadRecord{
		BOLID:           a.BOLID,
		NContainers:     int64(a.NContainers),
		NATAPresent:     int64(a.ATA.Present),
		NATAMissing:     int64(a.ATA.Missing),
		ATAMin:          a.ATA.Min,
		ATAMax:          a.ATA.Max,
		ATASpreadHours:  a.ATA.SpreadHours,
		ATASpreadBucket: string(a.ATA.Bucket),
	}
}
