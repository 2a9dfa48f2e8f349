package model

// Bucket is a spread severity label.
type Bucket string

const (
	BucketNoDifference           Bucket = "NO_DIFFERENCE"
	BucketBetween1And24Hours     Bucket = "BETWEEN_1_AND_24_HOURS"
	BucketMoreThan24Hours        Bucket = "MORE_THAN_24_HOURS"
	BucketNoValidTimestamp       Bucket = "NO_VALID_TIMESTAMP"
	BucketMixedPresentAndMissing Bucket = "MIXED_PRESENT_AND_MISSING"
)

// SpreadBuckets lists the four spread buckets in severity order.
var SpreadBuckets = []Bucket{
	BucketNoDifference,
	BucketBetween1And24Hours,
	BucketMoreThan24Hours,
	BucketNoValidTimestamp,
}

var bucketDescriptions = map[Bucket]string{
	BucketNoDifference:           "Spread = 0 hours",
	BucketBetween1And24Hours:     "Spread > 0 and ≤ 24 hours",
	BucketMoreThan24Hours:        "Spread > 24 hours",
	BucketNoValidTimestamp:       "No parsable timestamps for this metric in the BOL",
	BucketMixedPresentAndMissing: "BOLs where some containers have ATA and others do not",
}

// Description returns the fixed human-readable meaning of the bucket.
// Unknown labels describe themselves.
func (b Bucket) Description() string {
	if d, ok := bucketDescriptions[b]; ok {
		return d
	}
	return string(b)
}

// Metric names the measurement a summary row counts.
type Metric string

const (
	MetricETA              Metric = "ETA"
	MetricATA              Metric = "ATA"
	MetricATAMixedPresence Metric = "ATA_MIXED_PRESENCE"
)

// Prefix returns the lowercase column prefix used in spread tables ("eta", "ata").
func (m Metric) Prefix() string {
	switch m {
	case MetricETA:
		return "eta"
	case MetricATA:
		return "ata"
	}
	return ""
}
