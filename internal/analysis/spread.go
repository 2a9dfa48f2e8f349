package analysis

import (
	"fmt"
	"time"

	"github.com/gyeh/bolspread/internal/model"
	"github.com/gyeh/bolspread/internal/normalize"
)

// SpreadHours returns max-min in fractional hours, or nil when either bound
// is nil. It panics if max is before min; Aggregate never produces that.
func SpreadHours(min, max *time.Time) *float64 {
	if min == nil || max == nil {
		return nil
	}
	if max.Before(*min) {
		panic(fmt.Sprintf("analysis: spread max %s precedes min %s",
			normalize.FormatTimestamp(max), normalize.FormatTimestamp(min)))
	}
	// Seconds and nanoseconds separately: time.Duration saturates near 292 years.
	secs := max.Unix() - min.Unix()
	nanos := max.Nanosecond() - min.Nanosecond()
	h := float64(secs)/3600 + float64(nanos)/3.6e12
	return &h
}

// Classify maps a spread to its bucket:
//
//	nil        NO_VALID_TIMESTAMP
//	0          NO_DIFFERENCE
//	(0, 24]    BETWEEN_1_AND_24_HOURS
//	> 24       MORE_THAN_24_HOURS
//
// Negative spreads cannot come out of SpreadHours and fall in the last bucket.
func Classify(spread *float64) model.Bucket {
	switch {
	case spread == nil:
		return model.BucketNoValidTimestamp
	case *spread == 0:
		return model.BucketNoDifference
	case *spread > 0 && *spread <= 24:
		return model.BucketBetween1And24Hours
	default:
		return model.BucketMoreThan24Hours
	}
}
