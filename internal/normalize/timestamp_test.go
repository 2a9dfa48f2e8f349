package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_Blank(t *testing.T) {
	for _, s := range []string{"", "   ", "\t"} {
		assert.Nil(t, ParseTimestamp(s), "input %q", s)
	}
}

func TestParseTimestamp_Unparsable(t *testing.T) {
	for _, s := range []string{"not a date", "TBD", "??", "2024-13-45T99:99:99"} {
		assert.Nil(t, ParseTimestamp(s), "input %q", s)
	}
}

func TestParseTimestamp_CommonFormats(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01T00:00:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01T12:00:00", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"2024-02-01", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01 12:30:00", time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)},
		{"  2024-02-01  ", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01T12:00:00Z", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"2024-01-01T12:00:00+02:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseTimestamp(tt.in)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s want %s", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestTimestampParser_DayFirst(t *testing.T) {
	monthFirst := TimestampParser{}.Parse("02/03/2024")
	require.NotNil(t, monthFirst)
	assert.Equal(t, time.February, monthFirst.Month())
	assert.Equal(t, 3, monthFirst.Day())

	dayFirst := TimestampParser{DayFirst: true}.Parse("02/03/2024")
	require.NotNil(t, dayFirst)
	assert.Equal(t, time.March, dayFirst.Month())
	assert.Equal(t, 2, dayFirst.Day())
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "", FormatTimestamp(nil))

	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01T12:00:00Z", FormatTimestamp(&ts))

	frac := time.Date(2024, 1, 1, 12, 0, 0, 500_000_000, time.UTC)
	assert.Equal(t, "2024-01-01T12:00:00.5Z", FormatTimestamp(&frac))
}

func TestFormatTimestamp_RoundTrip(t *testing.T) {
	for _, ts := range []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 2, 29, 6, 7, 8, 0, time.UTC),
	} {
		back := ParseTimestamp(FormatTimestamp(&ts))
		require.NotNil(t, back, "reparse %s", ts)
		assert.True(t, ts.Equal(*back), "got %s want %s", back, ts)
	}
}

func TestShipmentType(t *testing.T) {
	assert.Equal(t, "CONTAINER", ShipmentType("  Container "))
	assert.Equal(t, "CONTAINER_ID", ShipmentType("container_id"))
	assert.Equal(t, "", ShipmentType("   "))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t "))
	assert.False(t, IsBlank(" x "))
}
