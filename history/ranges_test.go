package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCatalogEntries(t *testing.T) {
	tests := []struct {
		token    RangeToken
		interval string
		days     int
	}{
		{Range24H, "m5", 1},
		{Range7D, "h1", 7},
		{Range30D, "h2", 30},
		{RangeAll, "d1", 2000},
	}

	for _, tt := range tests {
		t.Run(string(tt.token), func(t *testing.T) {
			spec := MustRange(tt.token)
			assert.Equal(t, tt.interval, spec.Interval)
			assert.Equal(t, tt.days, spec.LookbackDays)
		})
	}
}

func TestMustRange_UnknownTokenPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustRange("90D")
	})
}

func TestKnownRange(t *testing.T) {
	assert.True(t, KnownRange(Range24H))
	assert.True(t, KnownRange(RangeAll))
	assert.False(t, KnownRange("1Y"))
	assert.False(t, KnownRange(""))
}

func TestWindow(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	start, end := MustRange(RangeAll).Window(now)
	assert.Equal(t, int64(1700000000000), end)
	assert.Equal(t, int64(1700000000000)-2000*86400000, start)

	start, end = MustRange(Range24H).Window(now)
	assert.Equal(t, end-86400000, start)
}
