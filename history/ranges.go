package history

import (
	"fmt"
	"time"
)

// RangeToken selects a sampling interval and lookback window
type RangeToken string

const (
	Range24H RangeToken = "24H"
	Range7D  RangeToken = "7D"
	Range30D RangeToken = "30D"
	RangeAll RangeToken = "ALL"
)

// RangeSpec maps a range token to the upstream sampling interval and the
// lookback window in days
type RangeSpec struct {
	Token        RangeToken
	Interval     string
	LookbackDays int
}

const millisPerDay = 24 * 60 * 60 * 1000

// Fixed catalog; no dynamic entries
var catalog = map[RangeToken]RangeSpec{
	Range24H: {Token: Range24H, Interval: "m5", LookbackDays: 1},
	Range7D:  {Token: Range7D, Interval: "h1", LookbackDays: 7},
	Range30D: {Token: Range30D, Interval: "h2", LookbackDays: 30},
	RangeAll: {Token: RangeAll, Interval: "d1", LookbackDays: 2000},
}

// AllRanges returns the catalog entries in canonical display order
func AllRanges() []RangeSpec {
	return []RangeSpec{
		catalog[Range24H],
		catalog[Range7D],
		catalog[Range30D],
		catalog[RangeAll],
	}
}

// ErrUnknownRange builds the error returned when a caller passes a
// token outside the catalog.
func ErrUnknownRange(token RangeToken) error {
	return fmt.Errorf("history: unknown range token %q", token)
}

// KnownRange reports whether token is part of the catalog
func KnownRange(token RangeToken) bool {
	_, ok := catalog[token]
	return ok
}

// MustRange returns the spec for token. An unknown token is a programming
// error and panics.
func MustRange(token RangeToken) RangeSpec {
	spec, ok := catalog[token]
	if !ok {
		panic(fmt.Sprintf("history: unknown range token %q", token))
	}
	return spec
}

// Window computes the epoch-millisecond request bounds for the spec's
// lookback ending at now
func (s RangeSpec) Window(now time.Time) (start, end int64) {
	end = now.UnixMilli()
	start = end - int64(s.LookbackDays)*millisPerDay
	return start, end
}
