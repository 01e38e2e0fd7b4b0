package history

import "time"

// SeriesPoint is one chart-ready (label, value) pair
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is an ordered chart-ready sequence, ascending by source timestamp.
// An empty series is a valid value, distinct from "not yet fetched" (nil).
type Series []SeriesPoint

// Label formats for the chart axis. Only the finest-grained range includes
// the hour of day.
const (
	intradayLabelFormat = "15:04"
	dailyLabelFormat    = "Jan 02"
)

// BuildSeries converts raw history points into chart-ready pairs. The
// mapping is 1:1 and order-preserving: index i of the output derives from
// index i of the input, and no point is ever dropped.
func BuildSeries(points []Point, token RangeToken) Series {
	layout := dailyLabelFormat
	if token == Range24H {
		layout = intradayLabelFormat
	}

	series := make(Series, len(points))
	for i := range points {
		point := &points[i]
		series[i] = SeriesPoint{
			Label: time.UnixMilli(point.Time).UTC().Format(layout),
			Value: point.Price(),
		}
	}

	return series
}
