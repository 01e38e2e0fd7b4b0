package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePoints(n int, startMillis int64, stepMillis int64) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{
			PriceUSD: fmt.Sprintf("%d.5", 100+i),
			Time:     startMillis + int64(i)*stepMillis,
		}
	}
	return points
}

func TestBuildSeries_OneToOneOrderPreserving(t *testing.T) {
	points := makePoints(24, 1700000000000, 3600000)

	series := BuildSeries(points, Range7D)
	require.Len(t, series, len(points))

	for i := range points {
		assert.Equal(t, points[i].Price(), series[i].Value, "index %d", i)
	}
}

func TestBuildSeries_IntradayLabelsIncludeHour(t *testing.T) {
	at := time.Date(2023, time.November, 14, 22, 15, 0, 0, time.UTC)
	points := []Point{{PriceUSD: "100", Time: at.UnixMilli()}}

	series := BuildSeries(points, Range24H)
	require.Len(t, series, 1)
	assert.Equal(t, "22:15", series[0].Label)
}

func TestBuildSeries_CoarseRangesUseDateLabels(t *testing.T) {
	at := time.Date(2023, time.November, 14, 22, 15, 0, 0, time.UTC)
	points := []Point{{PriceUSD: "100", Time: at.UnixMilli()}}

	for _, token := range []RangeToken{Range7D, Range30D, RangeAll} {
		series := BuildSeries(points, token)
		require.Len(t, series, 1)
		assert.Equal(t, "Nov 14", series[0].Label, "token %s", token)
	}
}

func TestBuildSeries_UnparseablePriceKept(t *testing.T) {
	points := []Point{
		{PriceUSD: "100.5", Time: 1700000000000},
		{PriceUSD: "garbage", Time: 1700003600000},
		{PriceUSD: "101.5", Time: 1700007200000},
	}

	series := BuildSeries(points, Range7D)
	require.Len(t, series, 3)
	assert.Equal(t, 100.5, series[0].Value)
	assert.Equal(t, 0.0, series[1].Value)
	assert.Equal(t, 101.5, series[2].Value)
}

func TestBuildSeries_Empty(t *testing.T) {
	series := BuildSeries(nil, Range24H)
	assert.NotNil(t, series)
	assert.Empty(t, series)
}
