package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value float64
		ok    bool
	}{
		{"plain integer", "1000000", 1000000, true},
		{"decimal", "0.04512", 0.04512, true},
		{"negative", "-3.72", -3.72, true},
		{"scientific notation", "1.2e9", 1.2e9, true},
		{"empty", "", 0, false},
		{"garbage", "not-a-number", 0, false},
		{"nan", "NaN", 0, false},
		{"infinity", "Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := ParseDecimal(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.value, value)
			}
		})
	}
}

func TestSnapshotAccessors(t *testing.T) {
	snapshot := Snapshot{
		ID:                "bitcoin",
		Symbol:            "BTC",
		Supply:            "19600000",
		MaxSupply:         "21000000",
		MarketCapUSD:      "850000000000",
		VolumeUSD24Hr:     "12000000000",
		PriceUSD:          "43367.12",
		ChangePercent24Hr: "1.53",
	}

	marketCap, ok := snapshot.MarketCap()
	assert.True(t, ok)
	assert.Equal(t, float64(850000000000), marketCap)

	volume, ok := snapshot.Volume()
	assert.True(t, ok)
	assert.Equal(t, float64(12000000000), volume)

	price, ok := snapshot.Price()
	assert.True(t, ok)
	assert.Equal(t, 43367.12, price)

	change, ok := snapshot.ChangePercent()
	assert.True(t, ok)
	assert.Equal(t, 1.53, change)

	maxSupply, ok := snapshot.MaximumSupply()
	assert.True(t, ok)
	assert.Equal(t, float64(21000000), maxSupply)
}

func TestSnapshotAccessors_UncappedAsset(t *testing.T) {
	// Assets without a supply cap have an empty maxSupply
	snapshot := Snapshot{ID: "ethereum", MaxSupply: ""}

	_, ok := snapshot.MaximumSupply()
	assert.False(t, ok)
}
