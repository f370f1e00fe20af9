package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockmaster/internal/core/types"
)

func q(f float64) types.Quantity { return types.NewQuantityFromFloat64(f) }

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		reorderPoint float64
		want         Level
	}{
		{"zero is out of stock", 0, 10, LevelOutOfStock},
		{"below threshold is low", 3, 10, LevelLow},
		{"exactly at threshold is low", 10, 10, LevelLow},
		{"just above threshold is in stock", 10.0001, 10, LevelInStock},
		{"well above threshold is in stock", 50, 10, LevelInStock},
		{"zero threshold, positive stock", 1, 0, LevelInStock},
		{"zero threshold, zero stock", 0, 0, LevelOutOfStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(q(tt.total), q(tt.reorderPoint)))
		})
	}
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, q(17), Suggest(LevelLow, q(3), q(20)))
	assert.Equal(t, q(20), Suggest(LevelOutOfStock, q(0), q(20)))
	assert.True(t, Suggest(LevelInStock, q(25), q(20)).IsZero())
	assert.True(t, Suggest(LevelLow, q(5), q(0)).IsZero(), "no optimal target, no suggestion")
}
