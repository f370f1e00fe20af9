package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want Quantity
	}{
		{"0", 0},
		{"1", 10000},
		{"2.5", 25000},
		{"-3.25", -32500},
		{"0.0001", 1},
	}

	for _, tt := range tests {
		got, err := ParseQuantity(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseQuantity("not a number")
	assert.Error(t, err)
}

func TestQuantityString(t *testing.T) {
	assert.Equal(t, "2.5", NewQuantityFromFloat64(2.5).String())
	assert.Equal(t, "-3", NewQuantityFromFloat64(-3).String())
	assert.Equal(t, "0", Quantity(0).String())
}

func TestQuantitySubUnitPrecision(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3 in fixed point.
	a := NewQuantityFromFloat64(0.1)
	b := NewQuantityFromFloat64(0.2)
	assert.Equal(t, NewQuantityFromFloat64(0.3), a+b)
}

func TestQuantityJSONRoundTrip(t *testing.T) {
	type doc struct {
		Qty Quantity `json:"qty"`
	}

	data, err := json.Marshal(doc{Qty: NewQuantityFromFloat64(12.75)})
	require.NoError(t, err)

	var back doc
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, NewQuantityFromFloat64(12.75), back.Qty)
}

func TestQuantityNegAbs(t *testing.T) {
	q := NewQuantityFromFloat64(4)
	assert.Equal(t, NewQuantityFromFloat64(-4), q.Neg())
	assert.Equal(t, q, q.Neg().Abs())
	assert.True(t, q.IsPositive())
	assert.True(t, q.Neg().IsNegative())
	assert.True(t, Quantity(0).IsZero())
}
