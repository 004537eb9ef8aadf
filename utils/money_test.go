package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommissionAmount(t *testing.T) {
	tests := []struct {
		name       string
		orderTotal float64
		rate       float64
		want       float64
	}{
		{"whole result", 1000, 10, 100},
		{"two decimal result", 2499.50, 10, 249.95},
		{"rounds half up", 100.25, 10, 10.03},
		{"rounds down", 100.24, 10, 10.02},
		{"float repr does not leak", 0.1, 10, 0.01},
		{"zero rate", 500, 0, 0},
		{"fractional rate", 999.99, 7.5, 75.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommissionAmount(tt.orderTotal, tt.rate))
		})
	}
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.03, RoundMoney(10.025))
	assert.Equal(t, 10.02, RoundMoney(10.024))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, 100.0, RoundMoney(99.995))
}
