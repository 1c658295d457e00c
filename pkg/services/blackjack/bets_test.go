package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBetOptions(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		want    []int64
	}{
		{"broke", 0, nil},
		{"below smallest tier goes all in", 7, []int64{7}},
		{"exact tier has no extra all-in", 100, []int64{10, 25, 50, 100}},
		{"between tiers appends all-in", 120, []int64{10, 25, 50, 100, 120}},
		{"starting balance", 1000, []int64{10, 25, 50, 100, 250, 500, 1000}},
		{"rich player", 9999, []int64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 9999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BetOptions(tt.balance))
		})
	}
}

func TestBetOptionsNeverExceedBalance(t *testing.T) {
	for _, balance := range []int64{1, 9, 11, 49, 251, 4999, 100000} {
		for _, option := range BetOptions(balance) {
			assert.LessOrEqual(t, option, balance)
			assert.Positive(t, option)
		}
	}
}

func TestBetOptionsCap(t *testing.T) {
	assert.LessOrEqual(t, len(BetOptions(1<<40)), MaxBetOptions)
}

func TestValidBet(t *testing.T) {
	assert.True(t, ValidBet(100, 1000))
	assert.True(t, ValidBet(1000, 1000))
	assert.False(t, ValidBet(0, 1000))
	assert.False(t, ValidBet(-5, 1000))
	assert.False(t, ValidBet(1001, 1000))
}
