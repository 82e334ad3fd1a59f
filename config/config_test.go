package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ClockReset, cfg.StakeClockMode)
	assert.NotEmpty(t, cfg.Admin)
	assert.NotEmpty(t, cfg.Treasury)
	assert.NotEqual(t, cfg.Treasury, cfg.FeeRecipient)
}

func TestLoadRejectsBadClockMode(t *testing.T) {
	t.Setenv("BRATS_STAKE_CLOCK", "sideways")
	_, err := Load()
	assert.Error(t, err)
}

func TestDefaultStages(t *testing.T) {
	stages := DefaultStages()
	require.Len(t, stages, 8)
	for i, st := range stages {
		assert.Equal(t, uint8(i+1), st.Stage)
		assert.EqualValues(t, 2_500_000_000, st.TokensSold)
	}
	// Prices climb 4000 per stage starting at 21000.
	assert.EqualValues(t, 21000, stages[0].Price)
	assert.EqualValues(t, 49000, stages[7].Price)
}

func TestPriceFixedPoint(t *testing.T) {
	d := PriceToDecimal(21000)
	assert.True(t, d.Equal(decimal.RequireFromString("0.00021")), "got %s", d)

	back := PriceFromDecimal(decimal.RequireFromString("0.00049"))
	assert.EqualValues(t, 49000, back)
}
