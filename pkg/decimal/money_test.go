package decimal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyConversions(t *testing.T) {
	annual := NewMoney(2400)
	assert.Equal(t, "200.00", annual.Monthly().String())
	assert.Equal(t, "2400.00", annual.Monthly().Annual().String())
}

func TestMoneyRound(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.NewFromFloat(10.005))
	assert.Equal(t, "10.00", m.Round().String(), "banker's rounding to even cent")
}

func TestMoneyFormat(t *testing.T) {
	assert.Equal(t, "$1234.56", NewMoney(1234.56).Format())
	assert.Equal(t, "-$12.00", NewMoney(-12).Format())
	assert.Equal(t, "$0.00", Zero().Format())
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "5.75%", FormatPercent(decimal.NewFromFloat(5.75)))
	assert.Equal(t, "0.00%", FormatPercent(decimal.Zero))
}
