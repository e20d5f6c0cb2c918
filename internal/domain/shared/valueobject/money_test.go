package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), INR)
		require.NoError(t, err)
		assert.Equal(t, INR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestParseCurrency(t *testing.T) {
	t.Run("normalizes case", func(t *testing.T) {
		c, err := ParseCurrency(" inr ")
		require.NoError(t, err)
		assert.Equal(t, INR, c)
	})

	t.Run("rejects unknown code", func(t *testing.T) {
		_, err := ParseCurrency("XYZQ")
		assert.Error(t, err)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := ParseCurrency("")
		assert.Error(t, err)
	})
}

func TestMoneyAdd(t *testing.T) {
	a, _ := NewMoney(decimal.NewFromInt(100), INR)
	b, _ := NewMoney(decimal.NewFromInt(350), INR)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(450)))

	c, _ := NewMoney(decimal.NewFromInt(1), USD)
	_, err = a.Add(c)
	assert.Error(t, err)
}

func TestMoneyString(t *testing.T) {
	m, _ := NewMoney(decimal.RequireFromString("450.5"), INR)
	assert.Equal(t, "450.50 INR", m.String())
	assert.Equal(t, "0.00 USD", Zero(USD).String())
}

func TestMoneyFormat(t *testing.T) {
	m, _ := NewMoney(decimal.NewFromInt(450), USD)
	formatted := m.Format(language.AmericanEnglish)
	assert.Contains(t, formatted, "$")
	assert.Contains(t, formatted, "450")
}
