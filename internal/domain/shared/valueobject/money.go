package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	INR Currency = "INR" // Indian Rupee (default)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
)

// DefaultCurrency is the default currency for a shop
const DefaultCurrency = INR

// ParseCurrency validates an ISO 4217 code
func ParseCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", errors.New("currency cannot be empty")
	}
	if _, err := currency.ParseISO(code); err != nil {
		return "", fmt.Errorf("invalid currency %q: %w", code, err)
	}
	return Currency(code), nil
}

// Stored amounts are numeric(18,4) and discount percentages numeric(5,2).
const (
	AmountScale  = 4
	PercentScale = 2
)

var maxAmount = decimal.New(1, 18-AmountScale)

// FitsScale reports whether d carries no significant digit beyond places
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// FitsAmount reports whether amount is stored exactly by an amount column
func FitsAmount(amount decimal.Decimal) bool {
	return FitsScale(amount, AmountScale) && amount.Abs().LessThan(maxAmount)
}

// Money is a value object representing monetary amounts
// It is immutable - all operations return new Money instances
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, cur Currency) (Money, error) {
	if cur == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: cur,
	}, nil
}

// Zero returns a zero-value Money in the specified currency
func Zero(cur Currency) Money {
	return Money{amount: decimal.Zero, currency: cur}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns a new Money with the sum of both amounts
// Returns error if currencies don't match
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{
		amount:   m.amount.Add(other.amount),
		currency: m.currency,
	}, nil
}

// String returns "<amount> <code>" with two decimal places
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// Format renders the amount with the currency symbol for the given locale,
// e.g. "₹ 450.00" for INR in en-IN.
func (m Money) Format(tag language.Tag) string {
	unit, err := currency.ParseISO(string(m.currency))
	if err != nil {
		return m.String()
	}
	value, _ := m.amount.Round(2).Float64()
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(value)))
}
