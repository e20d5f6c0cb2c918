package ledger

import "strings"

// PaymentMode is how a sale was paid
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeUPI    PaymentMode = "UPI"
	PaymentModeCredit PaymentMode = "CREDIT"
)

// PaymentModes lists every accepted payment mode
var PaymentModes = []PaymentMode{PaymentModeCash, PaymentModeUPI, PaymentModeCredit}

// IsValid reports whether the payment mode is accepted
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCredit:
		return true
	}
	return false
}

// String returns the string representation
func (m PaymentMode) String() string {
	return string(m)
}

// ParsePaymentMode parses a payment mode, ignoring case and surrounding spaces
func ParsePaymentMode(value string) (PaymentMode, error) {
	mode := PaymentMode(strings.ToUpper(strings.TrimSpace(value)))
	if !mode.IsValid() {
		return "", ErrInvalidPaymentMode
	}
	return mode, nil
}
