package shop

import (
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
)

// Settings is the immutable configuration of a shop that the reporting side
// needs: display name, currency, locale, time zone and UPI payee.
type Settings struct {
	name     string
	currency valueobject.Currency
	locale   language.Tag
	location *time.Location
	upiID    string
}

// NewSettings validates and builds shop settings. Empty currency, locale or
// time zone fall back to INR, en-IN and Asia/Kolkata.
func NewSettings(name, currency, locale, timezone, upiID string) (Settings, error) {
	s := Settings{
		name:  strings.TrimSpace(name),
		upiID: strings.TrimSpace(upiID),
	}

	if currency == "" {
		currency = string(valueobject.DefaultCurrency)
	}
	cur, err := valueobject.ParseCurrency(currency)
	if err != nil {
		return Settings{}, shared.NewValidationError("INVALID_CURRENCY", err.Error())
	}
	s.currency = cur

	if locale == "" {
		locale = "en-IN"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Settings{}, shared.NewValidationError("INVALID_LOCALE", "Unknown locale: "+locale)
	}
	s.locale = tag

	if timezone == "" {
		timezone = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Settings{}, shared.NewValidationError("INVALID_TIMEZONE", "Unknown time zone: "+timezone)
	}
	s.location = loc

	if s.upiID != "" && !strings.Contains(s.upiID, "@") {
		return Settings{}, shared.NewValidationError("INVALID_UPI_ID", "UPI ID must look like name@bank")
	}

	return s, nil
}

// DefaultSettings returns settings with every default applied
func DefaultSettings() Settings {
	return Settings{
		currency: valueobject.DefaultCurrency,
		locale:   language.MustParse("en-IN"),
		location: time.UTC,
	}
}

// Name returns the shop display name
func (s Settings) Name() string { return s.name }

// Currency returns the shop currency
func (s Settings) Currency() valueobject.Currency { return s.currency }

// Locale returns the formatting locale
func (s Settings) Locale() language.Tag { return s.locale }

// Location returns the time zone that defines the shop day
func (s Settings) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// UPIID returns the UPI payee address, if any
func (s Settings) UPIID() string { return s.upiID }
