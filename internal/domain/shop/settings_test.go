package shop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
)

func TestNewSettings(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		s, err := NewSettings("Corner Store", "", "", "", "")
		require.NoError(t, err)
		assert.Equal(t, "Corner Store", s.Name())
		assert.Equal(t, valueobject.INR, s.Currency())
		assert.Equal(t, "en-IN", s.Locale().String())
		assert.Equal(t, "Asia/Kolkata", s.Location().String())
		assert.Empty(t, s.UPIID())
	})

	t.Run("accepts explicit values", func(t *testing.T) {
		s, err := NewSettings("Shop", "usd", "en-US", "UTC", "shop@okbank")
		require.NoError(t, err)
		assert.Equal(t, valueobject.USD, s.Currency())
		assert.Equal(t, "UTC", s.Location().String())
		assert.Equal(t, "shop@okbank", s.UPIID())
	})

	tests := []struct {
		name                        string
		currency, locale, tz, upiID string
		code                        string
	}{
		{"bad currency", "RUPEES", "", "", "", "INVALID_CURRENCY"},
		{"bad locale", "", "!!", "", "", "INVALID_LOCALE"},
		{"bad time zone", "", "", "Mars/Olympus", "", "INVALID_TIMEZONE"},
		{"bad upi id", "", "", "", "shop", "INVALID_UPI_ID"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewSettings("Shop", tt.currency, tt.locale, tt.tz, tt.upiID)
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, valueobject.INR, s.Currency())
	assert.NotNil(t, s.Location())
}
