package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/shared"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newSale(mode PaymentMode) Sale {
	return Sale{
		ShopID:         uuid.New(),
		EnteredAmount:  d("100"),
		StaffID:        uuid.New(),
		PaymentMode:    mode,
		DiscountAmount: decimal.Zero,
	}
}

func TestNewTransaction(t *testing.T) {
	t.Run("records a cash sale", func(t *testing.T) {
		sale := newSale(PaymentModeCash)
		itemID := uuid.New()
		sale.ItemID = &itemID
		sale.DiscountAmount = d("5")

		tx, err := NewTransaction(sale)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, tx.ID)
		assert.False(t, tx.CreatedAt.IsZero())
		assert.Equal(t, sale.ShopID, tx.ShopID)
		assert.Equal(t, sale.StaffID, tx.StaffID)
		assert.Equal(t, &itemID, tx.InferredItemID)
		assert.True(t, tx.EnteredAmount.Equal(d("100")))
		assert.True(t, tx.DiscountAmount.Equal(d("5")))
		assert.False(t, tx.DiscountIsOverride)
		assert.False(t, tx.IsCreditSettled)
		assert.Nil(t, tx.CreditSettledAt)

		events := tx.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, shared.ChannelTransactionsChanged, events[0].EventType())
		assert.Equal(t, TransactionActionRecorded, events[0].Action())
	})

	t.Run("credit sale starts unsettled", func(t *testing.T) {
		tx, err := NewTransaction(newSale(PaymentModeCredit))
		require.NoError(t, err)
		assert.True(t, tx.IsCredit())
		assert.True(t, tx.IsOutstanding())
	})

	t.Run("keeps override flag", func(t *testing.T) {
		sale := newSale(PaymentModeUPI)
		sale.IsOverride = true
		tx, err := NewTransaction(sale)
		require.NoError(t, err)
		assert.True(t, tx.DiscountIsOverride)
	})

	tests := []struct {
		name   string
		mutate func(s *Sale)
		want   error
	}{
		{"zero amount", func(s *Sale) { s.EnteredAmount = decimal.Zero }, ErrInvalidAmount},
		{"negative amount", func(s *Sale) { s.EnteredAmount = d("-1") }, ErrInvalidAmount},
		{"negative discount", func(s *Sale) { s.DiscountAmount = d("-1") }, ErrInvalidDiscount},
		{"discount above amount", func(s *Sale) { s.DiscountAmount = d("100.01") }, ErrDiscountExceedsAmount},
		{"unknown payment mode", func(s *Sale) { s.PaymentMode = "CARD" }, ErrInvalidPaymentMode},
		{"missing staff", func(s *Sale) { s.StaffID = uuid.Nil }, ErrUnknownStaff},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			sale := newSale(PaymentModeCash)
			tt.mutate(&sale)
			tx, err := NewTransaction(sale)
			assert.Nil(t, tx)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("discount equal to amount is allowed", func(t *testing.T) {
		sale := newSale(PaymentModeCash)
		sale.DiscountAmount = d("100")
		_, err := NewTransaction(sale)
		assert.NoError(t, err)
	})
}

func TestTransaction_SettleCredit(t *testing.T) {
	t.Run("settles an open credit sale once", func(t *testing.T) {
		tx, err := NewTransaction(newSale(PaymentModeCredit))
		require.NoError(t, err)
		tx.ClearDomainEvents()

		at := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
		require.NoError(t, tx.SettleCredit(at))
		assert.True(t, tx.IsCreditSettled)
		require.NotNil(t, tx.CreditSettledAt)
		assert.Equal(t, at, *tx.CreditSettledAt)
		assert.False(t, tx.IsOutstanding())
		require.Len(t, tx.GetDomainEvents(), 1)
		assert.Equal(t, TransactionActionCreditSettled, tx.GetDomainEvents()[0].Action())

		assert.ErrorIs(t, tx.SettleCredit(at), ErrAlreadySettled)
		assert.True(t, tx.IsCreditSettled)
	})

	t.Run("rejects non-credit sales", func(t *testing.T) {
		for _, mode := range []PaymentMode{PaymentModeCash, PaymentModeUPI} {
			tx, err := NewTransaction(newSale(mode))
			require.NoError(t, err)
			assert.ErrorIs(t, tx.SettleCredit(time.Now()), ErrNotCreditSale)
			assert.False(t, tx.IsCreditSettled)
		}
	})
}

func TestParsePaymentMode(t *testing.T) {
	mode, err := ParsePaymentMode(" upi ")
	require.NoError(t, err)
	assert.Equal(t, PaymentModeUPI, mode)

	_, err = ParsePaymentMode("card")
	assert.ErrorIs(t, err, ErrInvalidPaymentMode)

	_, err = ParsePaymentMode("")
	assert.ErrorIs(t, err, ErrInvalidPaymentMode)
}

func TestCheckDiscountPolicy(t *testing.T) {
	item := &catalog.Item{
		BasePrice:             d("100"),
		MaxDiscountPercentage: d("10"),
		MaxDiscountFixed:      decimal.Zero,
	}

	t.Run("allows discount at the limit", func(t *testing.T) {
		assert.NoError(t, CheckDiscountPolicy(item, d("10"), false))
	})

	t.Run("rejects discount above the limit", func(t *testing.T) {
		assert.ErrorIs(t, CheckDiscountPolicy(item, d("11"), false), ErrDiscountLimitExceeded)
	})

	t.Run("override bypasses the limit", func(t *testing.T) {
		assert.NoError(t, CheckDiscountPolicy(item, d("11"), true))
	})

	t.Run("no item means no policy", func(t *testing.T) {
		assert.NoError(t, CheckDiscountPolicy(nil, d("50"), false))
	})

	t.Run("fixed limit applies when larger", func(t *testing.T) {
		withFixed := *item
		withFixed.MaxDiscountFixed = d("15")
		assert.NoError(t, CheckDiscountPolicy(&withFixed, d("15"), false))
		assert.ErrorIs(t, CheckDiscountPolicy(&withFixed, d("15.01"), false), ErrDiscountLimitExceeded)
	})
}

func TestCheckAmountAndDiscount(t *testing.T) {
	assert.NoError(t, CheckAmount(d("0.01")))
	assert.ErrorIs(t, CheckAmount(decimal.Zero), ErrInvalidAmount)

	assert.NoError(t, CheckDiscount(decimal.Zero, d("10")))
	assert.ErrorIs(t, CheckDiscount(d("-0.01"), d("10")), ErrInvalidDiscount)
	assert.ErrorIs(t, CheckDiscount(d("10.01"), d("10")), ErrDiscountExceedsAmount)
}

func TestCheckAmountAndDiscount_StoredPrecision(t *testing.T) {
	assert.NoError(t, CheckAmount(d("12345678901234.5678")))
	assert.NoError(t, CheckAmount(d("100.12340")), "trailing zeros are not significant")
	assert.ErrorIs(t, CheckAmount(d("100.12345")), ErrAmountPrecision)
	assert.ErrorIs(t, CheckAmount(d("100000000000000")), ErrAmountPrecision)
	assert.Equal(t, ErrInvalidAmount.Code, ErrAmountPrecision.Code)

	assert.NoError(t, CheckDiscount(d("0.0001"), d("10")))
	assert.ErrorIs(t, CheckDiscount(d("0.00001"), d("10")), ErrDiscountPrecision)
	assert.Equal(t, ErrInvalidDiscount.Code, ErrDiscountPrecision.Code)

	_, err := NewTransaction(Sale{
		ShopID:        uuid.New(),
		EnteredAmount: d("99.99999"),
		StaffID:       uuid.New(),
		PaymentMode:   PaymentModeCash,
	})
	assert.ErrorIs(t, err, ErrAmountPrecision)
}
