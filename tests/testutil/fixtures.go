package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/ledger"
	"github.com/shopledger/backend/internal/domain/staff"
)

// FastHasher hashes passcodes with the cheapest bcrypt cost.
var FastHasher = staff.NewPasscodeHasher(4)

// Dec parses a decimal literal, failing loudly on typos.
func Dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// NewItem creates an item with the given price and no pending events.
func NewItem(t *testing.T, shopID uuid.UUID, name, price string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(shopID, catalog.DefaultItemAttributes(name, Dec(price)))
	require.NoError(t, err)
	item.ClearDomainEvents()
	return item
}

// NewStaff creates an active staff member with no pending events.
func NewStaff(t *testing.T, shopID uuid.UUID, name, passcode string) *staff.Staff {
	t.Helper()
	s, err := staff.NewStaff(shopID, name, passcode, FastHasher)
	require.NoError(t, err)
	s.ClearDomainEvents()
	return s
}

// NewSale records a sale in memory with no pending events.
func NewSale(t *testing.T, shopID, staffID uuid.UUID, amount string, mode ledger.PaymentMode) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(ledger.Sale{
		ShopID:         shopID,
		EnteredAmount:  Dec(amount),
		StaffID:        staffID,
		PaymentMode:    mode,
		DiscountAmount: decimal.Zero,
	})
	require.NoError(t, err)
	tx.ClearDomainEvents()
	return tx
}
