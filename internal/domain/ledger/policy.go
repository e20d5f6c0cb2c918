package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
)

// The checks below are applied by RecordSale in this order; the first
// failure wins.

// CheckAmount requires a strictly positive entered amount the ledger can
// store without rounding
func CheckAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !valueobject.FitsAmount(amount) {
		return ErrAmountPrecision
	}
	return nil
}

// CheckDiscountPolicy rejects a discount above the item's limit unless the
// sale carries a manual override.
func CheckDiscountPolicy(item *catalog.Item, discount decimal.Decimal, override bool) error {
	if item == nil || override {
		return nil
	}
	if discount.GreaterThan(item.MaxAllowedDiscount()) {
		return ErrDiscountLimitExceeded
	}
	return nil
}

// CheckDiscount requires 0 <= discount <= amount at amount precision
func CheckDiscount(discount, amount decimal.Decimal) error {
	if discount.IsNegative() {
		return ErrInvalidDiscount
	}
	if !valueobject.FitsScale(discount, valueobject.AmountScale) {
		return ErrDiscountPrecision
	}
	if discount.GreaterThan(amount) {
		return ErrDiscountExceedsAmount
	}
	return nil
}
