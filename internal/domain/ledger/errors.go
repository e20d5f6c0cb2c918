package ledger

import "github.com/shopledger/backend/internal/domain/shared"

// Sale and settlement errors. They are returned as-is so callers can match
// them with errors.Is.
var (
	ErrInvalidAmount         = shared.NewDomainError("INVALID_AMOUNT", "Entered amount must be greater than zero")
	ErrAmountPrecision       = shared.NewDomainError("INVALID_AMOUNT", "Entered amount allows at most 4 decimal places and 14 integer digits")
	ErrUnknownStaff          = shared.NewDomainError("UNKNOWN_STAFF", "Staff member does not exist or is inactive")
	ErrItemNotFound          = shared.NewDomainError(shared.CodeNotFound, "Item not found")
	ErrDiscountLimitExceeded = shared.NewDomainError("DISCOUNT_LIMIT_EXCEEDED", "Discount exceeds the item's allowed maximum")
	ErrInvalidDiscount       = shared.NewDomainError("INVALID_DISCOUNT", "Discount amount cannot be negative")
	ErrDiscountPrecision     = shared.NewDomainError("INVALID_DISCOUNT", "Discount amount allows at most 4 decimal places")
	ErrDiscountExceedsAmount = shared.NewDomainError("DISCOUNT_EXCEEDS_AMOUNT", "Discount cannot exceed the entered amount")
	ErrInvalidPaymentMode    = shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode must be CASH, UPI or CREDIT")
	ErrTransactionNotFound   = shared.NewDomainError(shared.CodeNotFound, "Transaction not found")
	ErrNotCreditSale         = shared.NewDomainError("NOT_CREDIT_SALE", "Only credit sales can be settled")
	ErrAlreadySettled        = shared.NewDomainError("ALREADY_SETTLED", "Credit sale is already settled")
)
