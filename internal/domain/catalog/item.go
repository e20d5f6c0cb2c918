package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/shared/valueobject"
)

// DefaultMinStockAlert is the low-stock threshold given to new items
const DefaultMinStockAlert = 5

var hundred = decimal.NewFromInt(100)

// Item is a sellable product of a shop. Items are never hard-deleted by the
// core; deactivation hides them from the active catalog.
type Item struct {
	shared.ShopAggregateRoot
	Name                  string
	BasePrice             decimal.Decimal
	StockQuantity         int
	MinStockAlert         int
	MaxDiscountPercentage decimal.Decimal
	MaxDiscountFixed      decimal.Decimal
	IsActive              bool
}

// ItemAttributes carries the mutable attributes of an item
type ItemAttributes struct {
	Name                  string
	BasePrice             decimal.Decimal
	StockQuantity         int
	MinStockAlert         int
	MaxDiscountPercentage decimal.Decimal
	MaxDiscountFixed      decimal.Decimal
}

// DefaultItemAttributes returns the attributes a freshly added item starts with
func DefaultItemAttributes(name string, basePrice decimal.Decimal) ItemAttributes {
	return ItemAttributes{
		Name:                  name,
		BasePrice:             basePrice,
		StockQuantity:         0,
		MinStockAlert:         DefaultMinStockAlert,
		MaxDiscountPercentage: decimal.Zero,
		MaxDiscountFixed:      decimal.Zero,
	}
}

// NewItem creates a new active item
func NewItem(shopID uuid.UUID, attrs ItemAttributes) (*Item, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	item := &Item{
		ShopAggregateRoot: shared.NewShopAggregateRoot(shopID),
		IsActive:          true,
	}
	item.apply(attrs)

	item.AddDomainEvent(NewItemChangedEvent(item, ItemActionCreated))

	return item, nil
}

// Update replaces the item's attributes
func (i *Item) Update(attrs ItemAttributes) error {
	if err := attrs.Validate(); err != nil {
		return err
	}

	i.apply(attrs)
	i.Touch(time.Now())

	i.AddDomainEvent(NewItemChangedEvent(i, ItemActionUpdated))

	return nil
}

// Deactivate soft-deletes the item
func (i *Item) Deactivate() error {
	if !i.IsActive {
		return shared.NewDomainError("ITEM_INACTIVE", "Item is already inactive")
	}

	i.IsActive = false
	i.Touch(time.Now())

	i.AddDomainEvent(NewItemChangedEvent(i, ItemActionDeactivated))

	return nil
}

// Activate makes a deactivated item sellable again
func (i *Item) Activate() error {
	if i.IsActive {
		return shared.NewDomainError("ITEM_ACTIVE", "Item is already active")
	}

	i.IsActive = true
	i.Touch(time.Now())

	i.AddDomainEvent(NewItemChangedEvent(i, ItemActionActivated))

	return nil
}

// MaxAllowedDiscount returns the largest discount the item permits without an
// override: the greater of the percentage limit and the fixed limit.
func (i *Item) MaxAllowedDiscount() decimal.Decimal {
	byPercentage := i.BasePrice.Mul(i.MaxDiscountPercentage).Div(hundred)
	return decimal.Max(byPercentage, i.MaxDiscountFixed)
}

// IsLowStock reports whether the stock has reached the alert threshold
func (i *Item) IsLowStock() bool {
	return i.StockQuantity <= i.MinStockAlert
}

func (i *Item) apply(attrs ItemAttributes) {
	i.Name = strings.TrimSpace(attrs.Name)
	i.BasePrice = attrs.BasePrice
	i.StockQuantity = attrs.StockQuantity
	i.MinStockAlert = attrs.MinStockAlert
	i.MaxDiscountPercentage = attrs.MaxDiscountPercentage
	i.MaxDiscountFixed = attrs.MaxDiscountFixed
}

// Validate checks the attribute invariants
func (a ItemAttributes) Validate() error {
	if err := validateItemName(a.Name); err != nil {
		return err
	}
	if a.BasePrice.IsNegative() {
		return shared.NewValidationError("INVALID_PRICE", "Base price cannot be negative")
	}
	if !valueobject.FitsAmount(a.BasePrice) {
		return shared.NewValidationError("INVALID_PRICE", "Base price allows at most 4 decimal places and 14 integer digits")
	}
	if a.StockQuantity < 0 {
		return shared.NewValidationError("INVALID_STOCK", "Stock quantity cannot be negative")
	}
	if a.MinStockAlert < 0 {
		return shared.NewValidationError("INVALID_STOCK_ALERT", "Minimum stock alert cannot be negative")
	}
	if a.MaxDiscountPercentage.IsNegative() || a.MaxDiscountPercentage.GreaterThan(hundred) {
		return shared.NewValidationError("INVALID_DISCOUNT_PERCENTAGE", "Maximum discount percentage must be between 0 and 100")
	}
	if !valueobject.FitsScale(a.MaxDiscountPercentage, valueobject.PercentScale) {
		return shared.NewValidationError("INVALID_DISCOUNT_PERCENTAGE", "Maximum discount percentage allows at most 2 decimal places")
	}
	if a.MaxDiscountFixed.IsNegative() {
		return shared.NewValidationError("INVALID_DISCOUNT_FIXED", "Maximum fixed discount cannot be negative")
	}
	if !valueobject.FitsAmount(a.MaxDiscountFixed) {
		return shared.NewValidationError("INVALID_DISCOUNT_FIXED", "Maximum fixed discount allows at most 4 decimal places and 14 integer digits")
	}
	return nil
}

func validateItemName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}
	return nil
}
