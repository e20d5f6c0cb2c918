package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/infrastructure/logger"
)

// ErrItemNotFound is returned for an item outside the shop's catalog
var ErrItemNotFound = shared.NewDomainError(shared.CodeNotFound, "Item not found")

// ItemService manages a shop's catalog. Every successful mutation is
// announced on the items-changed channel.
type ItemService struct {
	repo            catalog.ItemRepository
	events          shared.EventPublisher
	defaultMinAlert int
}

// Option configures an ItemService
type Option func(*ItemService)

// WithDefaultMinStockAlert sets the alert threshold given to new items
func WithDefaultMinStockAlert(n int) Option {
	return func(s *ItemService) {
		if n >= 0 {
			s.defaultMinAlert = n
		}
	}
}

// NewItemService creates a new ItemService
func NewItemService(repo catalog.ItemRepository, events shared.EventPublisher, opts ...Option) *ItemService {
	s := &ItemService{
		repo:            repo,
		events:          events,
		defaultMinAlert: catalog.DefaultMinStockAlert,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpsertItem creates or updates an item
func (s *ItemService) UpsertItem(ctx context.Context, shopID uuid.UUID, req UpsertItemRequest) (*ItemResponse, error) {
	if req.BasePrice == nil {
		return nil, shared.NewValidationError("INVALID_PRICE", "Base price is required")
	}

	var item *catalog.Item
	if req.ID == nil {
		attrs := catalog.DefaultItemAttributes(req.Name, *req.BasePrice)
		attrs.MinStockAlert = s.defaultMinAlert
		applyOptional(&attrs, req)

		created, err := catalog.NewItem(shopID, attrs)
		if err != nil {
			return nil, err
		}
		item = created
	} else {
		existing, err := s.find(ctx, shopID, *req.ID)
		if err != nil {
			return nil, err
		}
		attrs := catalog.ItemAttributes{
			Name:                  req.Name,
			BasePrice:             *req.BasePrice,
			StockQuantity:         existing.StockQuantity,
			MinStockAlert:         existing.MinStockAlert,
			MaxDiscountPercentage: existing.MaxDiscountPercentage,
			MaxDiscountFixed:      existing.MaxDiscountFixed,
		}
		applyOptional(&attrs, req)
		if err := existing.Update(attrs); err != nil {
			return nil, err
		}
		item = existing
	}

	if err := s.save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

func applyOptional(attrs *catalog.ItemAttributes, req UpsertItemRequest) {
	if req.StockQuantity != nil {
		attrs.StockQuantity = *req.StockQuantity
	}
	if req.MinStockAlert != nil {
		attrs.MinStockAlert = *req.MinStockAlert
	}
	if req.MaxDiscountPercentage != nil {
		attrs.MaxDiscountPercentage = *req.MaxDiscountPercentage
	}
	if req.MaxDiscountFixed != nil {
		attrs.MaxDiscountFixed = *req.MaxDiscountFixed
	}
}

// Deactivate hides an item from the active catalog
func (s *ItemService) Deactivate(ctx context.Context, shopID, id uuid.UUID) error {
	item, err := s.find(ctx, shopID, id)
	if err != nil {
		return err
	}
	if err := item.Deactivate(); err != nil {
		return err
	}
	return s.save(ctx, item)
}

// Activate returns a deactivated item to the active catalog
func (s *ItemService) Activate(ctx context.Context, shopID, id uuid.UUID) error {
	item, err := s.find(ctx, shopID, id)
	if err != nil {
		return err
	}
	if err := item.Activate(); err != nil {
		return err
	}
	return s.save(ctx, item)
}

// ListActive returns the active items ordered by name
func (s *ItemService) ListActive(ctx context.Context, shopID uuid.UUID) ([]ItemResponse, error) {
	items, err := s.repo.FindActive(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// List returns every item, inactive ones included, ordered by name
func (s *ItemService) List(ctx context.Context, shopID uuid.UUID) ([]ItemResponse, error) {
	items, err := s.repo.FindAllForShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// Get returns one item
func (s *ItemService) Get(ctx context.Context, shopID, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.find(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// CountActive counts the active items of a shop
func (s *ItemService) CountActive(ctx context.Context, shopID uuid.UUID) (int64, error) {
	return s.repo.CountActive(ctx, shopID)
}

// MaxAllowedDiscount returns the discount limit of an item, for callers that
// want to show it before recording a sale
func (s *ItemService) MaxAllowedDiscount(ctx context.Context, shopID, id uuid.UUID) (decimal.Decimal, error) {
	item, err := s.find(ctx, shopID, id)
	if err != nil {
		return decimal.Zero, err
	}
	return item.MaxAllowedDiscount(), nil
}

func (s *ItemService) find(ctx context.Context, shopID, id uuid.UUID) (*catalog.Item, error) {
	item, err := s.repo.FindByIDForShop(ctx, shopID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) save(ctx context.Context, item *catalog.Item) error {
	if err := s.repo.Save(ctx, item); err != nil {
		return err
	}
	if err := shared.PublishPending(ctx, s.events, item); err != nil {
		logger.L(ctx).Warn("failed to publish item change",
			zap.String("item_id", item.ID.String()),
			zap.Error(err),
		)
	}
	return nil
}
