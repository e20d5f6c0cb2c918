package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByIDForShop finds an item by ID within a shop
	FindByIDForShop(ctx context.Context, shopID, id uuid.UUID) (*Item, error)

	// FindAllForShop returns every item of a shop ordered by name
	FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]Item, error)

	// FindActive returns the active items of a shop ordered by name
	FindActive(ctx context.Context, shopID uuid.UUID) ([]Item, error)

	// FindByIDs returns the shop's items with the given IDs, active or not
	FindByIDs(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) ([]Item, error)

	// CountActive counts the active items of a shop
	CountActive(ctx context.Context, shopID uuid.UUID) (int64, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error
}
