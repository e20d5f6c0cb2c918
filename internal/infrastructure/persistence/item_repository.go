package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/infrastructure/persistence/models"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByIDForShop finds an item by ID within a shop
func (r *GormItemRepository) FindByIDForShop(ctx context.Context, shopID, id uuid.UUID) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND id = ?", shopID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForShop returns every item of a shop ordered by name
func (r *GormItemRepository) FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Item, error) {
	return r.find(r.db.WithContext(ctx).Where("shop_id = ?", shopID))
}

// FindActive returns the active items of a shop ordered by name
func (r *GormItemRepository) FindActive(ctx context.Context, shopID uuid.UUID) ([]catalog.Item, error) {
	return r.find(r.db.WithContext(ctx).Where("shop_id = ? AND is_active = ?", shopID, true))
}

// FindByIDs returns the shop's items with the given IDs, active or not
func (r *GormItemRepository) FindByIDs(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return []catalog.Item{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("shop_id = ? AND id IN ?", shopID, ids))
}

// CountActive counts the active items of a shop
func (r *GormItemRepository) CountActive(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return r.db.WithContext(ctx).Save(models.ItemModelFromDomain(item)).Error
}

func (r *GormItemRepository) find(query *gorm.DB) ([]catalog.Item, error) {
	var rows []models.ItemModel
	if err := query.Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]catalog.Item, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)
