package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/staff"
	"github.com/shopledger/backend/internal/infrastructure/persistence/models"
)

// GormStaffRepository implements staff.StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// FindByIDForShop finds a staff member by ID within a shop
func (r *GormStaffRepository) FindByIDForShop(ctx context.Context, shopID, id uuid.UUID) (*staff.Staff, error) {
	var model models.StaffModel
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

// FindAllForShop returns every staff member of a shop ordered by name
func (r *GormStaffRepository) FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]staff.Staff, error) {
	return r.find(r.db.WithContext(ctx).Where("shop_id = ?", shopID))
}

// FindActive returns the active staff of a shop ordered by name
func (r *GormStaffRepository) FindActive(ctx context.Context, shopID uuid.UUID) ([]staff.Staff, error) {
	return r.find(r.db.WithContext(ctx).Where("shop_id = ? AND is_active = ?", shopID, true))
}

// CountActive counts the active staff of a shop
func (r *GormStaffRepository) CountActive(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StaffModel{}).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, s *staff.Staff) error {
	return r.db.WithContext(ctx).Save(models.StaffModelFromDomain(s)).Error
}

func (r *GormStaffRepository) find(query *gorm.DB) ([]staff.Staff, error) {
	var rows []models.StaffModel
	if err := query.Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	members := make([]staff.Staff, len(rows))
	for i := range rows {
		members[i] = *rows[i].ToDomain()
	}
	return members, nil
}

var _ staff.StaffRepository = (*GormStaffRepository)(nil)
