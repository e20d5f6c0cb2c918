package staff

import (
	"context"

	"github.com/google/uuid"
)

// StaffRepository defines the interface for staff persistence
type StaffRepository interface {
	// FindByIDForShop finds a staff member by ID within a shop
	FindByIDForShop(ctx context.Context, shopID, id uuid.UUID) (*Staff, error)

	// FindAllForShop returns every staff member of a shop ordered by name
	FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]Staff, error)

	// FindActive returns the active staff of a shop ordered by name
	FindActive(ctx context.Context, shopID uuid.UUID) ([]Staff, error)

	// CountActive counts the active staff of a shop
	CountActive(ctx context.Context, shopID uuid.UUID) (int64, error)

	// Save creates or updates a staff member
	Save(ctx context.Context, s *Staff) error
}
