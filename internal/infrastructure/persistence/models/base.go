package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopledger/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity.
// Timestamps are stored in UTC.
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt.UTC()
	m.UpdatedAt = e.UpdatedAt.UTC()
}

// AggregateModel extends BaseModel with version for optimistic locking
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// ShopAggregateModel provides common persistence fields for shop-scoped aggregate roots
type ShopAggregateModel struct {
	AggregateModel
	ShopID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainShopAggregateRoot populates ShopAggregateModel from domain ShopAggregateRoot
func (m *ShopAggregateModel) FromDomainShopAggregateRoot(s shared.ShopAggregateRoot) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ShopID = s.ShopID
}

// ToDomainShopAggregateRoot builds a domain ShopAggregateRoot with no pending events
func (m *ShopAggregateModel) ToDomainShopAggregateRoot() shared.ShopAggregateRoot {
	return shared.ShopAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		ShopID: m.ShopID,
	}
}
