package models

import (
	"github.com/shopledger/backend/internal/domain/staff"
)

// StaffModel is the persistence model for the Staff domain entity
type StaffModel struct {
	ShopAggregateModel
	Name         string `gorm:"type:varchar(100);not null"`
	PasscodeHash string `gorm:"type:varchar(100);not null"`
	IsActive     bool   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the persistence model to a domain Staff
func (m *StaffModel) ToDomain() *staff.Staff {
	return &staff.Staff{
		ShopAggregateRoot: m.ToDomainShopAggregateRoot(),
		Name:              m.Name,
		PasscodeHash:      m.PasscodeHash,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Staff
func (m *StaffModel) FromDomain(s *staff.Staff) {
	m.FromDomainShopAggregateRoot(s.ShopAggregateRoot)
	m.Name = s.Name
	m.PasscodeHash = s.PasscodeHash
	m.IsActive = s.IsActive
}

// StaffModelFromDomain creates a new persistence model from a domain Staff
func StaffModelFromDomain(s *staff.Staff) *StaffModel {
	m := &StaffModel{}
	m.FromDomain(s)
	return m
}
