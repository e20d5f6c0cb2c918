package staff

import (
	"github.com/google/uuid"

	"github.com/shopledger/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStaff = "Staff"

// Staff change actions
const (
	StaffActionCreated     = "created"
	StaffActionUpdated     = "updated"
	StaffActionDeactivated = "deactivated"
	StaffActionActivated   = "activated"
)

// StaffChangedEvent is published on the staff-changed channel.
// It never carries the passcode hash.
type StaffChangedEvent struct {
	shared.BaseDomainEvent
	StaffID  uuid.UUID `json:"staff_id"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
}

// NewStaffChangedEvent creates a new StaffChangedEvent
func NewStaffChangedEvent(s *Staff, action string) *StaffChangedEvent {
	return &StaffChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(shared.ChannelStaffChanged, action, AggregateTypeStaff, s.ID, s.ShopID),
		StaffID:         s.ID,
		Name:            s.Name,
		IsActive:        s.IsActive,
	}
}
