package staff

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopledger/backend/internal/domain/staff"
)

// UpsertStaffRequest creates a staff member when ID is nil and updates it
// otherwise. An empty passcode on update keeps the current one.
type UpsertStaffRequest struct {
	ID       *uuid.UUID `json:"-"`
	Name     string     `json:"name" binding:"required,min=1,max=100"`
	Passcode string     `json:"passcode" binding:"omitempty,min=4,max=32"`
}

// LookupRequest identifies a staff member by passcode
type LookupRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// ActivateStaffRequest carries the passcode a returning staff member will use
type ActivateStaffRequest struct {
	Passcode string `json:"passcode" binding:"required,min=4,max=32"`
}

// StaffResponse represents a staff member in API responses. The passcode hash
// is never exposed.
type StaffResponse struct {
	ID        uuid.UUID `json:"id"`
	ShopID    uuid.UUID `json:"shop_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToStaffResponse converts a domain Staff to a response
func ToStaffResponse(s *staff.Staff) StaffResponse {
	return StaffResponse{
		ID:        s.ID,
		ShopID:    s.ShopID,
		Name:      s.Name,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}

// ToStaffResponses converts a slice of domain Staff
func ToStaffResponses(members []staff.Staff) []StaffResponse {
	out := make([]StaffResponse, len(members))
	for i := range members {
		out[i] = ToStaffResponse(&members[i])
	}
	return out
}
