package staff

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopledger/backend/internal/domain/shared"
)

// ErrPasscodeInUse is returned when another active staff member of the shop
// already uses the passcode
var ErrPasscodeInUse = shared.NewDomainError("PASSCODE_IN_USE", "Passcode is already used by another active staff member")

// ErrStaffActive is returned when activating a member who is already active
var ErrStaffActive = shared.NewDomainError("STAFF_ACTIVE", "Staff member is already active")

// Staff is a person who records sales at a shop. A passcode identifies at
// most one active staff member per shop.
type Staff struct {
	shared.ShopAggregateRoot
	Name         string
	PasscodeHash string
	IsActive     bool
}

// NewStaff creates a new active staff member with a hashed passcode
func NewStaff(shopID uuid.UUID, name, passcode string, hasher PasscodeHasher) (*Staff, error) {
	if err := validateStaffName(name); err != nil {
		return nil, err
	}
	hash, err := hasher.Hash(passcode)
	if err != nil {
		return nil, err
	}

	s := &Staff{
		ShopAggregateRoot: shared.NewShopAggregateRoot(shopID),
		Name:              strings.TrimSpace(name),
		PasscodeHash:      hash,
		IsActive:          true,
	}

	s.AddDomainEvent(NewStaffChangedEvent(s, StaffActionCreated))

	return s, nil
}

// Rename changes the display name
func (s *Staff) Rename(name string) error {
	if err := validateStaffName(name); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.Touch(time.Now())

	s.AddDomainEvent(NewStaffChangedEvent(s, StaffActionUpdated))

	return nil
}

// ChangePasscode replaces the stored passcode hash
func (s *Staff) ChangePasscode(passcode string, hasher PasscodeHasher) error {
	hash, err := hasher.Hash(passcode)
	if err != nil {
		return err
	}

	s.PasscodeHash = hash
	s.Touch(time.Now())

	s.AddDomainEvent(NewStaffChangedEvent(s, StaffActionUpdated))

	return nil
}

// VerifyPasscode reports whether passcode matches exactly
func (s *Staff) VerifyPasscode(passcode string, hasher PasscodeHasher) bool {
	return hasher.Matches(s.PasscodeHash, passcode)
}

// Deactivate removes the staff member from the active directory
func (s *Staff) Deactivate() error {
	if !s.IsActive {
		return shared.NewDomainError("STAFF_INACTIVE", "Staff member is already inactive")
	}

	s.IsActive = false
	s.Touch(time.Now())

	s.AddDomainEvent(NewStaffChangedEvent(s, StaffActionDeactivated))

	return nil
}

// Activate restores a deactivated staff member
func (s *Staff) Activate() error {
	if s.IsActive {
		return ErrStaffActive
	}

	s.IsActive = true
	s.Touch(time.Now())

	s.AddDomainEvent(NewStaffChangedEvent(s, StaffActionActivated))

	return nil
}

func validateStaffName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Staff name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("INVALID_NAME", "Staff name cannot exceed 100 characters")
	}
	return nil
}
