package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/staff"
	"github.com/shopledger/backend/internal/infrastructure/logger"
)

// ErrStaffNotFound is returned for a staff member outside the shop's directory
var ErrStaffNotFound = shared.NewDomainError(shared.CodeNotFound, "Staff member not found")

// StaffService manages the staff directory of a shop. Mutations are announced
// on the staff-changed channel.
type StaffService struct {
	repo   staff.StaffRepository
	events shared.EventPublisher
	hasher staff.PasscodeHasher
}

// NewStaffService creates a new StaffService
func NewStaffService(repo staff.StaffRepository, events shared.EventPublisher, hasher staff.PasscodeHasher) *StaffService {
	return &StaffService{
		repo:   repo,
		events: events,
		hasher: hasher,
	}
}

// UpsertStaff creates or updates a staff member
func (s *StaffService) UpsertStaff(ctx context.Context, shopID uuid.UUID, req UpsertStaffRequest) (*StaffResponse, error) {
	var member *staff.Staff

	if req.ID == nil {
		if err := staff.ValidatePasscode(req.Passcode); err != nil {
			return nil, err
		}
		if err := s.ensurePasscodeFree(ctx, shopID, req.Passcode, uuid.Nil); err != nil {
			return nil, err
		}
		created, err := staff.NewStaff(shopID, req.Name, req.Passcode, s.hasher)
		if err != nil {
			return nil, err
		}
		member = created
	} else {
		existing, err := s.find(ctx, shopID, *req.ID)
		if err != nil {
			return nil, err
		}
		if existing.Name != req.Name {
			if err := existing.Rename(req.Name); err != nil {
				return nil, err
			}
		}
		if req.Passcode != "" {
			if err := staff.ValidatePasscode(req.Passcode); err != nil {
				return nil, err
			}
			if err := s.ensurePasscodeFree(ctx, shopID, req.Passcode, existing.ID); err != nil {
				return nil, err
			}
			if err := existing.ChangePasscode(req.Passcode, s.hasher); err != nil {
				return nil, err
			}
		}
		member = existing
	}

	if err := s.save(ctx, member); err != nil {
		return nil, err
	}
	resp := ToStaffResponse(member)
	return &resp, nil
}

// Deactivate removes a staff member from the active directory
func (s *StaffService) Deactivate(ctx context.Context, shopID, id uuid.UUID) error {
	member, err := s.find(ctx, shopID, id)
	if err != nil {
		return err
	}
	if err := member.Deactivate(); err != nil {
		return err
	}
	return s.save(ctx, member)
}

// Activate restores a deactivated staff member. Stored hashes are salted and
// cannot be compared with each other, so the member must present a passcode:
// it has to be free among the active staff and replaces the stored one when it
// differs.
func (s *StaffService) Activate(ctx context.Context, shopID, id uuid.UUID, req ActivateStaffRequest) error {
	if err := staff.ValidatePasscode(req.Passcode); err != nil {
		return err
	}
	member, err := s.find(ctx, shopID, id)
	if err != nil {
		return err
	}
	if member.IsActive {
		return staff.ErrStaffActive
	}
	if err := s.ensurePasscodeFree(ctx, shopID, req.Passcode, member.ID); err != nil {
		return err
	}
	if !member.VerifyPasscode(req.Passcode, s.hasher) {
		if err := member.ChangePasscode(req.Passcode, s.hasher); err != nil {
			return err
		}
	}
	if err := member.Activate(); err != nil {
		return err
	}
	return s.save(ctx, member)
}

// FindByPasscode returns the active staff member whose passcode matches
// exactly. Inactive staff never match.
func (s *StaffService) FindByPasscode(ctx context.Context, shopID uuid.UUID, passcode string) (*StaffResponse, error) {
	if staff.ValidatePasscode(passcode) != nil {
		return nil, ErrStaffNotFound
	}
	member, err := s.matchActive(ctx, shopID, passcode, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrStaffNotFound
	}
	resp := ToStaffResponse(member)
	return &resp, nil
}

// ListActive returns the active staff ordered by name
func (s *StaffService) ListActive(ctx context.Context, shopID uuid.UUID) ([]StaffResponse, error) {
	members, err := s.repo.FindActive(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToStaffResponses(members), nil
}

// List returns every staff member ordered by name
func (s *StaffService) List(ctx context.Context, shopID uuid.UUID) ([]StaffResponse, error) {
	members, err := s.repo.FindAllForShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToStaffResponses(members), nil
}

// Get returns one staff member
func (s *StaffService) Get(ctx context.Context, shopID, id uuid.UUID) (*StaffResponse, error) {
	member, err := s.find(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	resp := ToStaffResponse(member)
	return &resp, nil
}

// CountActive counts the active staff of a shop
func (s *StaffService) CountActive(ctx context.Context, shopID uuid.UUID) (int64, error) {
	return s.repo.CountActive(ctx, shopID)
}

func (s *StaffService) ensurePasscodeFree(ctx context.Context, shopID uuid.UUID, passcode string, self uuid.UUID) error {
	holder, err := s.matchActive(ctx, shopID, passcode, self)
	if err != nil {
		return err
	}
	if holder != nil {
		return staff.ErrPasscodeInUse
	}
	return nil
}

// matchActive scans the active staff in name order; hashes are salted so
// there is no indexed lookup.
func (s *StaffService) matchActive(ctx context.Context, shopID uuid.UUID, passcode string, skip uuid.UUID) (*staff.Staff, error) {
	members, err := s.repo.FindActive(ctx, shopID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == skip {
			continue
		}
		if members[i].VerifyPasscode(passcode, s.hasher) {
			return &members[i], nil
		}
	}
	return nil, nil
}

func (s *StaffService) find(ctx context.Context, shopID, id uuid.UUID) (*staff.Staff, error) {
	member, err := s.repo.FindByIDForShop(ctx, shopID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *StaffService) save(ctx context.Context, member *staff.Staff) error {
	if err := s.repo.Save(ctx, member); err != nil {
		return err
	}
	if err := shared.PublishPending(ctx, s.events, member); err != nil {
		logger.L(ctx).Warn("failed to publish staff change",
			zap.String("staff_id", member.ID.String()),
			zap.Error(err),
		)
	}
	return nil
}
