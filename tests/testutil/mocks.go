package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/ledger"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/staff"
)

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByIDForShop(ctx context.Context, shopID, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, shopID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Item, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindActive(ctx context.Context, shopID uuid.UUID) ([]catalog.Item, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDs(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) ([]catalog.Item, error) {
	args := m.Called(ctx, shopID, ids)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) CountActive(ctx context.Context, shopID uuid.UUID) (int64, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockStaffRepository is a mock implementation of staff.StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindByIDForShop(ctx context.Context, shopID, id uuid.UUID) (*staff.Staff, error) {
	args := m.Called(ctx, shopID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]staff.Staff, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]staff.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindActive(ctx context.Context, shopID uuid.UUID) ([]staff.Staff, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]staff.Staff), args.Error(1)
}

func (m *MockStaffRepository) CountActive(ctx context.Context, shopID uuid.UUID) (int64, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStaffRepository) Save(ctx context.Context, s *staff.Staff) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of ledger.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByIDForShop(ctx context.Context, shopID, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, shopID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindRecent(ctx context.Context, shopID uuid.UUID, page shared.Page) ([]ledger.Transaction, error) {
	args := m.Called(ctx, shopID, page)
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByFilter(ctx context.Context, shopID uuid.UUID, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	args := m.Called(ctx, shopID, filter)
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) MarkCreditSettled(ctx context.Context, shopID, id uuid.UUID, settledAt time.Time) (bool, error) {
	args := m.Called(ctx, shopID, id, settledAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) SumOutstandingCredit(ctx context.Context, shopID uuid.UUID) (ledger.OutstandingCredit, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(ledger.OutstandingCredit), args.Error(1)
}

var (
	_ catalog.ItemRepository       = (*MockItemRepository)(nil)
	_ staff.StaffRepository        = (*MockStaffRepository)(nil)
	_ ledger.TransactionRepository = (*MockTransactionRepository)(nil)
)
