package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopledger/backend/internal/domain/catalog"
	"github.com/shopledger/backend/internal/domain/ledger"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/staff"
	"github.com/shopledger/backend/tests/testutil"
)

type recordingMetrics struct {
	mu       sync.Mutex
	sales    int
	rejected []string
	settled  decimal.Decimal
}

func (m *recordingMetrics) RecordSale(context.Context, uuid.UUID, string, decimal.Decimal, decimal.Decimal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales++
}

func (m *recordingMetrics) RecordSaleRejected(_ context.Context, _ uuid.UUID, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

func (m *recordingMetrics) RecordCreditSettled(_ context.Context, _ uuid.UUID, amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settled = m.settled.Add(amount)
}

type fixture struct {
	svc     *TransactionService
	txRepo  *testutil.MockTransactionRepository
	items   *testutil.MockItemRepository
	members *testutil.MockStaffRepository
	pub     *testutil.RecordingPublisher
	metrics *recordingMetrics
	now     time.Time
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		txRepo:  new(testutil.MockTransactionRepository),
		items:   new(testutil.MockItemRepository),
		members: new(testutil.MockStaffRepository),
		pub:     testutil.NewRecordingPublisher(),
		metrics: &recordingMetrics{},
		now:     time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC),
	}
	opts = append([]Option{
		WithClock(func() time.Time { return f.now }),
		WithMetrics(f.metrics),
	}, opts...)
	f.svc = NewTransactionService(f.txRepo, f.items, f.members, f.pub, opts...)
	return f
}

func cashSale(staffID uuid.UUID, amount string) RecordSaleRequest {
	return RecordSaleRequest{
		EnteredAmount: testutil.Dec(amount),
		StaffID:       staffID,
		PaymentMode:   "CASH",
	}
}

func TestTransactionService_RecordSale(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	shopID := testutil.TestShopID()
	member := testutil.NewStaff(t, shopID, "Asha", "1234")
	item := testutil.NewItem(t, shopID, "Rice", "100")
	item.MaxDiscountPercentage = testutil.Dec("10")

	f.members.On("FindByIDForShop", mock.Anything, shopID, member.ID).Return(member, nil)
	f.items.On("FindByIDForShop", mock.Anything, shopID, item.ID).Return(item, nil)
	f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*ledger.Transaction")).Return(nil)

	req := RecordSaleRequest{
		EnteredAmount:   testutil.Dec("100"),
		CandidateItemID: &item.ID,
		StaffID:         member.ID,
		PaymentMode:     "upi",
		DiscountAmount:  testutil.Dec("10"),
	}
	resp, err := f.svc.RecordSale(ctx, shopID, req)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "UPI", resp.PaymentMode)
	assert.Equal(t, "Asha", resp.StaffName)
	assert.Equal(t, "Rice", resp.ItemName)
	assert.True(t, resp.DiscountAmount.Equal(testutil.Dec("10")))
	assert.False(t, resp.IsCreditSettled)
	assert.False(t, resp.CreatedAt.IsZero())

	created := f.txRepo.Calls[0].Arguments.Get(1).(*ledger.Transaction)
	assert.Equal(t, &item.ID, created.InferredItemID)

	events := f.pub.OnChannel(shared.ChannelTransactionsChanged)
	require.Len(t, events, 1)
	assert.Equal(t, ledger.TransactionActionRecorded, events[0].Action())
	assert.Equal(t, 1, f.metrics.sales)
}

func TestTransactionService_RecordSale_Override(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	shopID := testutil.TestShopID()
	member := testutil.NewStaff(t, shopID, "Asha", "1234")
	item := testutil.NewItem(t, shopID, "Rice", "100")

	f.members.On("FindByIDForShop", mock.Anything, shopID, member.ID).Return(member, nil)
	f.items.On("FindByIDForShop", mock.Anything, shopID, item.ID).Return(item, nil)
	f.txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := cashSale(member.ID, "100")
	req.CandidateItemID = &item.ID
	req.DiscountAmount = testutil.Dec("30")
	req.IsOverride = true

	resp, err := f.svc.RecordSale(ctx, shopID, req)
	require.NoError(t, err)
	assert.True(t, resp.DiscountIsOverride)
}

func TestTransactionService_RecordSale_Rejections(t *testing.T) {
	ctx := context.Background()
	shopID := testutil.TestShopID()

	type setup func(t *testing.T, f *fixture) RecordSaleRequest

	activeMember := func(t *testing.T, f *fixture) *staff.Staff {
		m := testutil.NewStaff(t, shopID, "Asha", "1234")
		f.members.On("FindByIDForShop", mock.Anything, shopID, m.ID).Return(m, nil)
		return m
	}

	tests := []struct {
		name  string
		setup setup
		want  error
	}{
		{
			name: "zero amount wins over every other problem",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				return RecordSaleRequest{EnteredAmount: decimal.Zero, StaffID: uuid.New(), PaymentMode: "CARD", DiscountAmount: testutil.Dec("-1")}
			},
			want: ledger.ErrInvalidAmount,
		},
		{
			name: "amount finer than the ledger stores",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				return RecordSaleRequest{EnteredAmount: testutil.Dec("100.12345"), StaffID: uuid.New(), PaymentMode: "CASH"}
			},
			want: ledger.ErrAmountPrecision,
		},
		{
			name: "discount finer than the ledger stores",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				m := activeMember(t, f)
				req := cashSale(m.ID, "100")
				req.DiscountAmount = testutil.Dec("0.00005")
				return req
			},
			want: ledger.ErrDiscountPrecision,
		},
		{
			name: "missing staff",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				return RecordSaleRequest{EnteredAmount: testutil.Dec("10"), PaymentMode: "CARD"}
			},
			want: ledger.ErrUnknownStaff,
		},
		{
			name: "unknown staff",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				id := uuid.New()
				f.members.On("FindByIDForShop", mock.Anything, shopID, id).Return(nil, shared.ErrNotFound)
				return cashSale(id, "10")
			},
			want: ledger.ErrUnknownStaff,
		},
		{
			name: "inactive staff",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				m := activeMember(t, f)
				m.IsActive = false
				return cashSale(m.ID, "10")
			},
			want: ledger.ErrUnknownStaff,
		},
		{
			name: "unknown candidate item",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				m := activeMember(t, f)
				id := uuid.New()
				f.items.On("FindByIDForShop", mock.Anything, shopID, id).Return(nil, shared.ErrNotFound)
				req := cashSale(m.ID, "10")
				req.CandidateItemID = &id
				return req
			},
			want: ledger.ErrItemNotFound,
		},
		{
			name: "discount above item limit",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				m := activeMember(t, f)
				item := testutil.NewItem(t, shopID, "Rice", "100")
				item.MaxDiscountPercentage = testutil.Dec("10")
				f.items.On("FindByIDForShop", mock.Anything, shopID, item.ID).Return(item, nil)
				req := cashSale(m.ID, "100")
				req.CandidateItemID = &item.ID
				req.DiscountAmount = testutil.Dec("10.01")
				req.PaymentMode = "CARD"
				return req
			},
			want: ledger.ErrDiscountLimitExceeded,
		},
		{
			name: "negative discount",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				m := activeMember(t, f)
				req := cashSale(m.ID, "10")
				req.DiscountAmount = testutil.Dec("-1")
				return req
			},
			want: ledger.ErrInvalidDiscount,
		},
		{
			name: "discount above amount",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				m := activeMember(t, f)
				req := cashSale(m.ID, "10")
				req.DiscountAmount = testutil.Dec("10.5")
				req.PaymentMode = "CARD"
				return req
			},
			want: ledger.ErrDiscountExceedsAmount,
		},
		{
			name: "unknown payment mode",
			setup: func(t *testing.T, f *fixture) RecordSaleRequest {
				m := activeMember(t, f)
				req := cashSale(m.ID, "10")
				req.PaymentMode = "CARD"
				return req
			},
			want: ledger.ErrInvalidPaymentMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := tt.setup(t, f)

			resp, err := f.svc.RecordSale(ctx, shopID, req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.want)
			f.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.Empty(t, f.pub.Events())
			require.Len(t, f.metrics.rejected, 1)
			assert.Equal(t, tt.want.(*shared.DomainError).Code, f.metrics.rejected[0])
		})
	}
}

func TestTransactionService_RecordSale_PersistenceFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	shopID := testutil.TestShopID()
	member := testutil.NewStaff(t, shopID, "Asha", "1234")

	f.members.On("FindByIDForShop", mock.Anything, shopID, member.ID).Return(member, nil)
	f.txRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := f.svc.RecordSale(ctx, shopID, cashSale(member.ID, "10"))

	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, f.pub.Events())
	assert.Zero(t, f.metrics.sales)
}

func TestTransactionService_SettleCredit(t *testing.T) {
	ctx := context.Background()
	shopID := testutil.TestShopID()
	staffID := uuid.New()

	t.Run("settles an open credit sale", func(t *testing.T) {
		f := newFixture()
		tx := testutil.NewSale(t, shopID, staffID, "150", ledger.PaymentModeCredit)
		f.txRepo.On("FindByIDForShop", mock.Anything, shopID, tx.ID).Return(tx, nil)
		f.txRepo.On("MarkCreditSettled", mock.Anything, shopID, tx.ID, f.now).Return(true, nil)
		f.members.On("FindAllForShop", mock.Anything, shopID).Return([]staff.Staff{}, nil)

		resp, err := f.svc.SettleCredit(ctx, shopID, tx.ID)

		require.NoError(t, err)
		assert.True(t, resp.IsCreditSettled)
		require.NotNil(t, resp.CreditSettledAt)
		assert.Equal(t, f.now, *resp.CreditSettledAt)
		events := f.pub.OnChannel(shared.ChannelTransactionsChanged)
		require.Len(t, events, 1)
		assert.Equal(t, ledger.TransactionActionCreditSettled, events[0].Action())
		assert.True(t, f.metrics.settled.Equal(testutil.Dec("150")))
	})

	t.Run("lost race reports already settled", func(t *testing.T) {
		f := newFixture()
		tx := testutil.NewSale(t, shopID, staffID, "150", ledger.PaymentModeCredit)
		f.txRepo.On("FindByIDForShop", mock.Anything, shopID, tx.ID).Return(tx, nil)
		f.txRepo.On("MarkCreditSettled", mock.Anything, shopID, tx.ID, f.now).Return(false, nil)

		_, err := f.svc.SettleCredit(ctx, shopID, tx.ID)

		assert.ErrorIs(t, err, ledger.ErrAlreadySettled)
		assert.Empty(t, f.pub.Events())
	})

	t.Run("already settled", func(t *testing.T) {
		f := newFixture()
		tx := testutil.NewSale(t, shopID, staffID, "150", ledger.PaymentModeCredit)
		require.NoError(t, tx.SettleCredit(f.now))
		tx.ClearDomainEvents()
		f.txRepo.On("FindByIDForShop", mock.Anything, shopID, tx.ID).Return(tx, nil)

		_, err := f.svc.SettleCredit(ctx, shopID, tx.ID)

		assert.ErrorIs(t, err, ledger.ErrAlreadySettled)
		f.txRepo.AssertNotCalled(t, "MarkCreditSettled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not a credit sale", func(t *testing.T) {
		f := newFixture()
		tx := testutil.NewSale(t, shopID, staffID, "150", ledger.PaymentModeCash)
		f.txRepo.On("FindByIDForShop", mock.Anything, shopID, tx.ID).Return(tx, nil)

		_, err := f.svc.SettleCredit(ctx, shopID, tx.ID)

		assert.ErrorIs(t, err, ledger.ErrNotCreditSale)
		assert.False(t, tx.IsCreditSettled)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.txRepo.On("FindByIDForShop", mock.Anything, shopID, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.SettleCredit(ctx, shopID, id)

		assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
	})
}

func TestTransactionService_ListRecent(t *testing.T) {
	ctx := context.Background()
	shopID := testutil.TestShopID()
	member := testutil.NewStaff(t, shopID, "Asha", "1234")
	item := testutil.NewItem(t, shopID, "Rice", "100")
	goneItem := uuid.New()

	withItem := testutil.NewSale(t, shopID, member.ID, "100", ledger.PaymentModeCash)
	withItem.InferredItemID = &item.ID
	withGoneItem := testutil.NewSale(t, shopID, member.ID, "50", ledger.PaymentModeUPI)
	withGoneItem.InferredItemID = &goneItem
	byUnknownStaff := testutil.NewSale(t, shopID, uuid.New(), "20", ledger.PaymentModeCash)

	t.Run("joins names and applies default limit", func(t *testing.T) {
		f := newFixture(WithRecentLimits(100, 500))
		f.txRepo.On("FindRecent", mock.Anything, shopID, shared.Page{Limit: 100}).
			Return([]ledger.Transaction{*withItem, *withGoneItem, *byUnknownStaff}, nil)
		f.members.On("FindAllForShop", mock.Anything, shopID).Return([]staff.Staff{*member}, nil)
		f.items.On("FindByIDs", mock.Anything, shopID, []uuid.UUID{item.ID, goneItem}).Return([]catalog.Item{*item}, nil)

		out, err := f.svc.ListRecent(ctx, shopID, ListRecentRequest{})

		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "Rice", out[0].ItemName)
		assert.Equal(t, "Asha", out[0].StaffName)
		assert.Equal(t, "", out[1].ItemName)
		assert.Equal(t, "", out[2].StaffName)
	})

	t.Run("clamps limit", func(t *testing.T) {
		f := newFixture(WithRecentLimits(100, 200))
		f.txRepo.On("FindRecent", mock.Anything, shopID, shared.Page{Limit: 200, Offset: 10}).
			Return([]ledger.Transaction{}, nil)

		out, err := f.svc.ListRecent(ctx, shopID, ListRecentRequest{Limit: 1000, Offset: 10})

		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestTransactionService_Filter(t *testing.T) {
	ctx := context.Background()
	shopID := testutil.TestShopID()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	t.Run("builds a conjunctive filter", func(t *testing.T) {
		f := newFixture(WithLocation(loc))
		staffID := uuid.New()
		from := time.Date(2024, 3, 2, 0, 0, 0, 0, loc)
		to := from.AddDate(0, 0, 1)
		mode := ledger.PaymentModeCredit
		want := ledger.TransactionFilter{From: &from, To: &to, PaymentMode: &mode, StaffID: &staffID}

		f.txRepo.On("FindByFilter", mock.Anything, shopID, want).Return([]ledger.Transaction{}, nil)

		out, err := f.svc.Filter(ctx, shopID, FilterRequest{Date: "2024-03-02", PaymentMode: "credit", StaffID: staffID.String()})

		require.NoError(t, err)
		assert.Empty(t, out)
		f.txRepo.AssertExpectations(t)
	})

	t.Run("no criteria", func(t *testing.T) {
		f := newFixture()
		f.txRepo.On("FindByFilter", mock.Anything, shopID, ledger.TransactionFilter{}).Return([]ledger.Transaction{}, nil)

		_, err := f.svc.Filter(ctx, shopID, FilterRequest{})
		require.NoError(t, err)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Filter(ctx, shopID, FilterRequest{Date: "02/03/2024"})
		assert.ErrorIs(t, err, ErrInvalidDate)

		_, err = f.svc.Filter(ctx, shopID, FilterRequest{PaymentMode: "CARD"})
		assert.ErrorIs(t, err, ledger.ErrInvalidPaymentMode)

		_, err = f.svc.Filter(ctx, shopID, FilterRequest{StaffID: "nope"})
		assert.ErrorIs(t, err, ErrInvalidStaffID)
		f.txRepo.AssertNotCalled(t, "FindByFilter", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTransactionService_GetAndOutstanding(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	shopID := testutil.TestShopID()
	member := testutil.NewStaff(t, shopID, "Asha", "1234")
	tx := testutil.NewSale(t, shopID, member.ID, "75", ledger.PaymentModeCredit)

	f.txRepo.On("FindByIDForShop", mock.Anything, shopID, tx.ID).Return(tx, nil)
	f.members.On("FindAllForShop", mock.Anything, shopID).Return([]staff.Staff{*member}, nil)
	f.txRepo.On("SumOutstandingCredit", mock.Anything, shopID).
		Return(ledger.OutstandingCredit{Amount: testutil.Dec("75"), Count: 1}, nil)

	got, err := f.svc.Get(ctx, shopID, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.StaffName)
	assert.Equal(t, "CREDIT", got.PaymentMode)

	credit, err := f.svc.OutstandingCredit(ctx, shopID)
	require.NoError(t, err)
	assert.True(t, credit.Amount.Equal(testutil.Dec("75")))
	assert.Equal(t, int64(1), credit.Count)
}
