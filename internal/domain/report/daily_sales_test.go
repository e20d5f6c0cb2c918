package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopledger/backend/internal/domain/ledger"
	"github.com/shopledger/backend/internal/domain/staff"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func member(name string, active bool) staff.Staff {
	s := staff.Staff{Name: name, IsActive: active}
	s.ID = uuid.New()
	return s
}

func sale(staffID uuid.UUID, amount, discount string, mode ledger.PaymentMode, at time.Time) ledger.Transaction {
	tx := ledger.Transaction{
		EnteredAmount:  decimal.RequireFromString(amount),
		DiscountAmount: decimal.RequireFromString(discount),
		StaffID:        staffID,
		PaymentMode:    mode,
	}
	tx.ID = uuid.New()
	tx.CreatedAt = at
	return tx
}

func TestCompute(t *testing.T) {
	shopID := uuid.New()
	day := time.Date(2024, 3, 2, 0, 0, 0, 0, ist)
	at := day.Add(10 * time.Hour)

	a := member("Asha", true)
	b := member("Bala", true)

	t.Run("totals by payment mode and staff", func(t *testing.T) {
		txns := []ledger.Transaction{
			sale(a.ID, "100", "0", ledger.PaymentModeCash, at),
			sale(a.ID, "200", "10", ledger.PaymentModeUPI, at.Add(time.Minute)),
			sale(a.ID, "150", "5", ledger.PaymentModeCredit, at.Add(2*time.Minute)),
		}

		r := Compute(shopID, day, ist, txns, []staff.Staff{a, b})

		assert.Equal(t, "2024-03-02", r.Date)
		assert.Equal(t, shopID, r.ShopID)
		assert.True(t, r.TotalSales.Equal(decimal.NewFromInt(450)))
		assert.True(t, r.CashSales.Equal(decimal.NewFromInt(100)))
		assert.True(t, r.UPISales.Equal(decimal.NewFromInt(200)))
		assert.True(t, r.CreditSales.Equal(decimal.NewFromInt(150)))
		assert.True(t, r.TotalDiscounts.Equal(decimal.NewFromInt(15)))
		assert.True(t, r.NetSales().Equal(decimal.NewFromInt(435)))
		assert.Equal(t, 3, r.TotalTransactions)

		require.Len(t, r.StaffPerformance, 2)
		pa, ok := r.PerformanceFor(a.ID)
		require.True(t, ok)
		assert.Equal(t, 3, pa.TransactionCount)
		assert.True(t, pa.TotalAmount.Equal(decimal.NewFromInt(450)))

		pb, ok := r.PerformanceFor(b.ID)
		require.True(t, ok)
		assert.Equal(t, 0, pb.TransactionCount)
		assert.True(t, pb.TotalAmount.IsZero())
	})

	t.Run("subtotals add up to total", func(t *testing.T) {
		txns := []ledger.Transaction{
			sale(a.ID, "10.10", "0", ledger.PaymentModeCash, at),
			sale(b.ID, "20.20", "0", ledger.PaymentModeUPI, at),
			sale(b.ID, "0.01", "0", ledger.PaymentModeCredit, at),
		}
		r := Compute(shopID, day, ist, txns, []staff.Staff{a, b})

		sum := r.CashSales.Add(r.UPISales).Add(r.CreditSales)
		assert.True(t, sum.Equal(r.TotalSales))
		assert.Equal(t, "30.31", r.TotalSales.String())
	})

	t.Run("ignores transactions outside the local day", func(t *testing.T) {
		txns := []ledger.Transaction{
			sale(a.ID, "100", "0", ledger.PaymentModeCash, day.Add(-time.Second)),
			sale(a.ID, "100", "0", ledger.PaymentModeCash, day),
			sale(a.ID, "100", "0", ledger.PaymentModeCash, day.Add(24*time.Hour)),
		}
		r := Compute(shopID, day, ist, txns, []staff.Staff{a})
		assert.Equal(t, 1, r.TotalTransactions)
	})

	t.Run("empty day", func(t *testing.T) {
		r := Compute(shopID, day, ist, nil, []staff.Staff{a, b})
		assert.True(t, r.TotalSales.IsZero())
		assert.Equal(t, 0, r.TotalTransactions)
		assert.Len(t, r.StaffPerformance, 2)
	})

	t.Run("inactive staff appear only with sales", func(t *testing.T) {
		gone := member("Gopal", false)
		idle := member("Indu", false)
		txns := []ledger.Transaction{sale(gone.ID, "40", "0", ledger.PaymentModeCash, at)}

		r := Compute(shopID, day, ist, txns, []staff.Staff{a, gone, idle})

		require.Len(t, r.StaffPerformance, 2)
		assert.Equal(t, a.ID, r.StaffPerformance[0].StaffID)
		assert.Equal(t, gone.ID, r.StaffPerformance[1].StaffID)
		assert.Equal(t, "Gopal", r.StaffPerformance[1].StaffName)
		assert.False(t, r.StaffPerformance[1].IsActive)
	})

	t.Run("counts overrides", func(t *testing.T) {
		tx := sale(a.ID, "100", "50", ledger.PaymentModeCash, at)
		tx.DiscountIsOverride = true
		r := Compute(shopID, day, ist, []ledger.Transaction{tx}, []staff.Staff{a})
		assert.Equal(t, 1, r.OverrideCount)
	})

	t.Run("date uses shop time zone", func(t *testing.T) {
		// 19:00 UTC on the 1st is already the 2nd in IST
		r := Compute(shopID, time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC), ist, nil, nil)
		assert.Equal(t, "2024-03-02", r.Date)
	})
}
