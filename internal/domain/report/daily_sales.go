package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/ledger"
	"github.com/shopledger/backend/internal/domain/shared"
	"github.com/shopledger/backend/internal/domain/staff"
)

// DailySalesReport is the derived view of one shop day. It is never stored;
// every change to the ledger produces a fresh one.
type DailySalesReport struct {
	ShopID            uuid.UUID          `json:"shop_id"`
	Date              string             `json:"date"` // YYYY-MM-DD in the shop's time zone
	TotalSales        decimal.Decimal    `json:"total_sales"`
	CashSales         decimal.Decimal    `json:"cash_sales"`
	UPISales          decimal.Decimal    `json:"upi_sales"`
	CreditSales       decimal.Decimal    `json:"credit_sales"`
	TotalTransactions int                `json:"total_transactions"`
	TotalDiscounts    decimal.Decimal    `json:"total_discounts"`
	OverrideCount     int                `json:"override_count"`
	StaffPerformance  []StaffPerformance `json:"staff_performance"`
	GeneratedAt       time.Time          `json:"generated_at"`
}

// StaffPerformance is one staff member's share of the day
type StaffPerformance struct {
	StaffID          uuid.UUID       `json:"staff_id"`
	StaffName        string          `json:"staff_name"`
	IsActive         bool            `json:"is_active"`
	TransactionCount int             `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// Compute builds the report for the calendar day of date in loc.
//
// Transactions outside that day are ignored. Every active staff member gets a
// row, in the order given, even with no sales. Inactive staff appear after
// them only when they have sales on the day, so the rows always add up to the
// totals.
func Compute(shopID uuid.UUID, date time.Time, loc *time.Location, txns []ledger.Transaction, members []staff.Staff) DailySalesReport {
	start, end := shared.DayRange(date, loc)

	r := DailySalesReport{
		ShopID:         shopID,
		Date:           start.Format(shared.DateLayout),
		TotalSales:     decimal.Zero,
		CashSales:      decimal.Zero,
		UPISales:       decimal.Zero,
		CreditSales:    decimal.Zero,
		TotalDiscounts: decimal.Zero,
		GeneratedAt:    time.Now(),
	}

	rows := make(map[uuid.UUID]*StaffPerformance, len(members))
	order := make([]uuid.UUID, 0, len(members))
	names := make(map[uuid.UUID]staff.Staff, len(members))
	for _, m := range members {
		names[m.ID] = m
		if !m.IsActive {
			continue
		}
		rows[m.ID] = &StaffPerformance{
			StaffID:     m.ID,
			StaffName:   m.Name,
			IsActive:    true,
			TotalAmount: decimal.Zero,
		}
		order = append(order, m.ID)
	}

	for i := range txns {
		tx := &txns[i]
		if tx.CreatedAt.Before(start) || !tx.CreatedAt.Before(end) {
			continue
		}

		r.TotalSales = r.TotalSales.Add(tx.EnteredAmount)
		r.TotalDiscounts = r.TotalDiscounts.Add(tx.DiscountAmount)
		r.TotalTransactions++
		if tx.DiscountIsOverride {
			r.OverrideCount++
		}
		switch tx.PaymentMode {
		case ledger.PaymentModeCash:
			r.CashSales = r.CashSales.Add(tx.EnteredAmount)
		case ledger.PaymentModeUPI:
			r.UPISales = r.UPISales.Add(tx.EnteredAmount)
		case ledger.PaymentModeCredit:
			r.CreditSales = r.CreditSales.Add(tx.EnteredAmount)
		}

		row, ok := rows[tx.StaffID]
		if !ok {
			row = &StaffPerformance{StaffID: tx.StaffID, TotalAmount: decimal.Zero}
			if m, known := names[tx.StaffID]; known {
				row.StaffName = m.Name
			}
			rows[tx.StaffID] = row
			order = append(order, tx.StaffID)
		}
		row.TransactionCount++
		row.TotalAmount = row.TotalAmount.Add(tx.EnteredAmount)
	}

	r.StaffPerformance = make([]StaffPerformance, 0, len(order))
	for _, id := range order {
		r.StaffPerformance = append(r.StaffPerformance, *rows[id])
	}

	return r
}

// NetSales returns total sales minus discounts
func (r DailySalesReport) NetSales() decimal.Decimal {
	return r.TotalSales.Sub(r.TotalDiscounts)
}

// PerformanceFor returns the row of one staff member
func (r DailySalesReport) PerformanceFor(staffID uuid.UUID) (StaffPerformance, bool) {
	for _, p := range r.StaffPerformance {
		if p.StaffID == staffID {
			return p, true
		}
	}
	return StaffPerformance{}, false
}
