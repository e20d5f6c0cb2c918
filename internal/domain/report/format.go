package report

import (
	"github.com/shopspring/decimal"

	"github.com/shopledger/backend/internal/domain/shared/valueobject"
	"github.com/shopledger/backend/internal/domain/shop"
)

// FormattedReport is a DailySalesReport rendered as display strings
type FormattedReport struct {
	ShopName          string                `json:"shop_name,omitempty"`
	Date              string                `json:"date"`
	Currency          string                `json:"currency"`
	TotalSales        string                `json:"total_sales"`
	CashSales         string                `json:"cash_sales"`
	UPISales          string                `json:"upi_sales"`
	CreditSales       string                `json:"credit_sales"`
	TotalDiscounts    string                `json:"total_discounts"`
	TotalTransactions int                   `json:"total_transactions"`
	StaffPerformance  []FormattedStaffTotal `json:"staff_performance"`
}

// FormattedStaffTotal is a StaffPerformance row rendered for display
type FormattedStaffTotal struct {
	StaffName        string `json:"staff_name"`
	TransactionCount int    `json:"transaction_count"`
	TotalAmount      string `json:"total_amount"`
}

// Formatter renders reports with a shop's currency and locale
type Formatter struct {
	settings shop.Settings
}

// NewFormatter creates a formatter bound to the shop settings
func NewFormatter(settings shop.Settings) *Formatter {
	return &Formatter{settings: settings}
}

// Amount renders a single amount
func (f *Formatter) Amount(amount decimal.Decimal) string {
	m, err := valueobject.NewMoney(amount, f.settings.Currency())
	if err != nil {
		return amount.StringFixed(2)
	}
	return m.Format(f.settings.Locale())
}

// Format renders the report
func (f *Formatter) Format(r DailySalesReport) FormattedReport {
	out := FormattedReport{
		ShopName:          f.settings.Name(),
		Date:              r.Date,
		Currency:          string(f.settings.Currency()),
		TotalSales:        f.Amount(r.TotalSales),
		CashSales:         f.Amount(r.CashSales),
		UPISales:          f.Amount(r.UPISales),
		CreditSales:       f.Amount(r.CreditSales),
		TotalDiscounts:    f.Amount(r.TotalDiscounts),
		TotalTransactions: r.TotalTransactions,
		StaffPerformance:  make([]FormattedStaffTotal, 0, len(r.StaffPerformance)),
	}
	for _, p := range r.StaffPerformance {
		out.StaffPerformance = append(out.StaffPerformance, FormattedStaffTotal{
			StaffName:        p.StaffName,
			TransactionCount: p.TransactionCount,
			TotalAmount:      f.Amount(p.TotalAmount),
		})
	}
	return out
}
