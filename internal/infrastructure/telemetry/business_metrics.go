package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

var minorUnits = decimal.NewFromInt(100)

// BusinessMetrics records ledger activity: sales by payment mode, discounts,
// overrides, credit settlements, low stock and report recomputation time.
// Amounts are exported in minor currency units (paise for INR).
type BusinessMetrics struct {
	salesTotal        *Counter
	salesAmount       *Counter
	discountAmount    *Counter
	overridesTotal    *Counter
	rejectedTotal     *Counter
	settlementsTotal  *Counter
	settledAmount     *Counter
	busFailuresTotal  *Counter
	lowStockItems     *Gauge
	reportComputeTime *Histogram
}

// NewBusinessMetrics registers the ledger instruments on meter.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	bm := &BusinessMetrics{}
	counters := []struct {
		dst        **Counter
		name, desc string
		unit       string
	}{
		{&bm.salesTotal, "shop_sales_total", "Number of recorded sales", "{sales}"},
		{&bm.salesAmount, "shop_sales_amount_total", "Entered sale amounts in minor units", "{minor_unit}"},
		{&bm.discountAmount, "shop_discount_amount_total", "Granted discounts in minor units", "{minor_unit}"},
		{&bm.overridesTotal, "shop_discount_overrides_total", "Sales whose discount limit was overridden", "{sales}"},
		{&bm.rejectedTotal, "shop_sales_rejected_total", "Sale attempts rejected by validation", "{sales}"},
		{&bm.settlementsTotal, "shop_credit_settlements_total", "Credit sales settled", "{sales}"},
		{&bm.settledAmount, "shop_credit_settled_amount_total", "Settled credit in minor units", "{minor_unit}"},
		{&bm.busFailuresTotal, "shop_bus_handler_failures_total", "Change notification handlers that failed", "{failures}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(meter, c.name, c.desc, c.unit)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	var err error
	bm.lowStockItems, err = NewGauge(meter, "shop_low_stock_items", "Active items at or below their stock alert", "{items}")
	if err != nil {
		return nil, err
	}
	bm.reportComputeTime, err = NewHistogram(meter, "shop_report_compute_duration",
		"Time to recompute a daily sales report", "s", SmallDurationBuckets...)
	if err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordSale counts an accepted sale
func (bm *BusinessMetrics) RecordSale(ctx context.Context, shopID uuid.UUID, mode string, amount, discount decimal.Decimal, override bool) {
	shop := AttrShopID.String(shopID.String())
	pm := AttrPaymentMode.String(mode)

	bm.salesTotal.Inc(ctx, shop, pm)
	bm.salesAmount.Add(ctx, toMinor(amount), shop, pm)
	if discount.IsPositive() {
		bm.discountAmount.Add(ctx, toMinor(discount), shop)
	}
	if override {
		bm.overridesTotal.Inc(ctx, shop)
	}
}

// RecordSaleRejected counts a sale refused with the given error code
func (bm *BusinessMetrics) RecordSaleRejected(ctx context.Context, shopID uuid.UUID, reason string) {
	bm.rejectedTotal.Inc(ctx, AttrShopID.String(shopID.String()), AttrReason.String(reason))
}

// RecordCreditSettled counts a settled credit sale
func (bm *BusinessMetrics) RecordCreditSettled(ctx context.Context, shopID uuid.UUID, amount decimal.Decimal) {
	shop := AttrShopID.String(shopID.String())
	bm.settlementsTotal.Inc(ctx, shop)
	bm.settledAmount.Add(ctx, toMinor(amount), shop)
}

// RecordLowStock reports the current number of low-stock items of a shop
func (bm *BusinessMetrics) RecordLowStock(ctx context.Context, shopID uuid.UUID, count int) {
	bm.lowStockItems.Record(ctx, int64(count), AttrShopID.String(shopID.String()))
}

// RecordReportComputed records how long a report recomputation took
func (bm *BusinessMetrics) RecordReportComputed(ctx context.Context, shopID uuid.UUID, took time.Duration) {
	bm.reportComputeTime.RecordDuration(ctx, took, AttrShopID.String(shopID.String()))
}

// RecordBusFailure counts a failed change notification handler
func (bm *BusinessMetrics) RecordBusFailure(ctx context.Context, channel string) {
	bm.busFailuresTotal.Inc(ctx, AttrChannel.String(channel))
}

func toMinor(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnits).Round(0).IntPart()
}
