package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metrics receives the ledger's business measurements
type Metrics interface {
	RecordSale(ctx context.Context, shopID uuid.UUID, mode string, amount, discount decimal.Decimal, override bool)
	RecordSaleRejected(ctx context.Context, shopID uuid.UUID, reason string)
	RecordCreditSettled(ctx context.Context, shopID uuid.UUID, amount decimal.Decimal)
}

type nopMetrics struct{}

func (nopMetrics) RecordSale(context.Context, uuid.UUID, string, decimal.Decimal, decimal.Decimal, bool) {}

func (nopMetrics) RecordSaleRejected(context.Context, uuid.UUID, string) {}

func (nopMetrics) RecordCreditSettled(context.Context, uuid.UUID, decimal.Decimal) {}
