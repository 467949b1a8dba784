// Package schedule defines the amortization table exchanged between whatever
// computes installments and the engine that turns them into promissory notes.
package schedule

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one row of the amortization table. It is never persisted.
type Installment struct {
	Number           int             `json:"number"`
	Payment          decimal.Decimal `json:"payment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	DueDate          time.Time       `json:"due_date"`
}

type Request struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermMonths        int
}

// Source produces the installments for a loan. The local calculator is one
// implementation; an origination-service client would be another.
type Source interface {
	Schedule(ctx context.Context, req Request) ([]Installment, error)
}
