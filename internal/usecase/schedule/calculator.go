package schedule

import (
	"context"
	"fmt"
	"time"

	"auto-loan-contracts/internal/domain/apperr"
	"auto-loan-contracts/internal/domain/schedule"

	"github.com/shopspring/decimal"
)

const (
	// rateScale is the number of fractional digits kept for the monthly rate.
	rateScale = 10
	// moneyScale is cents.
	moneyScale = 2
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// Calculator computes a fixed-payment (French) amortization table locally.
type Calculator struct {
	now func() time.Time
}

var _ schedule.Source = (*Calculator)(nil)

func NewCalculator() *Calculator { return &Calculator{now: time.Now} }

// WithClock overrides the calculation date; due dates are anchored to it.
func (c *Calculator) WithClock(now func() time.Time) *Calculator {
	c.now = now
	return c
}

func (c *Calculator) Schedule(_ context.Context, req schedule.Request) ([]schedule.Installment, error) {
	return c.Compute(req.Principal, req.AnnualRatePercent, req.TermMonths)
}

// MonthlyRate converts an annual percentage into a monthly fraction.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.
		DivRound(monthsPerYear, rateScale).
		DivRound(hundred, rateScale)
}

// Payment is the fixed annuity payment P*r*(1+r)^n / ((1+r)^n - 1), in cents.
func Payment(principal, monthlyRate decimal.Decimal, termMonths int) decimal.Decimal {
	factor := pow(decimal.NewFromInt(1).Add(monthlyRate), termMonths)
	num := principal.Mul(monthlyRate).Mul(factor)
	den := factor.Sub(decimal.NewFromInt(1))
	return num.DivRound(den, moneyScale)
}

// Compute returns exactly termMonths installments. The last one absorbs the
// rounding residual so the principal portions sum to principal.
func (c *Calculator) Compute(principal, annualRatePercent decimal.Decimal, termMonths int) ([]schedule.Installment, error) {
	if err := validate(principal, annualRatePercent, termMonths); err != nil {
		return nil, err
	}

	rate := MonthlyRate(annualRatePercent)
	if rate.IsZero() {
		return nil, fmt.Errorf("%w: annual rate %s too small", apperr.ErrInvalidScheduleInput, annualRatePercent)
	}
	payment := Payment(principal, rate, termMonths)
	start := dateOnly(c.now())

	out := make([]schedule.Installment, 0, termMonths)
	balance := principal
	for i := 1; i <= termMonths; i++ {
		interest := balance.Mul(rate).Round(moneyScale)
		capital := payment.Sub(interest)
		balance = balance.Sub(capital)

		amount := payment
		if i == termMonths && !balance.IsZero() {
			capital = capital.Add(balance)
			amount = interest.Add(capital)
			balance = decimal.Zero
		}

		out = append(out, schedule.Installment{
			Number:           i,
			Payment:          amount,
			Interest:         interest,
			Principal:        capital,
			RemainingBalance: balance,
			DueDate:          AddMonths(start, i),
		})
	}
	return out, nil
}

func validate(principal, rate decimal.Decimal, term int) error {
	switch {
	case !principal.IsPositive():
		return fmt.Errorf("%w: principal must be greater than zero", apperr.ErrInvalidScheduleInput)
	case !rate.IsPositive():
		return fmt.Errorf("%w: annual rate must be greater than zero", apperr.ErrInvalidScheduleInput)
	case term <= 0:
		return fmt.Errorf("%w: term must be greater than zero", apperr.ErrInvalidScheduleInput)
	}
	return nil
}

// pow is exact: decimal multiplication does not round.
func pow(base decimal.Decimal, n int) decimal.Decimal {
	out := decimal.NewFromInt(1)
	for i := 0; i < n; i++ {
		out = out.Mul(base)
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddMonths adds n calendar months, clamping to the last day of the target
// month (Jan 31 + 1 -> Feb 28/29) instead of overflowing like time.AddDate.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
