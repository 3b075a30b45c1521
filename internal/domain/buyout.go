package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// DaysPerMonth is the fixed divisor used to derive a daily salary.
const DaysPerMonth = 30

var daysPerMonth = decimal.NewFromInt(DaysPerMonth)

// BuyoutInput fields are pointers so a missing field is rejected rather than
// read as zero.
type BuyoutInput struct {
	MonthlySalary    *decimal.Decimal `json:"monthlySalary" validate:"required,dgte=0,pg_numeric=14 2"`
	NoticePeriodDays *int             `json:"noticePeriodDays" validate:"required,gte=0,lte=365"`
}

type BuyoutResult struct {
	MonthlySalary    decimal.Decimal `json:"monthlySalary"`
	NoticePeriodDays int             `json:"noticePeriodDays"`
	DailySalary      decimal.Decimal `json:"dailySalary"`
	BuyoutAmount     decimal.Decimal `json:"buyoutAmount"`
}

// CalculateBuyout derives the daily salary and the amount needed to waive the
// notice period. The buyout is computed from the unrounded daily salary; both
// outputs are rounded half-up to two decimals.
func CalculateBuyout(monthlySalary decimal.Decimal, noticePeriodDays int) BuyoutResult {
	daily := monthlySalary.Div(daysPerMonth)
	buyout := daily.Mul(decimal.NewFromInt(int64(noticePeriodDays)))
	return BuyoutResult{
		MonthlySalary:    monthlySalary,
		NoticePeriodDays: noticePeriodDays,
		DailySalary:      daily.Round(2),
		BuyoutAmount:     buyout.Round(2),
	}
}

type BuyoutUsecase interface {
	Calculate(ctx context.Context, in *BuyoutInput) (*BuyoutResult, error)
}
