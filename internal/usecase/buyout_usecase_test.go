package usecase_test

import (
	"context"
	"testing"

	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/internal/usecase"
	"ninetytozero-backend/pkg/apperror"
	"ninetytozero-backend/pkg/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buyoutInput(salary string, days int) *domain.BuyoutInput {
	d := decimal.RequireFromString(salary)
	return &domain.BuyoutInput{MonthlySalary: &d, NoticePeriodDays: &days}
}

func TestBuyoutUsecase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewBuyoutUsecase(validation.New())

	res, err := uc.Calculate(ctx, buyoutInput("9000", 30))
	require.NoError(t, err)
	assert.Equal(t, "300.00", res.DailySalary.StringFixed(2))
	assert.Equal(t, "9000.00", res.BuyoutAmount.StringFixed(2))

	res, err = uc.Calculate(ctx, buyoutInput("1000", 1))
	require.NoError(t, err)
	assert.Equal(t, "33.33", res.DailySalary.StringFixed(2))
	assert.Equal(t, "33.33", res.BuyoutAmount.StringFixed(2))

	res, err = uc.Calculate(ctx, buyoutInput("0", 0))
	require.NoError(t, err)
	assert.True(t, res.BuyoutAmount.IsZero())

	for _, in := range []*domain.BuyoutInput{
		buyoutInput("-1", 30),
		buyoutInput("1000", -1),
		buyoutInput("1000", 366),
		buyoutInput("1e20", 30),
	} {
		_, err := uc.Calculate(ctx, in)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}
}

func TestBuyoutUsecaseMissingFields(t *testing.T) {
	uc := usecase.NewBuyoutUsecase(validation.New())
	salary := decimal.NewFromInt(9000)
	days := 30

	for _, tc := range []struct {
		name string
		in   domain.BuyoutInput
		want string
	}{
		{"empty", domain.BuyoutInput{}, "monthlySalary: is required"},
		{"no salary", domain.BuyoutInput{NoticePeriodDays: &days}, "monthlySalary: is required"},
		{"no notice period", domain.BuyoutInput{MonthlySalary: &salary}, "noticePeriodDays: is required"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Calculate(context.Background(), &tc.in)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Contains(t, appErr.Details, tc.want)
		})
	}
}
