package usecase

import (
	"context"

	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"
	"ninetytozero-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type buyoutUsecase struct {
	validate *validator.Validate
}

func NewBuyoutUsecase(validate *validator.Validate) domain.BuyoutUsecase {
	return &buyoutUsecase{validate: validate}
}

// Calculate is stateless; it only validates the input range.
func (u *buyoutUsecase) Calculate(_ context.Context, in *domain.BuyoutInput) (*domain.BuyoutResult, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid buyout input", validation.FormatValidationErrors(err)...)
	}
	result := domain.CalculateBuyout(*in.MonthlySalary, *in.NoticePeriodDays)
	return &result, nil
}
