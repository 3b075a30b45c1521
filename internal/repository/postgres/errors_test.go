package postgres

import (
	"errors"
	"fmt"
	"testing"

	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))

	assert.ErrorIs(t, mapError(pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(fmt.Errorf("scan: %w", pgx.ErrNoRows)), domain.ErrNotFound)

	tests := []struct {
		name  string
		pgErr *pgconn.PgError
		field string
	}{
		{"detail column", &pgconn.PgError{Code: "23505", Detail: "Key (email)=(a@example.com) already exists."}, "email"},
		{"constraint fallback", &pgconn.PgError{Code: "23505", ConstraintName: "nbfc_profiles_license_number_key"}, "license_number"},
		{"unknown constraint", &pgconn.PgError{Code: "23505", ConstraintName: "something_else"}, "record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError(tt.pgErr)
			var conflict *domain.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, tt.field, conflict.Field)
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}

	err := mapError(&pgconn.PgError{Code: "22003", Message: "numeric field overflow"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	err = mapError(&pgconn.PgError{Code: "23503", Message: "fk violation"})
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))

	err = mapError(errors.New("connection reset"))
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Internal Server Error", appErr.Message)
}

func TestDecimalHelpers(t *testing.T) {
	assert.False(t, nullDecimal(nil).Valid)
	assert.Nil(t, decimalPtr(decimal.NullDecimal{}))

	d := decimal.RequireFromString("12.50")
	got := decimalPtr(nullDecimal(&d))
	require.NotNil(t, got)
	assert.True(t, got.Equal(d))
}
