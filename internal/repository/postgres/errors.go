package postgres

import (
	"context"
	"errors"
	"strings"

	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgreSQL error codes
const (
	pgUniqueViolation   = "23505"
	pgNumericOutOfRange = "22003"
)

// mapError translates driver errors into domain errors. Unknown failures are
// wrapped as internal so their details never reach clients.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &domain.ConflictError{Field: conflictField(pgErr)}
		case pgNumericOutOfRange:
			return apperror.Validation("Invalid data", "value: out of range for its column")
		}
	}
	return apperror.Internal(err)
}

// conflictField extracts the column from details such as
// `Key (email)=(a@b.c) already exists.`
func conflictField(pgErr *pgconn.PgError) string {
	if rest, ok := strings.CutPrefix(pgErr.Detail, "Key ("); ok {
		if end := strings.Index(rest, ")"); end > 0 {
			return rest[:end]
		}
	}
	for _, field := range []string{"user_id", "email", "license_number", "gstin", "cin"} {
		if strings.Contains(pgErr.ConstraintName, field) {
			return field
		}
	}
	return "record"
}

// dbConn is the part of *pgxpool.Pool the profile repositories use.
type dbConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ dbConn = (*pgxpool.Pool)(nil)

// withTx runs fn in a transaction. Errors returned by fn are passed through
// untouched and roll the transaction back.
func withTx(ctx context.Context, db dbConn, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return mapError(tx.Commit(ctx))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
