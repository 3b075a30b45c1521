package postgres

import (
	"context"
	"errors"
	"testing"

	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeTx records how a transaction ended. Methods it does not override
// panic through the nil embedded interface.
type fakeTx struct {
	pgx.Tx
	row        fakeRow
	execErr    error
	execSQL    []string
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row { return tx.row }

func (tx *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	tx.execSQL = append(tx.execSQL, sql)
	return pgconn.CommandTag{}, tx.execErr
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

type fakeConn struct {
	dbConn
	tx       *fakeTx
	beginErr error
}

func (c *fakeConn) Begin(context.Context) (pgx.Tx, error) {
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	return c.tx, nil
}

func storedNBFC(dest ...any) error {
	*dest[1].(*string) = "nbfc-1"
	*dest[2].(*string) = "Lendwell"
	return nil
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		tx := &fakeTx{}
		require.NoError(t, withTx(ctx, &fakeConn{tx: tx}, func(pgx.Tx) error { return nil }))
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
	})

	t.Run("rolls back and passes fn errors through", func(t *testing.T) {
		tx := &fakeTx{}
		sentinel := apperror.Validation("Invalid data", "x: bad")
		err := withTx(ctx, &fakeConn{tx: tx}, func(pgx.Tx) error { return sentinel })
		assert.Same(t, sentinel, err)
		assert.False(t, tx.committed)
		assert.True(t, tx.rolledBack)
	})

	t.Run("begin failure is internal", func(t *testing.T) {
		err := withTx(ctx, &fakeConn{beginErr: errors.New("pool closed")}, func(pgx.Tx) error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})
}

func TestProfileUpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row rolls back", func(t *testing.T) {
		tx := &fakeTx{row: fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}}
		repo := &nbfcProfileRepo{db: &fakeConn{tx: tx}}

		_, err := repo.Update(ctx, "nbfc-1", func(*domain.NBFCProfile) error {
			t.Fatal("mutate must not run")
			return nil
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.True(t, tx.rolledBack)
		assert.Empty(t, tx.execSQL)
	})

	t.Run("mutate error rolls back without writing", func(t *testing.T) {
		tx := &fakeTx{row: fakeRow{scan: storedNBFC}}
		repo := &nbfcProfileRepo{db: &fakeConn{tx: tx}}
		rejected := apperror.Validation("Invalid NBFC profile data", "interestRateMin: must not exceed interestRateMax")

		_, err := repo.Update(ctx, "nbfc-1", func(p *domain.NBFCProfile) error {
			assert.Equal(t, "Lendwell", p.NBFCName)
			return rejected
		})
		assert.Same(t, rejected, err)
		assert.True(t, tx.rolledBack)
		assert.False(t, tx.committed)
		assert.Empty(t, tx.execSQL)
	})

	t.Run("applies mutation and commits", func(t *testing.T) {
		tx := &fakeTx{row: fakeRow{scan: storedNBFC}}
		repo := &nbfcProfileRepo{db: &fakeConn{tx: tx}}

		p, err := repo.Update(ctx, "nbfc-1", func(p *domain.NBFCProfile) error {
			p.NBFCName = "Lendwell Finance"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Lendwell Finance", p.NBFCName)
		assert.True(t, tx.committed)
		require.Len(t, tx.execSQL, 1)
		assert.Contains(t, tx.execSQL[0], "UPDATE nbfc_profiles")
	})

	t.Run("numeric overflow on write is a validation error", func(t *testing.T) {
		tx := &fakeTx{
			row:     fakeRow{scan: storedNBFC},
			execErr: &pgconn.PgError{Code: "22003", Message: "numeric field overflow"},
		}
		repo := &nbfcProfileRepo{db: &fakeConn{tx: tx}}

		_, err := repo.Update(ctx, "nbfc-1", func(*domain.NBFCProfile) error { return nil })
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.True(t, tx.rolledBack)
		assert.False(t, tx.committed)
	})
}
