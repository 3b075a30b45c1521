package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "u1", Email: "a@example.com", IsActive: true}))

	err := repo.Create(ctx, &domain.User{ID: "u2", Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.True(t, repo.SetActive("u1", false))
	got, _ = repo.GetByID(ctx, "u1")
	assert.False(t, got.IsActive)
}

func TestProfileRepositoryOnePerUser(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCompanyProfileRepository()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := &domain.CompanyProfile{CompanyName: "Acme"}
			p.UserID = "owner"
			errs[i] = repo.Create(ctx, p)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)
}

func TestProfileRepositoryUniqueKeys(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNBFCProfileRepository()

	first := &domain.NBFCProfile{NBFCName: "Lender", LicenseNumber: "LIC-001"}
	first.UserID = "a"
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.NBFCProfile{NBFCName: "Other", LicenseNumber: "LIC-001"}
	second.UserID = "b"
	err := repo.Create(ctx, second)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "license_number", conflict.Field)
}

func TestProfileRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCompanyProfileRepository()

	p := &domain.CompanyProfile{CompanyName: "Acme", Industry: strPtr("Retail")}
	p.UserID = "owner"
	require.NoError(t, repo.Create(ctx, p))

	t.Run("failed mutation leaves stored profile untouched", func(t *testing.T) {
		_, err := repo.Update(ctx, "owner", func(p *domain.CompanyProfile) error {
			p.CompanyName = "Changed"
			return errors.New("abort")
		})
		require.Error(t, err)

		stored, err := repo.GetByUserID(ctx, "owner")
		require.NoError(t, err)
		assert.Equal(t, "Acme", stored.CompanyName)
	})

	t.Run("successful mutation persists", func(t *testing.T) {
		updated, err := repo.Update(ctx, "owner", func(p *domain.CompanyProfile) error {
			p.CompanyName = "Acme Corp"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", updated.CompanyName)

		stored, _ := repo.GetByUserID(ctx, "owner")
		assert.Equal(t, "Acme Corp", stored.CompanyName)
		assert.Equal(t, "Retail", *stored.Industry)
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := repo.Update(ctx, "nobody", func(*domain.CompanyProfile) error { return nil })
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
