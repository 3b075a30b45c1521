package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/internal/repository/memory"
	"ninetytozero-backend/internal/usecase"
	"ninetytozero-backend/pkg/apperror"
	"ninetytozero-backend/pkg/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }
func boolPtr(b bool) *bool { return &b }
func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func userWithRole(id string, role domain.Role) *domain.User {
	return &domain.User{ID: id, Email: id + "@example.com", Role: role, IsActive: true}
}

func candidateInput() *domain.CandidateProfileInput {
	return &domain.CandidateProfileInput{
		FullName:         "Asha Rao",
		Phone:            "9876543210",
		CurrentCTC:       dec("1200000"),
		NoticePeriodDays: intPtr(90),
		Skills:           []string{"go", "sql"},
	}
}

func TestProfileRoleGating(t *testing.T) {
	ctx := context.Background()
	company := usecase.NewCompanyProfileUsecase(memory.NewCompanyProfileRepository(), validation.New())
	candidate := usecase.NewCandidateProfileUsecase(memory.NewCandidateProfileRepository(), validation.New())
	nbfc := usecase.NewNBFCProfileUsecase(memory.NewNBFCProfileRepository(), validation.New())

	candUser := userWithRole("cand", domain.RoleCandidate)

	_, err := company.Create(ctx, candUser, &domain.CompanyProfileInput{CompanyName: "Acme"})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	assert.EqualError(t, err, "Only company users can create company profiles")

	_, err = nbfc.Get(ctx, candUser)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = candidate.Update(ctx, userWithRole("co", domain.RoleCompany), &domain.CandidateProfilePatch{FullName: strPtr("X Y")})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = candidate.Get(ctx, nil)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestCandidateProfileLifecycle(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCandidateProfileUsecase(memory.NewCandidateProfileRepository(), validation.New())
	user := userWithRole("cand-1", domain.RoleCandidate)

	_, err := uc.Get(ctx, user)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.EqualError(t, err, "Candidate profile not found")

	_, err = uc.Update(ctx, user, &domain.CandidateProfilePatch{FullName: strPtr("New Name")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	created, err := uc.Create(ctx, user, candidateInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, user.ID, created.UserID)
	assert.True(t, created.OpenToBuyout, "defaults to open")
	assert.Equal(t, "India", created.Country)
	assert.Equal(t, []string{}, created.PreferredLocations)

	_, err = uc.Create(ctx, user, candidateInput())
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.EqualError(t, err, "Candidate profile already exists")

	got, err := uc.Get(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := uc.Update(ctx, user, &domain.CandidateProfilePatch{
		NoticePeriodDays: intPtr(30),
		OpenToBuyout:     boolPtr(false),
		CurrentCompany:   strPtr("  Initech  "),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, *updated.NoticePeriodDays)
	assert.False(t, updated.OpenToBuyout)
	assert.Equal(t, "Initech", *updated.CurrentCompany)
	assert.Equal(t, "Asha Rao", updated.FullName, "untouched fields keep their values")
	assert.True(t, updated.CurrentCTC.Equal(decimal.NewFromInt(1200000)))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestEmptyUpdateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCandidateProfileUsecase(memory.NewCandidateProfileRepository(), validation.New())
	user := userWithRole("cand-2", domain.RoleCandidate)

	_, err := uc.Create(ctx, user, candidateInput())
	require.NoError(t, err)

	before, err := uc.Get(ctx, user)
	require.NoError(t, err)

	after, err := uc.Update(ctx, user, &domain.CandidateProfilePatch{})
	require.NoError(t, err)
	assert.Equal(t, before, after)

	again, err := uc.Get(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, again.UpdatedAt)
}

func TestProfileValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("candidate field rules", func(t *testing.T) {
		uc := usecase.NewCandidateProfileUsecase(memory.NewCandidateProfileRepository(), validation.New())
		user := userWithRole("cand-3", domain.RoleCandidate)

		bad := candidateInput()
		bad.FullName = "A"
		bad.NoticePeriodDays = intPtr(400)
		bad.CurrentCTC = dec("-1")
		_, err := uc.Create(ctx, user, bad)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Len(t, appErr.Details, 3)

		_, err = uc.Create(ctx, user, candidateInput())
		require.NoError(t, err)

		// blank strings in a patch are still checked against the stored profile
		_, err = uc.Update(ctx, user, &domain.CandidateProfilePatch{FullName: strPtr(" ")})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		got, err := uc.Get(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", got.FullName, "failed update leaves profile unchanged")
	})

	t.Run("company identifiers", func(t *testing.T) {
		uc := usecase.NewCompanyProfileUsecase(memory.NewCompanyProfileRepository(), validation.New())
		size := domain.CompanySize("huge")

		_, err := uc.Create(ctx, userWithRole("co-1", domain.RoleCompany), &domain.CompanyProfileInput{
			CompanyName: "Acme",
			GSTIN:       strPtr("123"),
			Size:        &size,
		})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Len(t, appErr.Details, 2)

		p, err := uc.Create(ctx, userWithRole("co-1", domain.RoleCompany), &domain.CompanyProfileInput{
			CompanyName: "Acme",
			GSTIN:       strPtr("27aapfu0939f1zv"),
		})
		require.NoError(t, err)
		assert.Equal(t, "27AAPFU0939F1ZV", *p.GSTIN)

		_, err = uc.Create(ctx, userWithRole("co-2", domain.RoleCompany), &domain.CompanyProfileInput{
			CompanyName: "Other",
			GSTIN:       strPtr("27AAPFU0939F1ZV"),
		})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.EqualError(t, err, "gstin is already registered to another profile")
	})

	t.Run("nbfc ranges", func(t *testing.T) {
		uc := usecase.NewNBFCProfileUsecase(memory.NewNBFCProfileRepository(), validation.New())
		user := userWithRole("nbfc-1", domain.RoleNBFC)

		_, err := uc.Create(ctx, user, &domain.NBFCProfileInput{
			NBFCName:        "Lendwell",
			LicenseNumber:   "N-12345",
			InterestRateMin: dec("18"),
			InterestRateMax: dec("12"),
			MinTenureMonths: intPtr(30),
		})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.ElementsMatch(t, []string{
			"interestRateMin: must not exceed interestRateMax",
			"minTenureMonths: must not exceed maxTenureMonths",
		}, appErr.Details)

		_, err = uc.Create(ctx, user, &domain.NBFCProfileInput{
			NBFCName:        "Lendwell",
			LicenseNumber:   "N-12345",
			InterestRateMax: dec("100.5"),
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		p, err := uc.Create(ctx, user, &domain.NBFCProfileInput{NBFCName: "Lendwell", LicenseNumber: "n-12345"})
		require.NoError(t, err)
		assert.Equal(t, "N-12345", p.LicenseNumber)
		assert.Equal(t, domain.DefaultMinTenureMonths, p.MinTenureMonths)
		assert.Equal(t, domain.DefaultMaxTenureMonths, p.MaxTenureMonths)
		assert.True(t, p.IsActive)

		_, err = uc.Update(ctx, user, &domain.NBFCProfilePatch{MinLoanAmount: dec("500000"), MaxLoanAmount: dec("100000")})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		_, err = uc.Create(ctx, userWithRole("nbfc-2", domain.RoleNBFC), &domain.NBFCProfileInput{NBFCName: "Copycat", LicenseNumber: "N-12345"})
		assert.EqualError(t, err, "license_number is already registered to another profile")
	})
}

func TestDecimalFieldLimits(t *testing.T) {
	ctx := context.Background()

	t.Run("candidate amounts fit their columns", func(t *testing.T) {
		uc := usecase.NewCandidateProfileUsecase(memory.NewCandidateProfileRepository(), validation.New())
		user := userWithRole("cand-dec", domain.RoleCandidate)
		_, err := uc.Create(ctx, user, candidateInput())
		require.NoError(t, err)

		for name, tc := range map[string]struct {
			patch  domain.CandidateProfilePatch
			detail string
		}{
			"too many decimals": {
				domain.CandidateProfilePatch{CurrentCTC: dec("12.3456789")},
				"currentCtc: must have at most 12 integer digits and 2 decimal places",
			},
			"too large": {
				domain.CandidateProfilePatch{ExpectedCTC: dec("1e20")},
				"expectedCtc: must have at most 12 integer digits and 2 decimal places",
			},
			"experience scale": {
				domain.CandidateProfilePatch{ExperienceYears: dec("4.25")},
				"experienceYears: must have at most 3 integer digits and 1 decimal places",
			},
			"experience above range": {
				domain.CandidateProfilePatch{ExperienceYears: dec("50.1")},
				"experienceYears: must be less than or equal to 50",
			},
		} {
			t.Run(name, func(t *testing.T) {
				patch := tc.patch
				_, err := uc.Update(ctx, user, &patch)
				var appErr *apperror.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, apperror.KindValidation, appErr.Kind)
				assert.Equal(t, []string{tc.detail}, appErr.Details)
			})
		}

		got, err := uc.Get(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, "1200000", got.CurrentCTC.String())

		p, err := uc.Update(ctx, user, &domain.CandidateProfilePatch{CurrentCTC: dec("1500000.50"), ExperienceYears: dec("50")})
		require.NoError(t, err)
		assert.Equal(t, "1500000.5", p.CurrentCTC.String())
	})

	t.Run("interest rate bound is exact", func(t *testing.T) {
		uc := usecase.NewNBFCProfileUsecase(memory.NewNBFCProfileRepository(), validation.New())
		user := userWithRole("nbfc-dec", domain.RoleNBFC)

		_, err := uc.Create(ctx, user, &domain.NBFCProfileInput{
			NBFCName:        "Lendwell",
			LicenseNumber:   "N-77777",
			InterestRateMax: dec("100.0000000000000001"),
		})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, []string{"interestRateMax: must be less than or equal to 100"}, appErr.Details)

		_, err = uc.Create(ctx, user, &domain.NBFCProfileInput{
			NBFCName:      "Lendwell",
			LicenseNumber: "N-77777",
			MaxLoanAmount: dec("1e20"),
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		p, err := uc.Create(ctx, user, &domain.NBFCProfileInput{
			NBFCName:        "Lendwell",
			LicenseNumber:   "N-77777",
			InterestRateMin: dec("0"),
			InterestRateMax: dec("100"),
		})
		require.NoError(t, err)
		assert.Equal(t, "100", p.InterestRateMax.String())
	})
}

func TestConcurrentCreateHasOneWinner(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCandidateProfileUsecase(memory.NewCandidateProfileRepository(), validation.New())
	user := userWithRole("cand-race", domain.RoleCandidate)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Create(ctx, user, candidateInput())
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case apperror.KindOf(err) == apperror.KindConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, conflicts)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetByUserID(ctx context.Context, userID string) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepo) Create(ctx context.Context, p *domain.CompanyProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCompanyRepo) Update(ctx context.Context, userID string, mutate func(*domain.CompanyProfile) error) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, userID, mutate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func TestProfileStoreErrors(t *testing.T) {
	ctx := context.Background()
	user := userWithRole("co-x", domain.RoleCompany)

	t.Run("lost insert race maps to already exists", func(t *testing.T) {
		repo := new(MockCompanyRepo)
		repo.On("GetByUserID", mock.Anything, user.ID).Return(nil, domain.ErrNotFound)
		repo.On("Create", mock.Anything, mock.Anything).Return(&domain.ConflictError{Field: "user_id"})

		_, err := usecase.NewCompanyProfileUsecase(repo, validation.New()).Create(ctx, user, &domain.CompanyProfileInput{CompanyName: "Acme"})
		assert.EqualError(t, err, "Company profile already exists")
		repo.AssertExpectations(t)
	})

	t.Run("driver failure is internal", func(t *testing.T) {
		repo := new(MockCompanyRepo)
		repo.On("GetByUserID", mock.Anything, user.ID).Return(nil, errors.New("conn refused"))

		_, err := usecase.NewCompanyProfileUsecase(repo, validation.New()).Get(ctx, user)
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})

	t.Run("invalid payload never reaches the store", func(t *testing.T) {
		repo := new(MockCompanyRepo)
		_, err := usecase.NewCompanyProfileUsecase(repo, validation.New()).Create(ctx, user, &domain.CompanyProfileInput{CompanyName: ""})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		repo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})
}
