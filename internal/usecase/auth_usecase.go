package usecase

import (
	"context"
	"errors"
	"time"

	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"
	"ninetytozero-backend/pkg/auth"
	"ninetytozero-backend/pkg/logger"
	"ninetytozero-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid email or password"

type authUsecase struct {
	userRepo domain.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	validate *validator.Validate
	now      func() time.Time
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	validate *validator.Validate,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		validate: validate,
		now:      time.Now,
	}
}

func (u *authUsecase) Register(ctx context.Context, in *domain.RegisterInput) (*domain.User, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid registration data", validation.FormatValidationErrors(err)...)
	}

	// Fast path; the unique index on email settles concurrent registrations.
	if _, err := u.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Conflict("Email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, storeError(err)
	}

	hash, err := u.hasher.Hash(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperror.Validation("Invalid registration data", "password: must be at most 72 bytes")
	} else if err != nil {
		return nil, apperror.Internal(err)
	}

	now := u.now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		IsVerified:   false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, storeError(err)
	}

	logger.Log.Infow("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, in *domain.LoginInput) (*domain.LoginResult, error) {
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.Validation("Invalid login data", validation.FormatValidationErrors(err)...)
	}

	user, err := u.userRepo.GetByEmail(ctx, domain.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized(invalidCredentials)
		}
		return nil, storeError(err)
	}
	// Same message for every failure so callers cannot probe which emails exist.
	if !user.IsActive || !u.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	pair, err := u.issuePair(user)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResult{TokenPair: *pair, User: user}, nil
}

func (u *authUsecase) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := u.tokens.DecodeAccessToken(accessToken)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	return u.activeUser(ctx, claims.Subject)
}

// RefreshToken issues a fresh access token and rotates the refresh token.
// The role comes from the stored user, not from the old token.
func (u *authUsecase) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := u.tokens.DecodeRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired refresh token")
	}
	user, err := u.activeUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	return u.issuePair(user)
}

func (u *authUsecase) activeUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, storeError(err)
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("User account is inactive")
	}
	return user, nil
}

func (u *authUsecase) issuePair(user *domain.User) (*domain.TokenPair, error) {
	access, err := u.tokens.IssueAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	refresh, err := u.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(u.tokens.AccessTTL().Seconds()),
	}, nil
}

// storeError passes AppErrors through and wraps anything else as internal.
func storeError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}
