package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"
	"ninetytozero-backend/pkg/logger"
	"ninetytozero-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ProfileKind is the per-role policy plugged into the shared profile service.
// Field constraints live in the validate tags of P; Check adds cross-field rules.
type ProfileKind[P any, C any, U any] struct {
	Role  domain.Role
	Label string
	Build func(in *C) *P
	Apply func(p *P, patch *U)
	Check func(p *P) error
}

type profileUsecase[P any, PT domain.ProfilePtr[P], C any, U any] struct {
	repo     domain.ProfileRepository[P]
	kind     ProfileKind[P, C, U]
	validate *validator.Validate
	now      func() time.Time
}

// NewProfileUsecase builds the role-gated profile service for one profile kind.
func NewProfileUsecase[P any, PT domain.ProfilePtr[P], C any, U any](
	repo domain.ProfileRepository[P],
	kind ProfileKind[P, C, U],
	validate *validator.Validate,
) domain.ProfileUsecase[P, C, U] {
	return &profileUsecase[P, PT, C, U]{
		repo:     repo,
		kind:     kind,
		validate: validate,
		now:      time.Now,
	}
}

func (uc *profileUsecase[P, PT, C, U]) Create(ctx context.Context, user *domain.User, in *C) (*P, error) {
	if err := uc.authorize(user, "create"); err != nil {
		return nil, err
	}

	profile := uc.kind.Build(in)
	if err := uc.check(profile); err != nil {
		return nil, err
	}

	// Fast path; the unique user_id constraint decides concurrent creates.
	if _, err := uc.repo.GetByUserID(ctx, user.ID); err == nil {
		return nil, uc.alreadyExists()
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, storeError(err)
	}

	now := uc.now()
	meta := PT(profile).Meta()
	meta.ID = uuid.NewString()
	meta.UserID = user.ID
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if err := uc.repo.Create(ctx, profile); err != nil {
		return nil, uc.writeError(err)
	}

	logger.Log.Infow("profile created", "kind", uc.kind.Role, "user_id", user.ID, "profile_id", meta.ID)
	return profile, nil
}

func (uc *profileUsecase[P, PT, C, U]) Get(ctx context.Context, user *domain.User) (*P, error) {
	if err := uc.authorize(user, "access"); err != nil {
		return nil, err
	}
	profile, err := uc.repo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, uc.notFound()
		}
		return nil, storeError(err)
	}
	return profile, nil
}

// Update applies only the fields present in patch. An empty patch is a read.
func (uc *profileUsecase[P, PT, C, U]) Update(ctx context.Context, user *domain.User, patch *U) (*P, error) {
	if err := uc.authorize(user, "update"); err != nil {
		return nil, err
	}
	if patch == nil || reflect.ValueOf(patch).Elem().IsZero() {
		return uc.Get(ctx, user)
	}

	updated, err := uc.repo.Update(ctx, user.ID, func(p *P) error {
		uc.kind.Apply(p, patch)
		if err := uc.check(p); err != nil {
			return err
		}
		PT(p).Meta().UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, uc.notFound()
		}
		return nil, uc.writeError(err)
	}
	return updated, nil
}

func (uc *profileUsecase[P, PT, C, U]) authorize(user *domain.User, action string) error {
	if user == nil {
		return apperror.Unauthorized("User not authenticated")
	}
	if user.Role != uc.kind.Role {
		return apperror.Forbidden(fmt.Sprintf("Only %s users can %s %s profiles", uc.kind.Role, action, uc.kind.Role))
	}
	return nil
}

func (uc *profileUsecase[P, PT, C, U]) check(p *P) error {
	if err := uc.validate.Struct(p); err != nil {
		return apperror.Validation("Invalid "+uc.kind.Role.String()+" profile data", validation.FormatValidationErrors(err)...)
	}
	if uc.kind.Check != nil {
		if err := uc.kind.Check(p); err != nil {
			return err
		}
	}
	return nil
}

func (uc *profileUsecase[P, PT, C, U]) writeError(err error) error {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		if conflict.Field == "user_id" {
			return uc.alreadyExists()
		}
		return apperror.Conflict(fmt.Sprintf("%s is already registered to another profile", conflict.Field))
	}
	return storeError(err)
}

func (uc *profileUsecase[P, PT, C, U]) alreadyExists() error {
	return apperror.Conflict(uc.kind.Label + " profile already exists")
}

func (uc *profileUsecase[P, PT, C, U]) notFound() error {
	return apperror.NotFound(uc.kind.Label + " profile not found")
}
