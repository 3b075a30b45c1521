package domain

import (
	"context"
	"time"
)

// ProfileMeta is embedded in every role profile.
type ProfileMeta struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *ProfileMeta) Meta() *ProfileMeta {
	return m
}

// ProfilePtr is satisfied by *CompanyProfile, *CandidateProfile and *NBFCProfile.
// UniqueKeys lists the values, besides the owner, that must be unique across
// profiles of the same kind.
type ProfilePtr[P any] interface {
	*P
	Meta() *ProfileMeta
	UniqueKeys() map[string]string
}

// ProfileRepository stores one profile per user. Create returns a *ConflictError
// when the user already has a profile or a unique key is taken. Update loads the
// profile, runs mutate and persists it atomically; an error from mutate aborts
// the write.
type ProfileRepository[P any] interface {
	GetByUserID(ctx context.Context, userID string) (*P, error)
	Create(ctx context.Context, profile *P) error
	Update(ctx context.Context, userID string, mutate func(*P) error) (*P, error)
}

// ProfileUsecase is the role-gated profile API shared by all profile kinds.
type ProfileUsecase[P any, C any, U any] interface {
	Create(ctx context.Context, user *User, in *C) (*P, error)
	Get(ctx context.Context, user *User) (*P, error)
	Update(ctx context.Context, user *User, patch *U) (*P, error)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func uniqueIfSet(keys map[string]string, field string, value *string) map[string]string {
	if v := stringValue(value); v != "" {
		if keys == nil {
			keys = map[string]string{}
		}
		keys[field] = v
	}
	return keys
}
