package memory

import (
	"context"
	"sync"

	"ninetytozero-backend/internal/domain"
)

// ProfileRepository keeps one profile per user and enforces each kind's
// unique keys under a single lock, so concurrent creates have one winner.
type ProfileRepository[P any, PT domain.ProfilePtr[P]] struct {
	mu     sync.Mutex
	byUser map[string]P
}

func NewProfileRepository[P any, PT domain.ProfilePtr[P]]() *ProfileRepository[P, PT] {
	return &ProfileRepository[P, PT]{byUser: make(map[string]P)}
}

func NewCompanyProfileRepository() *ProfileRepository[domain.CompanyProfile, *domain.CompanyProfile] {
	return NewProfileRepository[domain.CompanyProfile, *domain.CompanyProfile]()
}

func NewCandidateProfileRepository() *ProfileRepository[domain.CandidateProfile, *domain.CandidateProfile] {
	return NewProfileRepository[domain.CandidateProfile, *domain.CandidateProfile]()
}

func NewNBFCProfileRepository() *ProfileRepository[domain.NBFCProfile, *domain.NBFCProfile] {
	return NewProfileRepository[domain.NBFCProfile, *domain.NBFCProfile]()
}

func (r *ProfileRepository[P, PT]) GetByUserID(_ context.Context, userID string) (*P, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *ProfileRepository[P, PT]) Create(_ context.Context, profile *P) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID := PT(profile).Meta().UserID
	if _, exists := r.byUser[userID]; exists {
		return &domain.ConflictError{Field: "user_id"}
	}
	if err := r.checkUnique(userID, PT(profile)); err != nil {
		return err
	}
	r.byUser[userID] = *profile
	return nil
}

func (r *ProfileRepository[P, PT]) Update(_ context.Context, userID string, mutate func(*P) error) (*P, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	// Work on a copy so a failed mutation leaves the stored profile untouched.
	next := current
	if err := mutate(&next); err != nil {
		return nil, err
	}
	if err := r.checkUnique(userID, PT(&next)); err != nil {
		return nil, err
	}
	r.byUser[userID] = next
	return &next, nil
}

func (r *ProfileRepository[P, PT]) checkUnique(owner string, profile PT) error {
	keys := profile.UniqueKeys()
	if len(keys) == 0 {
		return nil
	}
	for userID, existing := range r.byUser {
		if userID == owner {
			continue
		}
		for field, value := range PT(&existing).UniqueKeys() {
			if keys[field] == value {
				return &domain.ConflictError{Field: field}
			}
		}
	}
	return nil
}
