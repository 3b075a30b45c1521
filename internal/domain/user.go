package domain

import (
	"context"
	"strings"
	"time"
)

// Role is fixed at registration and never changes afterwards.
type Role string

const (
	RoleCompany   Role = "company"
	RoleCandidate Role = "candidate"
	RoleNBFC      Role = "nbfc"
	RoleAdmin     Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case RoleCompany, RoleCandidate, RoleNBFC, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsVerified   bool      `json:"isVerified"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=100,password_policy,max_bytes=72"`
	Role     Role   `json:"role" validate:"required,oneof=company candidate nbfc"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type LoginResult struct {
	TokenPair
	User *User `json:"user"`
}

// UserRepository returns ErrNotFound for missing users and a *ConflictError
// when the email is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, in *RegisterInput) (*User, error)
	Login(ctx context.Context, in *LoginInput) (*LoginResult, error)
	Authenticate(ctx context.Context, accessToken string) (*User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}
