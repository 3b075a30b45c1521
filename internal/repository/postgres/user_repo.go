package postgres

import (
	"context"

	"ninetytozero-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, password_hash, role, is_verified, is_active, created_at, updated_at`

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, string(user.Role),
		user.IsVerified, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	return mapError(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &role,
		&user.IsVerified, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	user.Role = domain.Role(role)
	return &user, nil
}
