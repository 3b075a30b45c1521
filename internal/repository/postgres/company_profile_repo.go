package postgres

import (
	"context"

	"ninetytozero-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type companyProfileRepo struct {
	db dbConn
}

// NewCompanyProfileRepository creates a new company profile repository
func NewCompanyProfileRepository(db *pgxpool.Pool) domain.ProfileRepository[domain.CompanyProfile] {
	return &companyProfileRepo{db: db}
}

const companyColumns = `
	id, user_id, company_name, industry, size, gstin, cin, website,
	phone, address, city, state, country, verified_at, created_at, updated_at`

// GetByUserID retrieves a company profile by its owner's user ID
func (r *companyProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.CompanyProfile, error) {
	query := `SELECT ` + companyColumns + ` FROM company_profiles WHERE user_id = $1`
	return scanCompany(r.db.QueryRow(ctx, query, userID))
}

// Create inserts the profile; the unique user_id constraint rejects a second one.
func (r *companyProfileRepo) Create(ctx context.Context, p *domain.CompanyProfile) error {
	query := `
		INSERT INTO company_profiles (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.CompanyName, p.Industry, sizeText(p.Size), p.GSTIN, p.CIN, p.Website,
		p.Phone, p.Address, p.City, p.State, p.Country, p.VerifiedAt, p.CreatedAt, p.UpdatedAt,
	)
	return mapError(err)
}

// Update locks the row, applies mutate and writes the result in one transaction.
func (r *companyProfileRepo) Update(ctx context.Context, userID string, mutate func(*domain.CompanyProfile) error) (*domain.CompanyProfile, error) {
	var updated *domain.CompanyProfile
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `SELECT ` + companyColumns + ` FROM company_profiles WHERE user_id = $1 FOR UPDATE`
		p, err := scanCompany(tx.QueryRow(ctx, query, userID))
		if err != nil {
			return err
		}
		if err := mutate(p); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE company_profiles SET
				company_name = $2, industry = $3, size = $4, gstin = $5, cin = $6,
				website = $7, phone = $8, address = $9, city = $10, state = $11,
				updated_at = $12
			WHERE user_id = $1`,
			userID, p.CompanyName, p.Industry, sizeText(p.Size), p.GSTIN, p.CIN,
			p.Website, p.Phone, p.Address, p.City, p.State,
			p.UpdatedAt,
		)
		if err != nil {
			return mapError(err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanCompany(row rowScanner) (*domain.CompanyProfile, error) {
	var p domain.CompanyProfile
	var size *string
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.Industry, &size, &p.GSTIN, &p.CIN, &p.Website,
		&p.Phone, &p.Address, &p.City, &p.State, &p.Country, &p.VerifiedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if size != nil {
		s := domain.CompanySize(*size)
		p.Size = &s
	}
	return &p, nil
}

func sizeText(size *domain.CompanySize) *string {
	if size == nil {
		return nil
	}
	s := string(*size)
	return &s
}
