package postgres

import (
	"context"

	"ninetytozero-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type nbfcProfileRepo struct {
	db dbConn
}

func NewNBFCProfileRepository(db *pgxpool.Pool) domain.ProfileRepository[domain.NBFCProfile] {
	return &nbfcProfileRepo{db: db}
}

const nbfcColumns = `
	id, user_id, nbfc_name, license_number, website, contact_person, phone, address,
	city, state, country, interest_rate_min, interest_rate_max, min_loan_amount,
	max_loan_amount, min_tenure_months, max_tenure_months, is_active, verified_at,
	created_at, updated_at`

func (r *nbfcProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.NBFCProfile, error) {
	query := `SELECT ` + nbfcColumns + ` FROM nbfc_profiles WHERE user_id = $1`
	return scanNBFC(r.db.QueryRow(ctx, query, userID))
}

// Create relies on unique constraints for user_id and license_number.
func (r *nbfcProfileRepo) Create(ctx context.Context, p *domain.NBFCProfile) error {
	query := `
		INSERT INTO nbfc_profiles (` + nbfcColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.NBFCName, p.LicenseNumber, p.Website, p.ContactPerson, p.Phone, p.Address,
		p.City, p.State, p.Country, nullDecimal(p.InterestRateMin), nullDecimal(p.InterestRateMax),
		nullDecimal(p.MinLoanAmount), nullDecimal(p.MaxLoanAmount), p.MinTenureMonths, p.MaxTenureMonths,
		p.IsActive, p.VerifiedAt, p.CreatedAt, p.UpdatedAt,
	)
	return mapError(err)
}

func (r *nbfcProfileRepo) Update(ctx context.Context, userID string, mutate func(*domain.NBFCProfile) error) (*domain.NBFCProfile, error) {
	var updated *domain.NBFCProfile
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `SELECT ` + nbfcColumns + ` FROM nbfc_profiles WHERE user_id = $1 FOR UPDATE`
		p, err := scanNBFC(tx.QueryRow(ctx, query, userID))
		if err != nil {
			return err
		}
		if err := mutate(p); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE nbfc_profiles SET
				nbfc_name = $2, website = $3, contact_person = $4, phone = $5, address = $6,
				city = $7, state = $8, interest_rate_min = $9, interest_rate_max = $10,
				min_loan_amount = $11, max_loan_amount = $12, min_tenure_months = $13,
				max_tenure_months = $14, is_active = $15, updated_at = $16
			WHERE user_id = $1`,
			userID, p.NBFCName, p.Website, p.ContactPerson, p.Phone, p.Address,
			p.City, p.State, nullDecimal(p.InterestRateMin), nullDecimal(p.InterestRateMax),
			nullDecimal(p.MinLoanAmount), nullDecimal(p.MaxLoanAmount), p.MinTenureMonths,
			p.MaxTenureMonths, p.IsActive, p.UpdatedAt,
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

func scanNBFC(row rowScanner) (*domain.NBFCProfile, error) {
	var p domain.NBFCProfile
	var rateMin, rateMax, loanMin, loanMax decimal.NullDecimal

	err := row.Scan(
		&p.ID, &p.UserID, &p.NBFCName, &p.LicenseNumber, &p.Website, &p.ContactPerson, &p.Phone, &p.Address,
		&p.City, &p.State, &p.Country, &rateMin, &rateMax, &loanMin,
		&loanMax, &p.MinTenureMonths, &p.MaxTenureMonths, &p.IsActive, &p.VerifiedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	p.InterestRateMin = decimalPtr(rateMin)
	p.InterestRateMax = decimalPtr(rateMax)
	p.MinLoanAmount = decimalPtr(loanMin)
	p.MaxLoanAmount = decimalPtr(loanMax)
	return &p, nil
}
