package postgres

import (
	"context"

	"ninetytozero-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type candidateRepository struct {
	db dbConn
}

func NewCandidateRepository(db *pgxpool.Pool) domain.ProfileRepository[domain.CandidateProfile] {
	return &candidateRepository{db: db}
}

const candidateColumns = `
	id, user_id, full_name, phone, date_of_birth, current_company, current_designation,
	current_ctc, expected_ctc, notice_period_days, experience_years, skills,
	highest_education, preferred_locations, open_to_buyout, city, state, country,
	kyc_verified_at, created_at, updated_at`

func (r *candidateRepository) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidate_profiles WHERE user_id = $1`
	return scanCandidate(r.db.QueryRow(ctx, query, userID))
}

func (r *candidateRepository) Create(ctx context.Context, p *domain.CandidateProfile) error {
	query := `
		INSERT INTO candidate_profiles (` + candidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.FullName, p.Phone, p.DateOfBirth, p.CurrentCompany, p.CurrentDesignation,
		nullDecimal(p.CurrentCTC), nullDecimal(p.ExpectedCTC), p.NoticePeriodDays, nullDecimal(p.ExperienceYears),
		pq.Array(p.Skills), p.HighestEducation, pq.Array(p.PreferredLocations), p.OpenToBuyout,
		p.City, p.State, p.Country, p.KYCVerifiedAt, p.CreatedAt, p.UpdatedAt,
	)
	return mapError(err)
}

func (r *candidateRepository) Update(ctx context.Context, userID string, mutate func(*domain.CandidateProfile) error) (*domain.CandidateProfile, error) {
	var updated *domain.CandidateProfile
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `SELECT ` + candidateColumns + ` FROM candidate_profiles WHERE user_id = $1 FOR UPDATE`
		p, err := scanCandidate(tx.QueryRow(ctx, query, userID))
		if err != nil {
			return err
		}
		if err := mutate(p); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE candidate_profiles SET
				full_name = $2, phone = $3, date_of_birth = $4, current_company = $5,
				current_designation = $6, current_ctc = $7, expected_ctc = $8,
				notice_period_days = $9, experience_years = $10, skills = $11,
				highest_education = $12, preferred_locations = $13, open_to_buyout = $14,
				city = $15, state = $16, updated_at = $17
			WHERE user_id = $1`,
			userID, p.FullName, p.Phone, p.DateOfBirth, p.CurrentCompany,
			p.CurrentDesignation, nullDecimal(p.CurrentCTC), nullDecimal(p.ExpectedCTC),
			p.NoticePeriodDays, nullDecimal(p.ExperienceYears), pq.Array(p.Skills),
			p.HighestEducation, pq.Array(p.PreferredLocations), p.OpenToBuyout,
			p.City, p.State, p.UpdatedAt,
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

func scanCandidate(row rowScanner) (*domain.CandidateProfile, error) {
	var p domain.CandidateProfile
	var currentCTC, expectedCTC, experience decimal.NullDecimal
	var skills, locations []string

	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.DateOfBirth, &p.CurrentCompany, &p.CurrentDesignation,
		&currentCTC, &expectedCTC, &p.NoticePeriodDays, &experience, pq.Array(&skills),
		&p.HighestEducation, pq.Array(&locations), &p.OpenToBuyout, &p.City, &p.State, &p.Country,
		&p.KYCVerifiedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	p.CurrentCTC = decimalPtr(currentCTC)
	p.ExpectedCTC = decimalPtr(expectedCTC)
	p.ExperienceYears = decimalPtr(experience)
	p.Skills = nonNilStrings(skills)
	p.PreferredLocations = nonNilStrings(locations)
	return &p, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
