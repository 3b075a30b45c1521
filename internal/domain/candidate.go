package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CandidateProfile is owned by a user with RoleCandidate. Compensation is annual CTC.
type CandidateProfile struct {
	ProfileMeta
	FullName           string           `json:"fullName" validate:"required,min=2,max=100"`
	Phone              string           `json:"phone" validate:"required,min=10,max=15,valid_phone"`
	DateOfBirth        *time.Time       `json:"dateOfBirth"`
	CurrentCompany     *string          `json:"currentCompany" validate:"omitempty,max=200"`
	CurrentDesignation *string          `json:"currentDesignation" validate:"omitempty,max=200"`
	CurrentCTC         *decimal.Decimal `json:"currentCtc" validate:"omitempty,dgte=0,pg_numeric=14 2"`
	ExpectedCTC        *decimal.Decimal `json:"expectedCtc" validate:"omitempty,dgte=0,pg_numeric=14 2"`
	NoticePeriodDays   *int             `json:"noticePeriodDays" validate:"omitempty,gte=0,lte=365"`
	ExperienceYears    *decimal.Decimal `json:"experienceYears" validate:"omitempty,dgte=0,dlte=50,pg_numeric=4 1"`
	Skills             []string         `json:"skills" validate:"max=50,dive,min=1,max=100"`
	HighestEducation   *string          `json:"highestEducation" validate:"omitempty,max=200"`
	PreferredLocations []string         `json:"preferredLocations" validate:"max=20,dive,min=1,max=100"`
	OpenToBuyout       bool             `json:"openToBuyout"`
	City               *string          `json:"city" validate:"omitempty,max=100"`
	State              *string          `json:"state" validate:"omitempty,max=100"`
	Country            string           `json:"country" validate:"max=100"`
	KYCVerifiedAt      *time.Time       `json:"kycVerifiedAt"`
}

func (p *CandidateProfile) UniqueKeys() map[string]string {
	return nil
}

type CandidateProfileInput struct {
	FullName           string           `json:"fullName"`
	Phone              string           `json:"phone"`
	DateOfBirth        *time.Time       `json:"dateOfBirth"`
	CurrentCompany     *string          `json:"currentCompany"`
	CurrentDesignation *string          `json:"currentDesignation"`
	CurrentCTC         *decimal.Decimal `json:"currentCtc"`
	ExpectedCTC        *decimal.Decimal `json:"expectedCtc"`
	NoticePeriodDays   *int             `json:"noticePeriodDays"`
	ExperienceYears    *decimal.Decimal `json:"experienceYears"`
	Skills             []string         `json:"skills"`
	HighestEducation   *string          `json:"highestEducation"`
	PreferredLocations []string         `json:"preferredLocations"`
	OpenToBuyout       *bool            `json:"openToBuyout"`
	City               *string          `json:"city"`
	State              *string          `json:"state"`
}

// CandidateProfilePatch replaces list fields wholesale when they are present.
type CandidateProfilePatch struct {
	FullName           *string          `json:"fullName"`
	Phone              *string          `json:"phone"`
	DateOfBirth        *time.Time       `json:"dateOfBirth"`
	CurrentCompany     *string          `json:"currentCompany"`
	CurrentDesignation *string          `json:"currentDesignation"`
	CurrentCTC         *decimal.Decimal `json:"currentCtc"`
	ExpectedCTC        *decimal.Decimal `json:"expectedCtc"`
	NoticePeriodDays   *int             `json:"noticePeriodDays"`
	ExperienceYears    *decimal.Decimal `json:"experienceYears"`
	Skills             []string         `json:"skills"`
	HighestEducation   *string          `json:"highestEducation"`
	PreferredLocations []string         `json:"preferredLocations"`
	OpenToBuyout       *bool            `json:"openToBuyout"`
	City               *string          `json:"city"`
	State              *string          `json:"state"`
}

type CandidateProfileUsecase = ProfileUsecase[CandidateProfile, CandidateProfileInput, CandidateProfilePatch]
