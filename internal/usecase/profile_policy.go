package usecase

import (
	"strings"

	"ninetytozero-backend/internal/domain"
	"ninetytozero-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const defaultCountry = "India"

var CompanyKind = ProfileKind[domain.CompanyProfile, domain.CompanyProfileInput, domain.CompanyProfilePatch]{
	Role:  domain.RoleCompany,
	Label: "Company",
	Build: func(in *domain.CompanyProfileInput) *domain.CompanyProfile {
		return &domain.CompanyProfile{
			CompanyName: strings.TrimSpace(in.CompanyName),
			Industry:    trimmed(in.Industry),
			Size:        in.Size,
			GSTIN:       identifier(in.GSTIN),
			CIN:         identifier(in.CIN),
			Website:     trimmed(in.Website),
			Phone:       trimmed(in.Phone),
			Address:     trimmed(in.Address),
			City:        trimmed(in.City),
			State:       trimmed(in.State),
			Country:     defaultCountry,
		}
	},
	Apply: func(p *domain.CompanyProfile, patch *domain.CompanyProfilePatch) {
		if patch.CompanyName != nil {
			p.CompanyName = strings.TrimSpace(*patch.CompanyName)
		}
		setText(&p.Industry, patch.Industry)
		if patch.Size != nil {
			p.Size = patch.Size
		}
		if patch.GSTIN != nil {
			p.GSTIN = identifier(patch.GSTIN)
		}
		if patch.CIN != nil {
			p.CIN = identifier(patch.CIN)
		}
		setText(&p.Website, patch.Website)
		setText(&p.Phone, patch.Phone)
		setText(&p.Address, patch.Address)
		setText(&p.City, patch.City)
		setText(&p.State, patch.State)
	},
}

var CandidateKind = ProfileKind[domain.CandidateProfile, domain.CandidateProfileInput, domain.CandidateProfilePatch]{
	Role:  domain.RoleCandidate,
	Label: "Candidate",
	Build: func(in *domain.CandidateProfileInput) *domain.CandidateProfile {
		openToBuyout := true
		if in.OpenToBuyout != nil {
			openToBuyout = *in.OpenToBuyout
		}
		return &domain.CandidateProfile{
			FullName:           strings.TrimSpace(in.FullName),
			Phone:              strings.TrimSpace(in.Phone),
			DateOfBirth:        in.DateOfBirth,
			CurrentCompany:     trimmed(in.CurrentCompany),
			CurrentDesignation: trimmed(in.CurrentDesignation),
			CurrentCTC:         in.CurrentCTC,
			ExpectedCTC:        in.ExpectedCTC,
			NoticePeriodDays:   in.NoticePeriodDays,
			ExperienceYears:    in.ExperienceYears,
			Skills:             nonNil(in.Skills),
			HighestEducation:   trimmed(in.HighestEducation),
			PreferredLocations: nonNil(in.PreferredLocations),
			OpenToBuyout:       openToBuyout,
			City:               trimmed(in.City),
			State:              trimmed(in.State),
			Country:            defaultCountry,
		}
	},
	Apply: func(p *domain.CandidateProfile, patch *domain.CandidateProfilePatch) {
		if patch.FullName != nil {
			p.FullName = strings.TrimSpace(*patch.FullName)
		}
		if patch.Phone != nil {
			p.Phone = strings.TrimSpace(*patch.Phone)
		}
		if patch.DateOfBirth != nil {
			p.DateOfBirth = patch.DateOfBirth
		}
		setText(&p.CurrentCompany, patch.CurrentCompany)
		setText(&p.CurrentDesignation, patch.CurrentDesignation)
		setDecimal(&p.CurrentCTC, patch.CurrentCTC)
		setDecimal(&p.ExpectedCTC, patch.ExpectedCTC)
		if patch.NoticePeriodDays != nil {
			p.NoticePeriodDays = patch.NoticePeriodDays
		}
		setDecimal(&p.ExperienceYears, patch.ExperienceYears)
		if patch.Skills != nil {
			p.Skills = patch.Skills
		}
		setText(&p.HighestEducation, patch.HighestEducation)
		if patch.PreferredLocations != nil {
			p.PreferredLocations = patch.PreferredLocations
		}
		if patch.OpenToBuyout != nil {
			p.OpenToBuyout = *patch.OpenToBuyout
		}
		setText(&p.City, patch.City)
		setText(&p.State, patch.State)
	},
}

var NBFCKind = ProfileKind[domain.NBFCProfile, domain.NBFCProfileInput, domain.NBFCProfilePatch]{
	Role:  domain.RoleNBFC,
	Label: "NBFC",
	Build: func(in *domain.NBFCProfileInput) *domain.NBFCProfile {
		p := &domain.NBFCProfile{
			NBFCName:        strings.TrimSpace(in.NBFCName),
			LicenseNumber:   strings.ToUpper(strings.TrimSpace(in.LicenseNumber)),
			Website:         trimmed(in.Website),
			ContactPerson:   trimmed(in.ContactPerson),
			Phone:           trimmed(in.Phone),
			Address:         trimmed(in.Address),
			City:            trimmed(in.City),
			State:           trimmed(in.State),
			Country:         defaultCountry,
			InterestRateMin: in.InterestRateMin,
			InterestRateMax: in.InterestRateMax,
			MinLoanAmount:   in.MinLoanAmount,
			MaxLoanAmount:   in.MaxLoanAmount,
			MinTenureMonths: domain.DefaultMinTenureMonths,
			MaxTenureMonths: domain.DefaultMaxTenureMonths,
			IsActive:        true,
		}
		if in.MinTenureMonths != nil {
			p.MinTenureMonths = *in.MinTenureMonths
		}
		if in.MaxTenureMonths != nil {
			p.MaxTenureMonths = *in.MaxTenureMonths
		}
		return p
	},
	Apply: func(p *domain.NBFCProfile, patch *domain.NBFCProfilePatch) {
		if patch.NBFCName != nil {
			p.NBFCName = strings.TrimSpace(*patch.NBFCName)
		}
		setText(&p.Website, patch.Website)
		setText(&p.ContactPerson, patch.ContactPerson)
		setText(&p.Phone, patch.Phone)
		setText(&p.Address, patch.Address)
		setText(&p.City, patch.City)
		setText(&p.State, patch.State)
		setDecimal(&p.InterestRateMin, patch.InterestRateMin)
		setDecimal(&p.InterestRateMax, patch.InterestRateMax)
		setDecimal(&p.MinLoanAmount, patch.MinLoanAmount)
		setDecimal(&p.MaxLoanAmount, patch.MaxLoanAmount)
		if patch.MinTenureMonths != nil {
			p.MinTenureMonths = *patch.MinTenureMonths
		}
		if patch.MaxTenureMonths != nil {
			p.MaxTenureMonths = *patch.MaxTenureMonths
		}
	},
	Check: func(p *domain.NBFCProfile) error {
		var details []string
		if outOfOrder(p.InterestRateMin, p.InterestRateMax) {
			details = append(details, "interestRateMin: must not exceed interestRateMax")
		}
		if outOfOrder(p.MinLoanAmount, p.MaxLoanAmount) {
			details = append(details, "minLoanAmount: must not exceed maxLoanAmount")
		}
		if p.MinTenureMonths > p.MaxTenureMonths {
			details = append(details, "minTenureMonths: must not exceed maxTenureMonths")
		}
		if len(details) > 0 {
			return apperror.Validation("Invalid nbfc profile data", details...)
		}
		return nil
	},
}

func NewCompanyProfileUsecase(repo domain.ProfileRepository[domain.CompanyProfile], validate *validator.Validate) domain.CompanyProfileUsecase {
	return NewProfileUsecase[domain.CompanyProfile, *domain.CompanyProfile](repo, CompanyKind, validate)
}

func NewCandidateProfileUsecase(repo domain.ProfileRepository[domain.CandidateProfile], validate *validator.Validate) domain.CandidateProfileUsecase {
	return NewProfileUsecase[domain.CandidateProfile, *domain.CandidateProfile](repo, CandidateKind, validate)
}

func NewNBFCProfileUsecase(repo domain.ProfileRepository[domain.NBFCProfile], validate *validator.Validate) domain.NBFCProfileUsecase {
	return NewProfileUsecase[domain.NBFCProfile, *domain.NBFCProfile](repo, NBFCKind, validate)
}

// trimmed returns nil for absent or blank text.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// identifier normalizes registration numbers such as GSTIN and CIN.
func identifier(s *string) *string {
	v := trimmed(s)
	if v == nil {
		return nil
	}
	upper := strings.ToUpper(*v)
	return &upper
}

// setText overwrites dst when the patch carries the field; blank clears it.
func setText(dst **string, patch *string) {
	if patch != nil {
		*dst = trimmed(patch)
	}
}

func setDecimal(dst **decimal.Decimal, patch *decimal.Decimal) {
	if patch != nil {
		v := *patch
		*dst = &v
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func outOfOrder(low, high *decimal.Decimal) bool {
	return low != nil && high != nil && low.GreaterThan(*high)
}
