package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultMinTenureMonths = 6
	DefaultMaxTenureMonths = 24
)

// NBFCProfile is owned by a user with RoleNBFC and describes its loan product.
type NBFCProfile struct {
	ProfileMeta
	NBFCName        string           `json:"nbfcName" validate:"required,min=2,max=200"`
	LicenseNumber   string           `json:"licenseNumber" validate:"required,min=5,max=50"`
	Website         *string          `json:"website" validate:"omitempty,max=255"`
	ContactPerson   *string          `json:"contactPerson" validate:"omitempty,max=200"`
	Phone           *string          `json:"phone" validate:"omitempty,max=20"`
	Address         *string          `json:"address" validate:"omitempty,max=500"`
	City            *string          `json:"city" validate:"omitempty,max=100"`
	State           *string          `json:"state" validate:"omitempty,max=100"`
	Country         string           `json:"country" validate:"max=100"`
	InterestRateMin *decimal.Decimal `json:"interestRateMin" validate:"omitempty,dgte=0,dlte=100,pg_numeric=5 2"`
	InterestRateMax *decimal.Decimal `json:"interestRateMax" validate:"omitempty,dgte=0,dlte=100,pg_numeric=5 2"`
	MinLoanAmount   *decimal.Decimal `json:"minLoanAmount" validate:"omitempty,dgte=0,pg_numeric=14 2"`
	MaxLoanAmount   *decimal.Decimal `json:"maxLoanAmount" validate:"omitempty,dgte=0,pg_numeric=14 2"`
	MinTenureMonths int              `json:"minTenureMonths" validate:"gte=1,lte=360"`
	MaxTenureMonths int              `json:"maxTenureMonths" validate:"gte=1,lte=360"`
	IsActive        bool             `json:"isActive"`
	VerifiedAt      *time.Time       `json:"verifiedAt"`
}

func (p *NBFCProfile) UniqueKeys() map[string]string {
	return uniqueIfSet(nil, "license_number", &p.LicenseNumber)
}

type NBFCProfileInput struct {
	NBFCName        string           `json:"nbfcName"`
	LicenseNumber   string           `json:"licenseNumber"`
	Website         *string          `json:"website"`
	ContactPerson   *string          `json:"contactPerson"`
	Phone           *string          `json:"phone"`
	Address         *string          `json:"address"`
	City            *string          `json:"city"`
	State           *string          `json:"state"`
	InterestRateMin *decimal.Decimal `json:"interestRateMin"`
	InterestRateMax *decimal.Decimal `json:"interestRateMax"`
	MinLoanAmount   *decimal.Decimal `json:"minLoanAmount"`
	MaxLoanAmount   *decimal.Decimal `json:"maxLoanAmount"`
	MinTenureMonths *int             `json:"minTenureMonths"`
	MaxTenureMonths *int             `json:"maxTenureMonths"`
}

// NBFCProfilePatch cannot change the license number, which identifies the
// lender, or the active flag, which is not owner-managed.
type NBFCProfilePatch struct {
	NBFCName        *string          `json:"nbfcName"`
	Website         *string          `json:"website"`
	ContactPerson   *string          `json:"contactPerson"`
	Phone           *string          `json:"phone"`
	Address         *string          `json:"address"`
	City            *string          `json:"city"`
	State           *string          `json:"state"`
	InterestRateMin *decimal.Decimal `json:"interestRateMin"`
	InterestRateMax *decimal.Decimal `json:"interestRateMax"`
	MinLoanAmount   *decimal.Decimal `json:"minLoanAmount"`
	MaxLoanAmount   *decimal.Decimal `json:"maxLoanAmount"`
	MinTenureMonths *int             `json:"minTenureMonths"`
	MaxTenureMonths *int             `json:"maxTenureMonths"`
}

type NBFCProfileUsecase = ProfileUsecase[NBFCProfile, NBFCProfileInput, NBFCProfilePatch]
