package domain

import "time"

type CompanySize string

const (
	CompanySizeStartup    CompanySize = "startup"
	CompanySizeSmall      CompanySize = "small"
	CompanySizeMedium     CompanySize = "medium"
	CompanySizeLarge      CompanySize = "large"
	CompanySizeEnterprise CompanySize = "enterprise"
)

// CompanyProfile is owned by a user with RoleCompany.
type CompanyProfile struct {
	ProfileMeta
	CompanyName string       `json:"companyName" validate:"required,min=2,max=200"`
	Industry    *string      `json:"industry" validate:"omitempty,max=100"`
	Size        *CompanySize `json:"size" validate:"omitempty,oneof=startup small medium large enterprise"`
	GSTIN       *string      `json:"gstin" validate:"omitempty,len=15"`
	CIN         *string      `json:"cin" validate:"omitempty,len=21"`
	Website     *string      `json:"website" validate:"omitempty,max=255"`
	Phone       *string      `json:"phone" validate:"omitempty,max=20"`
	Address     *string      `json:"address" validate:"omitempty,max=500"`
	City        *string      `json:"city" validate:"omitempty,max=100"`
	State       *string      `json:"state" validate:"omitempty,max=100"`
	Country     string       `json:"country" validate:"max=100"`
	VerifiedAt  *time.Time   `json:"verifiedAt"`
}

func (p *CompanyProfile) UniqueKeys() map[string]string {
	keys := uniqueIfSet(nil, "gstin", p.GSTIN)
	return uniqueIfSet(keys, "cin", p.CIN)
}

// CompanyProfileInput is the create payload.
type CompanyProfileInput struct {
	CompanyName string       `json:"companyName"`
	Industry    *string      `json:"industry"`
	Size        *CompanySize `json:"size"`
	GSTIN       *string      `json:"gstin"`
	CIN         *string      `json:"cin"`
	Website     *string      `json:"website"`
	Phone       *string      `json:"phone"`
	Address     *string      `json:"address"`
	City        *string      `json:"city"`
	State       *string      `json:"state"`
}

// CompanyProfilePatch is the partial update payload; nil fields are left untouched.
type CompanyProfilePatch struct {
	CompanyName *string      `json:"companyName"`
	Industry    *string      `json:"industry"`
	Size        *CompanySize `json:"size"`
	GSTIN       *string      `json:"gstin"`
	CIN         *string      `json:"cin"`
	Website     *string      `json:"website"`
	Phone       *string      `json:"phone"`
	Address     *string      `json:"address"`
	City        *string      `json:"city"`
	State       *string      `json:"state"`
}

type CompanyProfileUsecase = ProfileUsecase[CompanyProfile, CompanyProfileInput, CompanyProfilePatch]
