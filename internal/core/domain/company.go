package domain

// UserCompanyRole defines the role a user holds within a company.
type UserCompanyRole string

const (
	RoleOwner    UserCompanyRole = "OWNER"
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READ_ONLY"
)

// rolePrecedence orders roles from least to most privileged.
var rolePrecedence = map[UserCompanyRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleAdmin:    3,
	RoleOwner:    4,
}

// Satisfies reports whether the role meets or exceeds the required role.
func (r UserCompanyRole) Satisfies(required UserCompanyRole) bool {
	return rolePrecedence[r] >= rolePrecedence[required]
}

// Company is the tenant. Every ledger, voucher, bill and report is scoped
// to exactly one company; a single base currency is assumed per company.
type Company struct {
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"`
	GSTIN        string `json:"gstin"`     // GST registration number, optional
	StateCode    string `json:"stateCode"` // place-of-supply comparisons
	FYStartMonth int    `json:"fyStartMonth"`
	AuditFields
}

// UserCompany links a user to a company with a role.
type UserCompany struct {
	UserID    string          `json:"userID"`
	CompanyID string          `json:"companyID"`
	Role      UserCompanyRole `json:"role"`
	AuditFields
}
