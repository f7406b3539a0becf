package models

// Company is the tenant row.
type Company struct {
	CompanyID    string `db:"company_id"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
	GSTIN        string `db:"gstin"`
	StateCode    string `db:"state_code"`
	FYStartMonth int    `db:"fy_start_month"`
	AuditFields
}

// UserCompany links a user to a company with a role.
type UserCompany struct {
	UserID    string `db:"user_id"`
	CompanyID string `db:"company_id"`
	Role      string `db:"role"`
	AuditFields
}
