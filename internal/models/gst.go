package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GstRegistration holds a company's GST registration row.
type GstRegistration struct {
	RegistrationID   string    `db:"registration_id"`
	CompanyID        string    `db:"company_id"`
	GSTIN            string    `db:"gstin"`
	StateCode        string    `db:"state_code"`
	RegistrationType string    `db:"registration_type"`
	EffectiveFrom    time.Time `db:"effective_from"`
	AuditFields
}

// GstTaxRate is a rate row keyed by HSN code and supply type.
type GstTaxRate struct {
	RateID        string          `db:"rate_id"`
	CompanyID     string          `db:"company_id"`
	HSNCode       string          `db:"hsn_code"`
	SupplyType    string          `db:"supply_type"`
	CGSTRate      decimal.Decimal `db:"cgst_rate"`
	SGSTRate      decimal.Decimal `db:"sgst_rate"`
	IGSTRate      decimal.Decimal `db:"igst_rate"`
	CessRate      decimal.Decimal `db:"cess_rate"`
	EffectiveFrom time.Time       `db:"effective_from"`
	EffectiveTo   *time.Time      `db:"effective_to"`
	AuditFields
}

// GstLedgerMapping maps one tax component to its posting ledger.
type GstLedgerMapping struct {
	MappingID   string `db:"mapping_id"`
	CompanyID   string `db:"company_id"`
	MappingType string `db:"mapping_type"`
	LedgerName  string `db:"ledger_name"`
	AuditFields
}
