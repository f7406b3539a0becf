package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplyType distinguishes goods from services for rate lookup.
type SupplyType string

const (
	SupplyGoods    SupplyType = "GOODS"
	SupplyServices SupplyType = "SERVICES"
)

// GstMappingType identifies which tax component a posting ledger is mapped to.
type GstMappingType string

const (
	MappingOutputCGST GstMappingType = "OUTPUT_CGST"
	MappingOutputSGST GstMappingType = "OUTPUT_SGST"
	MappingOutputIGST GstMappingType = "OUTPUT_IGST"
	MappingOutputCess GstMappingType = "OUTPUT_CESS"
	MappingInputCGST  GstMappingType = "INPUT_CGST"
	MappingInputSGST  GstMappingType = "INPUT_SGST"
	MappingInputIGST  GstMappingType = "INPUT_IGST"
	MappingInputCess  GstMappingType = "INPUT_CESS"
)

// GstRegistration holds a company's GST registration details.
type GstRegistration struct {
	RegistrationID   string    `json:"registrationID"`
	CompanyID        string    `json:"companyID"`
	GSTIN            string    `json:"gstin"`
	StateCode        string    `json:"stateCode"`
	RegistrationType string    `json:"registrationType"` // REGULAR, COMPOSITION
	EffectiveFrom    time.Time `json:"effectiveFrom"`
	AuditFields
}

// GstTaxRate is a rate keyed by HSN/SAC code and supply type, valid within
// an effective date window.
type GstTaxRate struct {
	RateID        string          `json:"rateID"`
	CompanyID     string          `json:"companyID"`
	HSNCode       string          `json:"hsnCode"`
	SupplyType    SupplyType      `json:"supplyType"`
	CGSTRate      decimal.Decimal `json:"cgstRate"`
	SGSTRate      decimal.Decimal `json:"sgstRate"`
	IGSTRate      decimal.Decimal `json:"igstRate"`
	CessRate      decimal.Decimal `json:"cessRate"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	EffectiveTo   *time.Time      `json:"effectiveTo,omitempty"`
	AuditFields
}

// TotalRate is the combined percentage applied to a taxable value.
func (r GstTaxRate) TotalRate() decimal.Decimal {
	return r.CGSTRate.Add(r.SGSTRate).Add(r.IGSTRate)
}

// InEffect reports whether the rate applies on the given date.
func (r GstTaxRate) InEffect(on time.Time) bool {
	if on.Before(r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && on.After(*r.EffectiveTo) {
		return false
	}
	return true
}

// GstLedgerMapping maps a tax component to the ledger it posts against.
type GstLedgerMapping struct {
	MappingID   string         `json:"mappingID"`
	CompanyID   string         `json:"companyID"`
	MappingType GstMappingType `json:"mappingType"`
	LedgerName  string         `json:"ledgerName"`
	AuditFields
}

// TaxLine is the computed tax breakup for one document line.
// Each component is rounded to 2dp independently before summing, so the
// document total can drift from a single-rounding figure by up to a paisa.
type TaxLine struct {
	Taxable decimal.Decimal `json:"taxable"`
	CGST    decimal.Decimal `json:"cgst"`
	SGST    decimal.Decimal `json:"sgst"`
	IGST    decimal.Decimal `json:"igst"`
	Cess    decimal.Decimal `json:"cess"`
	Total   decimal.Decimal `json:"total"`
}

// Add accumulates another tax line into this one.
func (t TaxLine) Add(o TaxLine) TaxLine {
	return TaxLine{
		Taxable: t.Taxable.Add(o.Taxable),
		CGST:    t.CGST.Add(o.CGST),
		SGST:    t.SGST.Add(o.SGST),
		IGST:    t.IGST.Add(o.IGST),
		Cess:    t.Cess.Add(o.Cess),
		Total:   t.Total.Add(o.Total),
	}
}

// HasTax reports whether any tax component is non-zero.
func (t TaxLine) HasTax() bool {
	return !t.CGST.IsZero() || !t.SGST.IsZero() || !t.IGST.IsZero() || !t.Cess.IsZero()
}
