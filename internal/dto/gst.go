package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// CreateGstRegistrationRequest records a company's GST registration details.
type CreateGstRegistrationRequest struct {
	GSTIN            string    `json:"gstin" binding:"required,len=15"`
	StateCode        string    `json:"stateCode" binding:"required,len=2"`
	RegistrationType string    `json:"registrationType" binding:"required,oneof=REGULAR COMPOSITION"`
	EffectiveFrom    time.Time `json:"effectiveFrom" binding:"required"`
}

// CreateTaxRateRequest adds an HSN/SAC rate slab effective from a date.
type CreateTaxRateRequest struct {
	HSNCode       string            `json:"hsnCode" binding:"required"`
	SupplyType    domain.SupplyType `json:"supplyType" binding:"required,supplytype"`
	CGSTRate      decimal.Decimal   `json:"cgstRate"`
	SGSTRate      decimal.Decimal   `json:"sgstRate"`
	IGSTRate      decimal.Decimal   `json:"igstRate"`
	CessRate      decimal.Decimal   `json:"cessRate"`
	EffectiveFrom time.Time         `json:"effectiveFrom" binding:"required"`
	EffectiveTo   *time.Time        `json:"effectiveTo,omitempty"`
}

// CreateGstLedgerMappingRequest binds a tax bucket to a posting ledger.
type CreateGstLedgerMappingRequest struct {
	MappingType domain.GstMappingType `json:"mappingType" binding:"required,gstmapping"`
	LedgerName  string                `json:"ledgerName" binding:"required"`
}

// ComputeTaxLineRequest previews tax on a single line without posting.
type ComputeTaxLineRequest struct {
	TaxableValue  decimal.Decimal `json:"taxableValue" binding:"required"`
	GstRate       decimal.Decimal `json:"gstRate" binding:"required"`
	PlaceOfSupply string          `json:"placeOfSupply" binding:"required,len=2"`
}

// ComputeTaxDocumentRequest previews tax for a whole document.
type ComputeTaxDocumentRequest struct {
	PlaceOfSupply string                  `json:"placeOfSupply" binding:"required,len=2"`
	Lines         []ComputeTaxLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// TaxComputationResponse carries the split tax amounts for a preview.
type TaxComputationResponse struct {
	Interstate bool             `json:"interstate"`
	Lines      []domain.TaxLine `json:"lines"`
	Totals     domain.TaxLine   `json:"totals"`
}
