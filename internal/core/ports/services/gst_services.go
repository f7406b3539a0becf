package services

import (
	"context"
	"time"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/dto"
)

// GstConfigSvc defines operations on a company's tax configuration.
type GstConfigSvc interface {
	SaveRegistration(ctx context.Context, companyID string, req dto.CreateGstRegistrationRequest, requestingUserID string) (*domain.GstRegistration, error)
	GetRegistration(ctx context.Context, companyID string, requestingUserID string) (*domain.GstRegistration, error)

	CreateTaxRate(ctx context.Context, companyID string, req dto.CreateTaxRateRequest, requestingUserID string) (*domain.GstTaxRate, error)
	ListTaxRates(ctx context.Context, companyID string, requestingUserID string) ([]domain.GstTaxRate, error)

	SaveLedgerMapping(ctx context.Context, companyID string, req dto.CreateGstLedgerMappingRequest, requestingUserID string) (*domain.GstLedgerMapping, error)
}

// GstCalculatorSvc computes tax breakups for document lines. The intra vs
// inter state split compares the place of supply against the company's
// registered state code.
type GstCalculatorSvc interface {
	// ComputeLine computes the tax for one inventory line. The line's
	// explicit GstRate wins over the HSN rate lookup; a line with neither
	// is untaxed.
	ComputeLine(ctx context.Context, companyID string, line domain.InventoryLine, on time.Time, placeOfSupply string) (domain.TaxLine, error)

	// ComputeDocument computes per-line taxes and their document total.
	ComputeDocument(ctx context.Context, companyID string, lines []domain.InventoryLine, on time.Time, placeOfSupply string) ([]domain.TaxLine, domain.TaxLine, error)

	// ResolvePostingLedger returns the ledger mapped to a tax component.
	// A missing mapping is ErrConfiguration, never a silent skip.
	ResolvePostingLedger(ctx context.Context, companyID string, mappingType domain.GstMappingType) (string, error)
}

// GstSvcFacade combines the tax configuration and calculation interfaces.
type GstSvcFacade interface {
	GstConfigSvc
	GstCalculatorSvc
}
