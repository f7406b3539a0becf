package repositories

import (
	"context"
	"time"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// GstRepositoryFacade provides access to tenant tax configuration.
type GstRepositoryFacade interface {
	SaveRegistration(ctx context.Context, reg domain.GstRegistration) error
	FindRegistration(ctx context.Context, companyID string) (*domain.GstRegistration, error)

	SaveTaxRate(ctx context.Context, rate domain.GstTaxRate) error
	ListTaxRates(ctx context.Context, companyID string) ([]domain.GstTaxRate, error)
	// FindRateByHSN resolves the rate effective on the given date for an
	// HSN/SAC code and supply type.
	FindRateByHSN(ctx context.Context, companyID string, hsnCode string, supplyType domain.SupplyType, on time.Time) (*domain.GstTaxRate, error)

	SaveLedgerMapping(ctx context.Context, mapping domain.GstLedgerMapping) error
	// FindLedgerMappings returns every configured mapping keyed by type.
	FindLedgerMappings(ctx context.Context, companyID string) (map[domain.GstMappingType]string, error)
}
