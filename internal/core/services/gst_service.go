package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/startupbooks/startup_books_app/internal/apperrors"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
	"github.com/startupbooks/startup_books_app/internal/middleware"
	"github.com/startupbooks/startup_books_app/internal/utils/accounting"
)

var two = decimal.NewFromInt(2)

// gstService computes tax breakups and manages tenant tax configuration.
type gstService struct {
	BaseService
	gstRepo     portsrepo.GstRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewGstService creates a new GstService.
func NewGstService(gr portsrepo.GstRepositoryFacade, lr portsrepo.LedgerRepositoryFacade, cr portsrepo.CompanyRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.GstSvcFacade {
	return &gstService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		gstRepo:     gr,
		ledgerRepo:  lr,
		companyRepo: cr,
	}
}

var _ portssvc.GstSvcFacade = (*gstService)(nil)

// SaveRegistration records the company's GST registration.
func (s *gstService) SaveRegistration(ctx context.Context, companyID string, req dto.CreateGstRegistrationRequest, requestingUserID string) (*domain.GstRegistration, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	reg := domain.GstRegistration{
		RegistrationID:   uuid.NewString(),
		CompanyID:        companyID,
		GSTIN:            req.GSTIN,
		StateCode:        req.StateCode,
		RegistrationType: req.RegistrationType,
		EffectiveFrom:    req.EffectiveFrom,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.gstRepo.SaveRegistration(ctx, reg); err != nil {
		logger.Error("Failed to save GST registration", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save GST registration: %w", err)
	}

	logger.Info("GST registration saved", slog.String("company_id", companyID), slog.String("gstin", req.GSTIN))
	return &reg, nil
}

// GetRegistration retrieves the company's GST registration.
func (s *gstService) GetRegistration(ctx context.Context, companyID string, requestingUserID string) (*domain.GstRegistration, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.gstRepo.FindRegistration(ctx, companyID)
}

// CreateTaxRate adds a rate slab for an HSN/SAC code.
func (s *gstService) CreateTaxRate(ctx context.Context, companyID string, req dto.CreateTaxRateRequest, requestingUserID string) (*domain.GstTaxRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if req.EffectiveTo != nil && req.EffectiveTo.Before(req.EffectiveFrom) {
		return nil, fmt.Errorf("%w: effectiveTo precedes effectiveFrom", apperrors.ErrValidation)
	}
	for _, r := range []decimal.Decimal{req.CGSTRate, req.SGSTRate, req.IGSTRate, req.CessRate} {
		if r.IsNegative() {
			return nil, fmt.Errorf("%w: tax rates must not be negative", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	rate := domain.GstTaxRate{
		RateID:        uuid.NewString(),
		CompanyID:     companyID,
		HSNCode:       req.HSNCode,
		SupplyType:    req.SupplyType,
		CGSTRate:      req.CGSTRate,
		SGSTRate:      req.SGSTRate,
		IGSTRate:      req.IGSTRate,
		CessRate:      req.CessRate,
		EffectiveFrom: req.EffectiveFrom,
		EffectiveTo:   req.EffectiveTo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.gstRepo.SaveTaxRate(ctx, rate); err != nil {
		logger.Error("Failed to save tax rate", slog.String("error", err.Error()), slog.String("hsn_code", req.HSNCode))
		return nil, fmt.Errorf("failed to save tax rate: %w", err)
	}
	return &rate, nil
}

// ListTaxRates lists every configured rate slab.
func (s *gstService) ListTaxRates(ctx context.Context, companyID string, requestingUserID string) ([]domain.GstTaxRate, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	rates, err := s.gstRepo.ListTaxRates(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax rates: %w", err)
	}
	if rates == nil {
		rates = []domain.GstTaxRate{}
	}
	return rates, nil
}

// SaveLedgerMapping binds a tax component to a posting ledger. The ledger
// must already exist on the chart of accounts.
func (s *gstService) SaveLedgerMapping(ctx context.Context, companyID string, req dto.CreateGstLedgerMappingRequest, requestingUserID string) (*domain.GstLedgerMapping, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.ledgerRepo.FindLedgerByName(ctx, companyID, req.LedgerName); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: ledger %q not found", apperrors.ErrValidation, req.LedgerName)
		}
		return nil, fmt.Errorf("failed to validate mapping ledger: %w", err)
	}

	now := time.Now()
	mapping := domain.GstLedgerMapping{
		MappingID:   uuid.NewString(),
		CompanyID:   companyID,
		MappingType: req.MappingType,
		LedgerName:  req.LedgerName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.gstRepo.SaveLedgerMapping(ctx, mapping); err != nil {
		logger.Error("Failed to save GST ledger mapping", slog.String("error", err.Error()), slog.String("mapping_type", string(req.MappingType)))
		return nil, fmt.Errorf("failed to save GST ledger mapping: %w", err)
	}
	return &mapping, nil
}

// homeStateCode resolves the state the intra/inter comparison runs against:
// the GST registration's state when one exists, else the company's.
func (s *gstService) homeStateCode(ctx context.Context, companyID string) (string, error) {
	reg, err := s.gstRepo.FindRegistration(ctx, companyID)
	if err == nil && reg.StateCode != "" {
		return reg.StateCode, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("failed to load GST registration: %w", err)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("failed to load company: %w", err)
	}
	return company.StateCode, nil
}

// ComputeLine computes the tax breakup for one line. An explicit line rate
// is the combined rate and wins over the HSN lookup; intrastate supplies
// split it evenly between CGST and SGST, interstate supplies charge it all
// as IGST. Each component rounds to 2dp independently.
func (s *gstService) ComputeLine(ctx context.Context, companyID string, line domain.InventoryLine, on time.Time, placeOfSupply string) (domain.TaxLine, error) {
	taxable := line.TaxableValue()
	result := domain.TaxLine{Taxable: taxable, Total: taxable}

	homeState, err := s.homeStateCode(ctx, companyID)
	if err != nil {
		return domain.TaxLine{}, err
	}
	interstate := placeOfSupply != "" && homeState != "" && placeOfSupply != homeState

	if line.GstRate != nil {
		rate := *line.GstRate
		if rate.IsNegative() {
			return domain.TaxLine{}, fmt.Errorf("%w: line GST rate must not be negative", apperrors.ErrValidation)
		}
		if interstate {
			result.IGST = accounting.Percent(taxable, rate)
		} else {
			half := rate.Div(two)
			result.CGST = accounting.Percent(taxable, half)
			result.SGST = accounting.Percent(taxable, half)
		}
		result.Total = taxable.Add(result.CGST).Add(result.SGST).Add(result.IGST)
		return result, nil
	}

	if line.HSNCode == "" {
		// Untaxed line.
		return result, nil
	}

	rate, err := s.gstRepo.FindRateByHSN(ctx, companyID, line.HSNCode, domain.SupplyGoods, on)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.TaxLine{}, apperrors.NewConfigurationError(fmt.Sprintf("no tax rate configured for HSN %s on %s", line.HSNCode, on.Format("2006-01-02")))
		}
		return domain.TaxLine{}, fmt.Errorf("failed to resolve tax rate for HSN %s: %w", line.HSNCode, err)
	}

	if interstate {
		igstRate := rate.IGSTRate
		if igstRate.IsZero() {
			igstRate = rate.CGSTRate.Add(rate.SGSTRate)
		}
		result.IGST = accounting.Percent(taxable, igstRate)
	} else {
		result.CGST = accounting.Percent(taxable, rate.CGSTRate)
		result.SGST = accounting.Percent(taxable, rate.SGSTRate)
	}
	result.Cess = accounting.Percent(taxable, rate.CessRate)
	result.Total = taxable.Add(result.CGST).Add(result.SGST).Add(result.IGST).Add(result.Cess)
	return result, nil
}

// ComputeDocument computes per-line taxes and the document total.
func (s *gstService) ComputeDocument(ctx context.Context, companyID string, lines []domain.InventoryLine, on time.Time, placeOfSupply string) ([]domain.TaxLine, domain.TaxLine, error) {
	taxLines := make([]domain.TaxLine, len(lines))
	var totals domain.TaxLine
	for i, line := range lines {
		tl, err := s.ComputeLine(ctx, companyID, line, on, placeOfSupply)
		if err != nil {
			return nil, domain.TaxLine{}, err
		}
		taxLines[i] = tl
		totals = totals.Add(tl)
	}
	return taxLines, totals, nil
}

// ResolvePostingLedger returns the ledger mapped to a tax component. A
// missing mapping fails with ErrConfiguration so tax amounts are never
// silently dropped.
func (s *gstService) ResolvePostingLedger(ctx context.Context, companyID string, mappingType domain.GstMappingType) (string, error) {
	mappings, err := s.gstRepo.FindLedgerMappings(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("failed to load GST ledger mappings: %w", err)
	}
	ledgerName, ok := mappings[mappingType]
	if !ok || ledgerName == "" {
		return "", apperrors.NewConfigurationError(fmt.Sprintf("no ledger mapped for %s", mappingType))
	}
	return ledgerName, nil
}
