package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/startupbooks/startup_books_app/internal/apperrors"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
	"github.com/startupbooks/startup_books_app/internal/middleware"
	"github.com/startupbooks/startup_books_app/internal/utils/accounting"
)

// costCentreService manages the cost dimension and budget variance.
type costCentreService struct {
	BaseService
	costCentreRepo portsrepo.CostCentreRepositoryFacade
	ledgerRepo     portsrepo.LedgerRepositoryFacade
	reportingRepo  portsrepo.ReportingRepository
}

// NewCostCentreService creates a new CostCentreService.
func NewCostCentreService(ccr portsrepo.CostCentreRepositoryFacade, lr portsrepo.LedgerRepositoryFacade, rr portsrepo.ReportingRepository, authorizer portssvc.CompanyAuthorizerSvc) portssvc.CostCentreSvcFacade {
	return &costCentreService{
		BaseService:    BaseService{CompanyAuthorizer: authorizer},
		costCentreRepo: ccr,
		ledgerRepo:     lr,
		reportingRepo:  rr,
	}
}

var _ portssvc.CostCentreSvcFacade = (*costCentreService)(nil)

// CreateCostCategory creates a grouping for cost centres.
func (s *costCentreService) CreateCostCategory(ctx context.Context, companyID string, req dto.CreateCostCategoryRequest, creatorUserID string) (*domain.CostCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if req.ParentCategoryID != nil {
		if _, err := s.costCentreRepo.FindCostCategoryByID(ctx, companyID, *req.ParentCategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent category %s not found", apperrors.ErrValidation, *req.ParentCategoryID)
			}
			return nil, fmt.Errorf("failed to validate parent category: %w", err)
		}
	}

	now := time.Now()
	category := domain.CostCategory{
		CategoryID:       uuid.NewString(),
		CompanyID:        companyID,
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.costCentreRepo.SaveCostCategory(ctx, category); err != nil {
		logger.Error("Failed to save cost category", slog.String("error", err.Error()), slog.String("category_name", req.Name))
		return nil, fmt.Errorf("failed to create cost category: %w", err)
	}
	return &category, nil
}

// ListCostCategories lists the company's cost categories.
func (s *costCentreService) ListCostCategories(ctx context.Context, companyID string, requestingUserID string) ([]domain.CostCategory, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	categories, err := s.costCentreRepo.ListCostCategories(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost categories: %w", err)
	}
	if categories == nil {
		categories = []domain.CostCategory{}
	}
	return categories, nil
}

// CreateCostCentre creates a cost centre under an existing category.
func (s *costCentreService) CreateCostCentre(ctx context.Context, companyID string, req dto.CreateCostCentreRequest, creatorUserID string) (*domain.CostCentre, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.costCentreRepo.FindCostCategoryByID(ctx, companyID, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: cost category %s not found", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to validate cost category: %w", err)
	}

	now := time.Now()
	centre := domain.CostCentre{
		CentreID:   uuid.NewString(),
		CompanyID:  companyID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.costCentreRepo.SaveCostCentre(ctx, centre); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: cost centre named %q already exists", apperrors.ErrDuplicate, req.Name)
		}
		logger.Error("Failed to save cost centre", slog.String("error", err.Error()), slog.String("centre_name", req.Name))
		return nil, fmt.Errorf("failed to create cost centre: %w", err)
	}
	return &centre, nil
}

// ListCostCentres lists the company's cost centres.
func (s *costCentreService) ListCostCentres(ctx context.Context, companyID string, requestingUserID string) ([]domain.CostCentre, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	centres, err := s.costCentreRepo.ListCostCentres(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost centres: %w", err)
	}
	if centres == nil {
		centres = []domain.CostCentre{}
	}
	return centres, nil
}

// CreateBudget sets a planned amount for a period against either a ledger
// or a cost centre, never both.
func (s *costCentreService) CreateBudget(ctx context.Context, companyID string, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	hasLedger := req.LedgerName != nil && *req.LedgerName != ""
	hasCentre := req.CostCentreName != nil && *req.CostCentreName != ""
	if hasLedger == hasCentre {
		return nil, fmt.Errorf("%w: budget must target exactly one of a ledger or a cost centre", apperrors.ErrValidation)
	}
	if req.PeriodTo.Before(req.PeriodFrom) {
		return nil, fmt.Errorf("%w: budget period end precedes its start", apperrors.ErrValidation)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: budget amount must not be negative", apperrors.ErrValidation)
	}

	if hasLedger {
		if _, err := s.ledgerRepo.FindLedgerByName(ctx, companyID, *req.LedgerName); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: ledger %q not found", apperrors.ErrValidation, *req.LedgerName)
			}
			return nil, fmt.Errorf("failed to validate budget ledger: %w", err)
		}
	} else {
		if _, err := s.costCentreRepo.FindCostCentreByName(ctx, companyID, *req.CostCentreName); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: cost centre %q not found", apperrors.ErrValidation, *req.CostCentreName)
			}
			return nil, fmt.Errorf("failed to validate budget cost centre: %w", err)
		}
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		CompanyID:      companyID,
		Name:           req.Name,
		LedgerName:     req.LedgerName,
		CostCentreName: req.CostCentreName,
		PeriodFrom:     req.PeriodFrom,
		PeriodTo:       req.PeriodTo,
		Amount:         req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.costCentreRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()), slog.String("budget_name", req.Name))
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return &budget, nil
}

// ListBudgets lists the company's budgets.
func (s *costCentreService) ListBudgets(ctx context.Context, companyID string, requestingUserID string) ([]domain.Budget, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	budgets, err := s.costCentreRepo.ListBudgets(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}
	return budgets, nil
}

// BudgetVariance compares every budget against the actual entry movement
// of its ledger or cost centre over its period.
func (s *costCentreService) BudgetVariance(ctx context.Context, companyID string, requestingUserID string) ([]domain.BudgetVarianceRow, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	budgets, err := s.costCentreRepo.ListBudgets(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	rows := make([]domain.BudgetVarianceRow, 0, len(budgets))
	for _, b := range budgets {
		row := domain.BudgetVarianceRow{
			BudgetID: b.BudgetID,
			Name:     b.Name,
			Budgeted: b.Amount,
		}
		if b.LedgerName != nil {
			row.Dimension = *b.LedgerName
			row.Actual, err = s.reportingRepo.ActualForLedger(ctx, companyID, *b.LedgerName, b.PeriodFrom, b.PeriodTo)
		} else if b.CostCentreName != nil {
			row.Dimension = *b.CostCentreName
			row.Actual, err = s.reportingRepo.ActualForCostCentre(ctx, companyID, *b.CostCentreName, b.PeriodFrom, b.PeriodTo)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to compute actuals for budget %s: %w", b.BudgetID, err)
		}
		row.Variance = row.Budgeted.Sub(row.Actual)
		row.UsedPercent = accounting.SafePercent(row.Actual, row.Budgeted)
		rows = append(rows, row)
	}
	return rows, nil
}

// CostCentreSummary aggregates effective entry amounts per cost centre.
func (s *costCentreService) CostCentreSummary(ctx context.Context, companyID string, from time.Time, to time.Time, requestingUserID string) ([]domain.CostCentreSummaryRow, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.CostCentreSummary(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cost centre summary: %w", err)
	}
	if rows == nil {
		rows = []domain.CostCentreSummaryRow{}
	}
	return rows, nil
}
