package services

import (
	"context"
	"time"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/dto"
)

// CostCentreConfigSvc defines operations on the cost dimension.
type CostCentreConfigSvc interface {
	CreateCostCategory(ctx context.Context, companyID string, req dto.CreateCostCategoryRequest, creatorUserID string) (*domain.CostCategory, error)
	ListCostCategories(ctx context.Context, companyID string, requestingUserID string) ([]domain.CostCategory, error)

	CreateCostCentre(ctx context.Context, companyID string, req dto.CreateCostCentreRequest, creatorUserID string) (*domain.CostCentre, error)
	ListCostCentres(ctx context.Context, companyID string, requestingUserID string) ([]domain.CostCentre, error)
}

// BudgetSvc defines budget configuration and variance reporting.
type BudgetSvc interface {
	CreateBudget(ctx context.Context, companyID string, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, companyID string, requestingUserID string) ([]domain.Budget, error)

	// BudgetVariance compares every budget against period actuals.
	BudgetVariance(ctx context.Context, companyID string, requestingUserID string) ([]domain.BudgetVarianceRow, error)
}

// CostCentreReportSvc aggregates entry amounts per cost centre.
type CostCentreReportSvc interface {
	CostCentreSummary(ctx context.Context, companyID string, from time.Time, to time.Time, requestingUserID string) ([]domain.CostCentreSummaryRow, error)
}

// CostCentreSvcFacade combines the cost dimension service interfaces.
type CostCentreSvcFacade interface {
	CostCentreConfigSvc
	BudgetSvc
	CostCentreReportSvc
}
