package repositories

import (
	"context"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// CostCentreRepositoryFacade provides access to the cost dimension and
// budget configuration.
type CostCentreRepositoryFacade interface {
	SaveCostCategory(ctx context.Context, category domain.CostCategory) error
	ListCostCategories(ctx context.Context, companyID string) ([]domain.CostCategory, error)
	FindCostCategoryByID(ctx context.Context, companyID string, categoryID string) (*domain.CostCategory, error)

	SaveCostCentre(ctx context.Context, centre domain.CostCentre) error
	FindCostCentreByName(ctx context.Context, companyID string, name string) (*domain.CostCentre, error)
	ListCostCentres(ctx context.Context, companyID string) ([]domain.CostCentre, error)

	SaveBudget(ctx context.Context, budget domain.Budget) error
	ListBudgets(ctx context.Context, companyID string) ([]domain.Budget, error)
	FindBudgetByID(ctx context.Context, companyID string, budgetID string) (*domain.Budget, error)
}
