package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/startupbooks/startup_books_app/internal/apperrors"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	"github.com/startupbooks/startup_books_app/internal/models"
	"github.com/startupbooks/startup_books_app/internal/utils/mapping"
)

type PgxCostCentreRepository struct {
	BaseRepository
}

// newPgxCostCentreRepository creates a new repository for cost dimension data.
func newPgxCostCentreRepository(pool *pgxpool.Pool) portsrepo.CostCentreRepositoryFacade {
	return &PgxCostCentreRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CostCentreRepositoryFacade = (*PgxCostCentreRepository)(nil)

// SaveCostCategory inserts a new cost category.
func (r *PgxCostCentreRepository) SaveCostCategory(ctx context.Context, category domain.CostCategory) error {
	m := mapping.ToModelCostCategory(category)
	query := `
		INSERT INTO cost_categories (category_id, company_id, name, parent_category_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.CompanyID,
		m.Name,
		m.ParentCategoryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cost category %q already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to save cost category %s: %w", category.CategoryID, err)
	}
	return nil
}

// ListCostCategories lists every cost category of the company.
func (r *PgxCostCentreRepository) ListCostCategories(ctx context.Context, companyID string) ([]domain.CostCategory, error) {
	query := `
		SELECT category_id, company_id, name, parent_category_id, created_at, created_by, last_updated_at, last_updated_by
		FROM cost_categories
		WHERE company_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.CostCategory
	for rows.Next() {
		var m models.CostCategory
		err := rows.Scan(
			&m.CategoryID,
			&m.CompanyID,
			&m.Name,
			&m.ParentCategoryID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cost category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCostCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cost category rows: %w", err)
	}
	return categories, nil
}

// FindCostCategoryByID retrieves one cost category scoped to the company.
func (r *PgxCostCentreRepository) FindCostCategoryByID(ctx context.Context, companyID string, categoryID string) (*domain.CostCategory, error) {
	query := `
		SELECT category_id, company_id, name, parent_category_id, created_at, created_by, last_updated_at, last_updated_by
		FROM cost_categories
		WHERE company_id = $1 AND category_id = $2;
	`
	var m models.CostCategory
	err := r.Pool.QueryRow(ctx, query, companyID, categoryID).Scan(
		&m.CategoryID,
		&m.CompanyID,
		&m.Name,
		&m.ParentCategoryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cost category %s: %w", categoryID, err)
	}
	d := mapping.ToDomainCostCategory(m)
	return &d, nil
}

// SaveCostCentre inserts a new cost centre.
func (r *PgxCostCentreRepository) SaveCostCentre(ctx context.Context, centre domain.CostCentre) error {
	m := mapping.ToModelCostCentre(centre)
	query := `
		INSERT INTO cost_centres (centre_id, company_id, category_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CentreID,
		m.CompanyID,
		m.CategoryID,
		m.Name,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cost centre %q already exists", apperrors.ErrDuplicate, centre.Name)
		}
		return fmt.Errorf("failed to save cost centre %s: %w", centre.CentreID, err)
	}
	return nil
}

// FindCostCentreByName retrieves one cost centre by its unique name.
func (r *PgxCostCentreRepository) FindCostCentreByName(ctx context.Context, companyID string, name string) (*domain.CostCentre, error) {
	query := `
		SELECT centre_id, company_id, category_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM cost_centres
		WHERE company_id = $1 AND name = $2;
	`
	var m models.CostCentre
	err := r.Pool.QueryRow(ctx, query, companyID, name).Scan(
		&m.CentreID,
		&m.CompanyID,
		&m.CategoryID,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cost centre %q: %w", name, err)
	}
	d := mapping.ToDomainCostCentre(m)
	return &d, nil
}

// ListCostCentres lists every cost centre of the company.
func (r *PgxCostCentreRepository) ListCostCentres(ctx context.Context, companyID string) ([]domain.CostCentre, error) {
	query := `
		SELECT centre_id, company_id, category_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM cost_centres
		WHERE company_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost centres: %w", err)
	}
	defer rows.Close()

	var centres []domain.CostCentre
	for rows.Next() {
		var m models.CostCentre
		err := rows.Scan(
			&m.CentreID,
			&m.CompanyID,
			&m.CategoryID,
			&m.Name,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cost centre row: %w", err)
		}
		centres = append(centres, mapping.ToDomainCostCentre(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cost centre rows: %w", err)
	}
	return centres, nil
}

const budgetColumns = `budget_id, company_id, name, ledger_name, cost_centre_name, period_from, period_to, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.CompanyID,
		&m.Name,
		&m.LedgerName,
		&m.CostCentreName,
		&m.PeriodFrom,
		&m.PeriodTo,
		&m.Amount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainBudget(m)
	return &d, nil
}

// SaveBudget inserts a new budget row.
func (r *PgxCostCentreRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID,
		m.CompanyID,
		m.Name,
		m.LedgerName,
		m.CostCentreName,
		m.PeriodFrom,
		m.PeriodTo,
		m.Amount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: budget %q already exists", apperrors.ErrDuplicate, budget.Name)
		}
		return fmt.Errorf("failed to save budget %s: %w", budget.BudgetID, err)
	}
	return nil
}

// ListBudgets lists every budget of the company.
func (r *PgxCostCentreRepository) ListBudgets(ctx context.Context, companyID string) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE company_id = $1 ORDER BY period_from, name;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, *budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}
	return budgets, nil
}

// FindBudgetByID retrieves one budget scoped to the company.
func (r *PgxCostCentreRepository) FindBudgetByID(ctx context.Context, companyID string, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE company_id = $1 AND budget_id = $2;`
	budget, err := scanBudget(r.Pool.QueryRow(ctx, query, companyID, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	return budget, nil
}
