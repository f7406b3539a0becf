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

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for chart-of-accounts data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveLedgerGroup inserts a new ledger group.
func (r *PgxLedgerRepository) SaveLedgerGroup(ctx context.Context, group domain.LedgerGroup) error {
	query := `
		INSERT INTO ledger_groups (group_id, company_id, name, category, parent_group_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		group.GroupID,
		group.CompanyID,
		group.Name,
		string(group.Category),
		group.ParentGroupID,
		group.CreatedAt,
		group.CreatedBy,
		group.LastUpdatedAt,
		group.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger group %q already exists", apperrors.ErrDuplicate, group.Name)
		}
		return fmt.Errorf("failed to save ledger group %s: %w", group.GroupID, err)
	}
	return nil
}

// UpdateLedgerGroup updates mutable fields of a group.
func (r *PgxLedgerRepository) UpdateLedgerGroup(ctx context.Context, group domain.LedgerGroup) error {
	query := `
		UPDATE ledger_groups
		SET name = $1, parent_group_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $5 AND group_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		group.Name,
		group.ParentGroupID,
		group.LastUpdatedAt,
		group.LastUpdatedBy,
		group.CompanyID,
		group.GroupID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger group %q already exists", apperrors.ErrDuplicate, group.Name)
		}
		return fmt.Errorf("failed to update ledger group %s: %w", group.GroupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteLedgerGroup removes a group row.
func (r *PgxLedgerRepository) DeleteLedgerGroup(ctx context.Context, companyID string, groupID string) error {
	query := `DELETE FROM ledger_groups WHERE company_id = $1 AND group_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, companyID, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger group %s: %w", groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const ledgerGroupColumns = `group_id, company_id, name, category, parent_group_id, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerGroup(row pgx.Row) (*domain.LedgerGroup, error) {
	var m models.LedgerGroup
	err := row.Scan(
		&m.GroupID,
		&m.CompanyID,
		&m.Name,
		&m.Category,
		&m.ParentGroupID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainLedgerGroup(m)
	return &d, nil
}

// FindLedgerGroupByID retrieves one group scoped to the company.
func (r *PgxLedgerRepository) FindLedgerGroupByID(ctx context.Context, companyID string, groupID string) (*domain.LedgerGroup, error) {
	query := `SELECT ` + ledgerGroupColumns + ` FROM ledger_groups WHERE company_id = $1 AND group_id = $2;`
	group, err := scanLedgerGroup(r.Pool.QueryRow(ctx, query, companyID, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger group %s: %w", groupID, err)
	}
	return group, nil
}

// FindLedgerGroupByName retrieves one group by its name.
func (r *PgxLedgerRepository) FindLedgerGroupByName(ctx context.Context, companyID string, name string) (*domain.LedgerGroup, error) {
	query := `SELECT ` + ledgerGroupColumns + ` FROM ledger_groups WHERE company_id = $1 AND name = $2;`
	group, err := scanLedgerGroup(r.Pool.QueryRow(ctx, query, companyID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger group %q: %w", name, err)
	}
	return group, nil
}

// ListLedgerGroups lists every group of the company ordered by name.
func (r *PgxLedgerRepository) ListLedgerGroups(ctx context.Context, companyID string) ([]domain.LedgerGroup, error) {
	query := `SELECT ` + ledgerGroupColumns + ` FROM ledger_groups WHERE company_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.LedgerGroup
	for rows.Next() {
		group, err := scanLedgerGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger group row: %w", err)
		}
		groups = append(groups, *group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger group rows: %w", err)
	}
	return groups, nil
}

// CountChildGroups counts groups nested directly under the given group.
func (r *PgxLedgerRepository) CountChildGroups(ctx context.Context, companyID string, groupID string) (int, error) {
	query := `SELECT COUNT(*) FROM ledger_groups WHERE company_id = $1 AND parent_group_id = $2;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, companyID, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count child groups of %s: %w", groupID, err)
	}
	return count, nil
}

// CountGroupLedgers counts ledgers placed directly under the given group.
func (r *PgxLedgerRepository) CountGroupLedgers(ctx context.Context, companyID string, groupID string) (int, error) {
	query := `SELECT COUNT(*) FROM ledgers WHERE company_id = $1 AND group_id = $2;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, companyID, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ledgers under group %s: %w", groupID, err)
	}
	return count, nil
}

const ledgerColumns = `ledger_id, company_id, group_id, group_category, name, opening_balance, opening_side, credit_limit, credit_period_days, bill_by_bill, inventory_affects_stock, gstin, created_at, created_by, last_updated_at, last_updated_by`

func scanLedger(row pgx.Row) (*domain.Ledger, error) {
	var m models.Ledger
	err := row.Scan(
		&m.LedgerID,
		&m.CompanyID,
		&m.GroupID,
		&m.GroupCategory,
		&m.Name,
		&m.OpeningBalance,
		&m.OpeningSide,
		&m.CreditLimit,
		&m.CreditPeriodDays,
		&m.BillByBill,
		&m.InventoryAffectsStock,
		&m.GSTIN,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainLedger(m)
	return &d, nil
}

// SaveLedger inserts a new ledger.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	query := `
		INSERT INTO ledgers (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		ledger.LedgerID,
		ledger.CompanyID,
		ledger.GroupID,
		string(ledger.GroupCategory),
		ledger.Name,
		ledger.OpeningBalance,
		string(ledger.OpeningSide),
		ledger.CreditLimit,
		ledger.CreditPeriodDays,
		ledger.BillByBill,
		ledger.InventoryAffectsStock,
		ledger.GSTIN,
		ledger.CreatedAt,
		ledger.CreatedBy,
		ledger.LastUpdatedAt,
		ledger.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger %q already exists", apperrors.ErrDuplicate, ledger.Name)
		}
		return fmt.Errorf("failed to save ledger %s: %w", ledger.LedgerID, err)
	}
	return nil
}

// UpdateLedger updates mutable fields of a ledger.
func (r *PgxLedgerRepository) UpdateLedger(ctx context.Context, ledger domain.Ledger) error {
	query := `
		UPDATE ledgers
		SET group_id = $1, group_category = $2, name = $3, opening_balance = $4, opening_side = $5,
		    credit_limit = $6, credit_period_days = $7, bill_by_bill = $8, inventory_affects_stock = $9,
		    gstin = $10, last_updated_at = $11, last_updated_by = $12
		WHERE company_id = $13 AND ledger_id = $14;
	`
	tag, err := r.Pool.Exec(ctx, query,
		ledger.GroupID,
		string(ledger.GroupCategory),
		ledger.Name,
		ledger.OpeningBalance,
		string(ledger.OpeningSide),
		ledger.CreditLimit,
		ledger.CreditPeriodDays,
		ledger.BillByBill,
		ledger.InventoryAffectsStock,
		ledger.GSTIN,
		ledger.LastUpdatedAt,
		ledger.LastUpdatedBy,
		ledger.CompanyID,
		ledger.LedgerID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger %q already exists", apperrors.ErrDuplicate, ledger.Name)
		}
		return fmt.Errorf("failed to update ledger %s: %w", ledger.LedgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteLedger removes a ledger row.
func (r *PgxLedgerRepository) DeleteLedger(ctx context.Context, companyID string, ledgerID string) error {
	query := `DELETE FROM ledgers WHERE company_id = $1 AND ledger_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, companyID, ledgerID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger %s: %w", ledgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindLedgerByID retrieves one ledger scoped to the company.
func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, companyID string, ledgerID string) (*domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE company_id = $1 AND ledger_id = $2;`
	ledger, err := scanLedger(r.Pool.QueryRow(ctx, query, companyID, ledgerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}
	return ledger, nil
}

// FindLedgerByName retrieves one ledger by its unique name.
func (r *PgxLedgerRepository) FindLedgerByName(ctx context.Context, companyID string, name string) (*domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE company_id = $1 AND name = $2;`
	ledger, err := scanLedger(r.Pool.QueryRow(ctx, query, companyID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger %q: %w", name, err)
	}
	return ledger, nil
}

// FindLedgersByNames retrieves several ledgers keyed by name. Missing names
// are simply absent from the map.
func (r *PgxLedgerRepository) FindLedgersByNames(ctx context.Context, companyID string, names []string) (map[string]domain.Ledger, error) {
	if len(names) == 0 {
		return map[string]domain.Ledger{}, nil
	}
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE company_id = $1 AND name = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, companyID, names)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledgers by names: %w", err)
	}
	defer rows.Close()

	ledgers := make(map[string]domain.Ledger, len(names))
	for rows.Next() {
		ledger, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row during batch fetch: %w", err)
		}
		ledgers[ledger.Name] = *ledger
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows during batch fetch: %w", err)
	}
	return ledgers, nil
}

// ListLedgers lists every ledger of the company ordered by name.
func (r *PgxLedgerRepository) ListLedgers(ctx context.Context, companyID string) ([]domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE company_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	defer rows.Close()

	var ledgers []domain.Ledger
	for rows.Next() {
		ledger, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		ledgers = append(ledgers, *ledger)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return ledgers, nil
}

// FindFirstLedgerByCategories returns the first ledger by name whose group
// category is one of the given categories.
func (r *PgxLedgerRepository) FindFirstLedgerByCategories(ctx context.Context, companyID string, categories []domain.GroupCategory) (*domain.Ledger, error) {
	cats := make([]string, len(categories))
	for i, c := range categories {
		cats[i] = string(c)
	}
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE company_id = $1 AND group_category = ANY($2) ORDER BY name LIMIT 1;`
	ledger, err := scanLedger(r.Pool.QueryRow(ctx, query, companyID, cats))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger by categories: %w", err)
	}
	return ledger, nil
}

// CountEntriesForLedger counts voucher entries referencing the ledger.
func (r *PgxLedgerRepository) CountEntriesForLedger(ctx context.Context, companyID string, ledgerName string) (int, error) {
	query := `SELECT COUNT(*) FROM voucher_entries WHERE company_id = $1 AND ledger_name = $2;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, companyID, ledgerName).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries for ledger %q: %w", ledgerName, err)
	}
	return count, nil
}
