package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for derived stock data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

// StockBalance replays posted inventory lines for one (item, warehouse)
// pair. Balances are never stored; this derivation is the source of truth.
func (r *PgxInventoryRepository) StockBalance(ctx context.Context, companyID string, itemName string, warehouseName string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, derivedStockQuery, companyID, itemName, warehouseName).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to derive stock for %q in %q: %w", itemName, warehouseName, err)
	}
	return balance, nil
}

// StockSummary derives the position of every (item, warehouse) pair that
// has ever moved.
func (r *PgxInventoryRepository) StockSummary(ctx context.Context, companyID string) ([]domain.StockBalanceRow, error) {
	query := `
		SELECT il.item_name, il.warehouse_name,
		       COALESCE(SUM(
		           CASE WHEN v.category IN ('PURCHASE', 'RECEIPT_NOTE', 'CREDIT_NOTE') THEN il.quantity ELSE -il.quantity END
		       ), 0) AS quantity
		FROM inventory_lines il
		JOIN vouchers v ON v.voucher_id = il.voucher_id
		WHERE il.company_id = $1
		  AND v.status = 'POSTED'
		  AND v.category IN ('PURCHASE', 'RECEIPT_NOTE', 'CREDIT_NOTE', 'SALES', 'DELIVERY_NOTE', 'DEBIT_NOTE')
		GROUP BY il.item_name, il.warehouse_name
		ORDER BY il.item_name, il.warehouse_name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock summary: %w", err)
	}
	defer rows.Close()

	var summary []domain.StockBalanceRow
	for rows.Next() {
		var row domain.StockBalanceRow
		if err := rows.Scan(&row.ItemName, &row.WarehouseName, &row.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan stock summary row: %w", err)
		}
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock summary rows: %w", err)
	}
	return summary, nil
}
