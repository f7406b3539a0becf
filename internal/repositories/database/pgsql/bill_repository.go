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

type PgxBillRepository struct {
	BaseRepository
}

// newPgxBillRepository creates a new repository for bill and settlement data.
func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepositoryFacade {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillRepositoryFacade = (*PgxBillRepository)(nil)

const billColumns = `bill_id, company_id, bill_type, number, ledger_name, bill_date, due_date, original_amount, settled_amount, outstanding_amount, status, voucher_id, created_at, created_by, last_updated_at, last_updated_by`

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var m models.Bill
	err := row.Scan(
		&m.BillID,
		&m.CompanyID,
		&m.BillType,
		&m.Number,
		&m.LedgerName,
		&m.BillDate,
		&m.DueDate,
		&m.OriginalAmount,
		&m.SettledAmount,
		&m.OutstandingAmount,
		&m.Status,
		&m.VoucherID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainBill(m)
	return &d, nil
}

// insertBillTx writes a bill row inside an existing transaction. Voucher
// posting uses it to open bill-by-bill tracking atomically.
func insertBillTx(ctx context.Context, tx pgx.Tx, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.BillID,
		m.CompanyID,
		m.BillType,
		m.Number,
		m.LedgerName,
		m.BillDate,
		m.DueDate,
		m.OriginalAmount,
		m.SettledAmount,
		m.OutstandingAmount,
		m.Status,
		m.VoucherID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bill %q already exists", apperrors.ErrDuplicate, bill.Number)
		}
		return fmt.Errorf("failed to insert bill %s: %w", bill.BillID, err)
	}
	return nil
}

// SaveBill inserts a standalone bill row.
func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertBillTx(ctx, tx, bill); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindBillByID retrieves one bill scoped to the company.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, companyID string, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE company_id = $1 AND bill_id = $2;`
	bill, err := scanBill(r.Pool.QueryRow(ctx, query, companyID, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}
	return bill, nil
}

// FindBillByNumber retrieves one bill by its unique number.
func (r *PgxBillRepository) FindBillByNumber(ctx context.Context, companyID string, number string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE company_id = $1 AND number = $2;`
	bill, err := scanBill(r.Pool.QueryRow(ctx, query, companyID, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill %q: %w", number, err)
	}
	return bill, nil
}

// ListBillsByStatus lists bills in any of the given statuses, oldest due first.
func (r *PgxBillRepository) ListBillsByStatus(ctx context.Context, companyID string, statuses []domain.BillStatus) ([]domain.Bill, error) {
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	query := `SELECT ` + billColumns + ` FROM bills WHERE company_id = $1 AND status = ANY($2) ORDER BY COALESCE(due_date, bill_date), bill_id;`
	rows, err := r.Pool.Query(ctx, query, companyID, strs)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by status: %w", err)
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}

// ListBillsByVoucher lists the bills a voucher opened.
func (r *PgxBillRepository) ListBillsByVoucher(ctx context.Context, companyID string, voucherID string) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE company_id = $1 AND voucher_id = $2 ORDER BY bill_id;`
	rows, err := r.Pool.Query(ctx, query, companyID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills for voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}

// SettleBill applies the settlement to the bill and inserts the settlement
// row in one transaction. The arithmetic runs in SQL against the current
// row so a concurrent settlement cannot apply against a stale read: the
// guarded UPDATE matches zero rows when the bill is no longer settleable
// for the amount, and the whole attempt fails with ErrConflict.
func (r *PgxBillRepository) SettleBill(ctx context.Context, settlement domain.BillSettlement) (*domain.Bill, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE bills
		SET settled_amount = settled_amount + $1,
		    outstanding_amount = GREATEST(original_amount - settled_amount - $1, 0),
		    status = CASE WHEN settled_amount + $1 >= original_amount THEN 'SETTLED' ELSE 'PARTIAL' END,
		    last_updated_at = $2, last_updated_by = $3
		WHERE company_id = $4 AND bill_id = $5
		  AND status IN ('OPEN', 'PARTIAL')
		  AND outstanding_amount >= $1
		RETURNING ` + billColumns + `;
	`
	bill, err := scanBill(tx.QueryRow(ctx, updateQuery,
		settlement.Amount,
		settlement.LastUpdatedAt,
		settlement.LastUpdatedBy,
		settlement.CompanyID,
		settlement.BillID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: bill %s can no longer absorb a settlement of %s", apperrors.ErrConflict, settlement.BillID, settlement.Amount)
		}
		return nil, fmt.Errorf("failed to update bill %s during settlement: %w", settlement.BillID, err)
	}

	sm := mapping.ToModelBillSettlement(settlement)
	insertQuery := `
		INSERT INTO bill_settlements (settlement_id, bill_id, company_id, voucher_id, entry_id, amount, settled_on, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, insertQuery,
		sm.SettlementID,
		sm.BillID,
		sm.CompanyID,
		sm.VoucherID,
		sm.EntryID,
		sm.Amount,
		sm.SettledOn,
		sm.CreatedAt,
		sm.CreatedBy,
		sm.LastUpdatedAt,
		sm.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert settlement %s: %w", settlement.SettlementID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListSettlementsByBill lists a bill's settlement history oldest first.
func (r *PgxBillRepository) ListSettlementsByBill(ctx context.Context, companyID string, billID string) ([]domain.BillSettlement, error) {
	query := `
		SELECT settlement_id, bill_id, company_id, voucher_id, entry_id, amount, settled_on, created_at, created_by, last_updated_at, last_updated_by
		FROM bill_settlements
		WHERE company_id = $1 AND bill_id = $2
		ORDER BY settled_on, settlement_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements for bill %s: %w", billID, err)
	}
	defer rows.Close()

	var settlements []domain.BillSettlement
	for rows.Next() {
		var m models.BillSettlement
		err := rows.Scan(
			&m.SettlementID,
			&m.BillID,
			&m.CompanyID,
			&m.VoucherID,
			&m.EntryID,
			&m.Amount,
			&m.SettledOn,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		settlements = append(settlements, mapping.ToDomainBillSettlement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}
	return settlements, nil
}
