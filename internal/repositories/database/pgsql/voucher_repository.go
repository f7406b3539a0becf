package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/apperrors"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	"github.com/startupbooks/startup_books_app/internal/models"
	"github.com/startupbooks/startup_books_app/internal/utils/mapping"
	"github.com/startupbooks/startup_books_app/internal/utils/pagination"
)

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for voucher data.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

// SaveVoucherType inserts a new voucher type.
func (r *PgxVoucherRepository) SaveVoucherType(ctx context.Context, vt domain.VoucherType) error {
	m := mapping.ToModelVoucherType(vt)
	query := `
		INSERT INTO voucher_types (type_id, company_id, name, category, prefix, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TypeID,
		m.CompanyID,
		m.Name,
		m.Category,
		m.Prefix,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: voucher type %q already exists", apperrors.ErrDuplicate, vt.Name)
		}
		return fmt.Errorf("failed to save voucher type %s: %w", vt.TypeID, err)
	}
	return nil
}

const voucherTypeColumns = `type_id, company_id, name, category, prefix, created_at, created_by, last_updated_at, last_updated_by`

func scanVoucherType(row pgx.Row) (*domain.VoucherType, error) {
	var m models.VoucherType
	err := row.Scan(
		&m.TypeID,
		&m.CompanyID,
		&m.Name,
		&m.Category,
		&m.Prefix,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainVoucherType(m)
	return &d, nil
}

// FindVoucherTypeByID retrieves one voucher type scoped to the company.
func (r *PgxVoucherRepository) FindVoucherTypeByID(ctx context.Context, companyID string, typeID string) (*domain.VoucherType, error) {
	query := `SELECT ` + voucherTypeColumns + ` FROM voucher_types WHERE company_id = $1 AND type_id = $2;`
	vt, err := scanVoucherType(r.Pool.QueryRow(ctx, query, companyID, typeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher type %s: %w", typeID, err)
	}
	return vt, nil
}

// ListVoucherTypes lists every voucher type of the company.
func (r *PgxVoucherRepository) ListVoucherTypes(ctx context.Context, companyID string) ([]domain.VoucherType, error) {
	query := `SELECT ` + voucherTypeColumns + ` FROM voucher_types WHERE company_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list voucher types: %w", err)
	}
	defer rows.Close()

	var types []domain.VoucherType
	for rows.Next() {
		vt, err := scanVoucherType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher type row: %w", err)
		}
		types = append(types, *vt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voucher type rows: %w", err)
	}
	return types, nil
}

const voucherColumns = `voucher_id, company_id, type_id, category, number, voucher_date, status, total_amount, party_ledger_name, counter_ledger_name, place_of_supply, narration, original_voucher_id, reversing_voucher_id, created_at, created_by, last_updated_at, last_updated_by`

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID,
		&m.CompanyID,
		&m.TypeID,
		&m.Category,
		&m.Number,
		&m.VoucherDate,
		&m.Status,
		&m.TotalAmount,
		&m.PartyLedgerName,
		&m.CounterLedgerName,
		&m.PlaceOfSupply,
		&m.Narration,
		&m.OriginalVoucherID,
		&m.ReversingVoucherID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainVoucher(m)
	return &d, nil
}

// insertVoucherHeader writes the voucher row inside tx.
func insertVoucherHeader(ctx context.Context, tx pgx.Tx, v domain.Voucher) error {
	m := mapping.ToModelVoucher(v)
	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.VoucherID,
		m.CompanyID,
		m.TypeID,
		m.Category,
		m.Number,
		m.VoucherDate,
		m.Status,
		m.TotalAmount,
		m.PartyLedgerName,
		m.CounterLedgerName,
		m.PlaceOfSupply,
		m.Narration,
		m.OriginalVoucherID,
		m.ReversingVoucherID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: voucher number %q already exists for this type", apperrors.ErrDuplicate, v.Number)
		}
		return fmt.Errorf("failed to insert voucher %s: %w", v.VoucherID, err)
	}
	return nil
}

// insertVoucherEntries writes entry rows inside tx.
func insertVoucherEntries(ctx context.Context, tx pgx.Tx, companyID string, entries []domain.VoucherEntry) error {
	query := `
		INSERT INTO voucher_entries (entry_id, voucher_id, company_id, ledger_name, entry_type, amount, cost_centre_name, narration, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, e := range entries {
		m := mapping.ToModelVoucherEntry(e, companyID)
		_, err := tx.Exec(ctx, query,
			m.EntryID,
			m.VoucherID,
			m.CompanyID,
			m.LedgerName,
			m.EntryType,
			m.Amount,
			m.CostCentreName,
			m.Narration,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert voucher entry %s: %w", e.EntryID, err)
		}
	}
	return nil
}

// insertInventoryLines writes inventory line rows inside tx.
func insertInventoryLines(ctx context.Context, tx pgx.Tx, companyID string, lines []domain.InventoryLine) error {
	query := `
		INSERT INTO inventory_lines (line_id, voucher_id, company_id, item_name, warehouse_name, quantity, rate, amount, discount_amount, gst_rate, hsn_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	for _, l := range lines {
		m := mapping.ToModelInventoryLine(l, companyID)
		_, err := tx.Exec(ctx, query,
			m.LineID,
			m.VoucherID,
			m.CompanyID,
			m.ItemName,
			m.WarehouseName,
			m.Quantity,
			m.Rate,
			m.Amount,
			m.DiscountAmount,
			m.GstRate,
			m.HSNCode,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert inventory line %s: %w", l.LineID, err)
		}
	}
	return nil
}

// SaveDraftVoucher persists a draft header with its entries and inventory
// lines in one transaction.
func (r *PgxVoucherRepository) SaveDraftVoucher(ctx context.Context, voucher domain.Voucher) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertVoucherHeader(ctx, tx, voucher); err != nil {
		return err
	}
	if err := insertVoucherEntries(ctx, tx, voucher.CompanyID, voucher.Entries); err != nil {
		return err
	}
	if err := insertInventoryLines(ctx, tx, voucher.CompanyID, voucher.InventoryLines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// loadVoucherChildren fills entries and inventory lines on the voucher.
func (r *PgxVoucherRepository) loadVoucherChildren(ctx context.Context, v *domain.Voucher) error {
	entryQuery := `
		SELECT entry_id, voucher_id, company_id, ledger_name, entry_type, amount, cost_centre_name, narration, created_at, created_by, last_updated_at, last_updated_by
		FROM voucher_entries
		WHERE voucher_id = $1
		ORDER BY created_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, entryQuery, v.VoucherID)
	if err != nil {
		return fmt.Errorf("failed to query entries for voucher %s: %w", v.VoucherID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var m models.VoucherEntry
		err := rows.Scan(
			&m.EntryID,
			&m.VoucherID,
			&m.CompanyID,
			&m.LedgerName,
			&m.EntryType,
			&m.Amount,
			&m.CostCentreName,
			&m.Narration,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to scan voucher entry row: %w", err)
		}
		v.Entries = append(v.Entries, mapping.ToDomainVoucherEntry(m))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating voucher entry rows: %w", err)
	}

	lineQuery := `
		SELECT line_id, voucher_id, company_id, item_name, warehouse_name, quantity, rate, amount, discount_amount, gst_rate, hsn_code, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_lines
		WHERE voucher_id = $1
		ORDER BY created_at, line_id;
	`
	lineRows, err := r.Pool.Query(ctx, lineQuery, v.VoucherID)
	if err != nil {
		return fmt.Errorf("failed to query inventory lines for voucher %s: %w", v.VoucherID, err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var m models.InventoryLine
		err := lineRows.Scan(
			&m.LineID,
			&m.VoucherID,
			&m.CompanyID,
			&m.ItemName,
			&m.WarehouseName,
			&m.Quantity,
			&m.Rate,
			&m.Amount,
			&m.DiscountAmount,
			&m.GstRate,
			&m.HSNCode,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to scan inventory line row: %w", err)
		}
		v.InventoryLines = append(v.InventoryLines, mapping.ToDomainInventoryLine(m))
	}
	if err := lineRows.Err(); err != nil {
		return fmt.Errorf("error iterating inventory line rows: %w", err)
	}
	return nil
}

// FindVoucherByID loads a voucher with its entries and inventory lines.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, companyID string, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE company_id = $1 AND voucher_id = $2;`
	v, err := scanVoucher(r.Pool.QueryRow(ctx, query, companyID, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}
	if err := r.loadVoucherChildren(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// FindVoucherByNumber retrieves a voucher header by its per-type number.
func (r *PgxVoucherRepository) FindVoucherByNumber(ctx context.Context, companyID string, typeID string, number string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE company_id = $1 AND type_id = $2 AND number = $3;`
	v, err := scanVoucher(r.Pool.QueryRow(ctx, query, companyID, typeID, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher %q: %w", number, err)
	}
	return v, nil
}

// FindEntryByID retrieves one entry scoped to the company and voucher.
func (r *PgxVoucherRepository) FindEntryByID(ctx context.Context, companyID string, voucherID string, entryID string) (*domain.VoucherEntry, error) {
	query := `
		SELECT entry_id, voucher_id, company_id, ledger_name, entry_type, amount, cost_centre_name, narration, created_at, created_by, last_updated_at, last_updated_by
		FROM voucher_entries
		WHERE company_id = $1 AND voucher_id = $2 AND entry_id = $3;
	`
	var m models.VoucherEntry
	err := r.Pool.QueryRow(ctx, query, companyID, voucherID, entryID).Scan(
		&m.EntryID,
		&m.VoucherID,
		&m.CompanyID,
		&m.LedgerName,
		&m.EntryType,
		&m.Amount,
		&m.CostCentreName,
		&m.Narration,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	d := mapping.ToDomainVoucherEntry(m)
	return &d, nil
}

// ListVouchers pages voucher headers newest first. The cursor encodes the
// (voucher_date, created_at) tuple of the last row of the previous page.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE company_id = $1`
	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		voucherDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (voucher_date, created_at) < ($2, $3)`
		args = append(args, voucherDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY voucher_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan voucher row: %w", err)
		}
		vouchers = append(vouchers, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating voucher rows: %w", err)
	}

	var token *string
	if len(vouchers) > limit {
		vouchers = vouchers[:limit]
		last := vouchers[len(vouchers)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return vouchers, token, nil
}

// derivedStockQuery sums inventory line quantities of effective vouchers,
// signed by the category's stock effect.
const derivedStockQuery = `
	SELECT COALESCE(SUM(
		CASE WHEN v.category IN ('PURCHASE', 'RECEIPT_NOTE', 'CREDIT_NOTE') THEN il.quantity ELSE -il.quantity END
	), 0)
	FROM inventory_lines il
	JOIN vouchers v ON v.voucher_id = il.voucher_id
	WHERE il.company_id = $1
	  AND il.item_name = $2
	  AND il.warehouse_name = $3
	  AND v.status = 'POSTED'
	  AND v.category IN ('PURCHASE', 'RECEIPT_NOTE', 'CREDIT_NOTE', 'SALES', 'DELIVERY_NOTE', 'DEBIT_NOTE');
`

// PostVoucher commits the posting as one transaction: per-pair advisory
// locks, stock re-checks, final entries, optional bill and the status flip.
func (r *PgxVoucherRepository) PostVoucher(ctx context.Context, params portsrepo.PostVoucherParams) error {
	v := params.Voucher

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Serialise concurrent postings touching the same (item, warehouse)
	// pair, then re-derive the balance under the lock. The pre-transaction
	// check in the service is advisory only.
	for _, check := range params.StockChecks {
		lockKey := v.CompanyID + "|" + check.ItemName + "|" + check.WarehouseName
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, lockKey); err != nil {
			return fmt.Errorf("failed to take stock lock for %q: %w", lockKey, err)
		}

		var available decimal.Decimal
		err := tx.QueryRow(ctx, derivedStockQuery, v.CompanyID, check.ItemName, check.WarehouseName).Scan(&available)
		if err != nil {
			return fmt.Errorf("failed to derive stock for %q in %q: %w", check.ItemName, check.WarehouseName, err)
		}
		if available.LessThan(check.Required) {
			return fmt.Errorf("%w: insufficient stock of %q in %q: have %s, need %s",
				apperrors.ErrValidation, check.ItemName, check.WarehouseName, available.String(), check.Required.String())
		}
	}

	// Drafts may carry manually supplied entries; posting replaces them
	// with the final set.
	if _, err := tx.Exec(ctx, `DELETE FROM voucher_entries WHERE voucher_id = $1;`, v.VoucherID); err != nil {
		return fmt.Errorf("failed to clear draft entries for voucher %s: %w", v.VoucherID, err)
	}
	if err := insertVoucherEntries(ctx, tx, v.CompanyID, v.Entries); err != nil {
		return err
	}

	if params.Bill != nil {
		if err := insertBillTx(ctx, tx, *params.Bill); err != nil {
			return err
		}
	}

	updateQuery := `
		UPDATE vouchers
		SET status = $1, total_amount = $2, party_ledger_name = $3, counter_ledger_name = $4, last_updated_at = $5, last_updated_by = $6
		WHERE company_id = $7 AND voucher_id = $8 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, updateQuery,
		string(domain.VoucherPosted),
		v.TotalAmount,
		v.PartyLedgerName,
		v.CounterLedgerName,
		v.LastUpdatedAt,
		v.LastUpdatedBy,
		v.CompanyID,
		v.VoucherID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark voucher %s posted: %w", v.VoucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: voucher %s is no longer a draft", apperrors.ErrConflict, v.VoucherID)
	}

	return r.Commit(ctx, tx)
}

// CancelDraftVoucher flips a draft straight to CANCELLED.
func (r *PgxVoucherRepository) CancelDraftVoucher(ctx context.Context, companyID string, voucherID string, userID string, at time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE company_id = $4 AND voucher_id = $5 AND status = 'DRAFT';
	`
	tag, err := r.Pool.Exec(ctx, query, string(domain.VoucherCancelled), at, userID, companyID, voucherID)
	if err != nil {
		return fmt.Errorf("failed to cancel draft voucher %s: %w", voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: voucher %s is no longer a draft", apperrors.ErrConflict, voucherID)
	}
	return nil
}

// ReverseVoucher saves the reversing voucher and marks the original
// CANCELLED with the reversal link, atomically.
func (r *PgxVoucherRepository) ReverseVoucher(ctx context.Context, original domain.Voucher, reversing domain.Voucher) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertVoucherHeader(ctx, tx, reversing); err != nil {
		return err
	}
	if err := insertVoucherEntries(ctx, tx, reversing.CompanyID, reversing.Entries); err != nil {
		return err
	}

	updateQuery := `
		UPDATE vouchers
		SET status = $1, reversing_voucher_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $5 AND voucher_id = $6 AND status = 'POSTED';
	`
	tag, err := tx.Exec(ctx, updateQuery,
		string(domain.VoucherCancelled),
		reversing.VoucherID,
		reversing.LastUpdatedAt,
		reversing.LastUpdatedBy,
		original.CompanyID,
		original.VoucherID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark voucher %s cancelled: %w", original.VoucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: voucher %s is no longer posted", apperrors.ErrConflict, original.VoucherID)
	}

	// Bills the voucher opened are cancelled with it. A settlement that
	// landed between the service-level check and this transaction aborts
	// the reversal instead of orphaning money already received.
	var settledBills int
	countQuery := `SELECT COUNT(*) FROM bills WHERE company_id = $1 AND voucher_id = $2 AND settled_amount > 0;`
	if err := tx.QueryRow(ctx, countQuery, original.CompanyID, original.VoucherID).Scan(&settledBills); err != nil {
		return fmt.Errorf("failed to check bills for voucher %s: %w", original.VoucherID, err)
	}
	if settledBills > 0 {
		return fmt.Errorf("%w: voucher %s opened bills that have settlements", apperrors.ErrConflict, original.VoucherID)
	}
	cancelBillsQuery := `
		UPDATE bills
		SET status = 'CANCELLED', outstanding_amount = 0, last_updated_at = $1, last_updated_by = $2
		WHERE company_id = $3 AND voucher_id = $4 AND status <> 'CANCELLED';
	`
	if _, err := tx.Exec(ctx, cancelBillsQuery,
		reversing.LastUpdatedAt,
		reversing.LastUpdatedBy,
		original.CompanyID,
		original.VoucherID,
	); err != nil {
		return fmt.Errorf("failed to cancel bills for voucher %s: %w", original.VoucherID, err)
	}

	return r.Commit(ctx, tx)
}
