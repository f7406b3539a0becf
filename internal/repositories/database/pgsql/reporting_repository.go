package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
)

// effectiveVoucher is the predicate every statement query hangs off: POSTED
// vouchers count, and so do CANCELLED vouchers that carry a reversing link,
// because their reversal nets them out of the books.
const effectiveVoucher = `(v.status = 'POSTED' OR (v.status = 'CANCELLED' AND v.reversing_voucher_id IS NOT NULL))`

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for statement replays.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// LedgerBalances replays effective entries for every ledger of the company.
// Entries dated before `from` fold into the opening position together with
// the configured opening balance; the rest accumulate as period movement.
func (r *PgxReportingRepository) LedgerBalances(ctx context.Context, companyID string, from *time.Time, to time.Time) ([]domain.LedgerBalance, error) {
	// A nil `from` means everything is period movement and the opening is
	// the configured opening alone.
	periodStart := time.Time{}
	if from != nil {
		periodStart = *from
	}

	query := `
		SELECT l.name, l.group_category, l.opening_balance, l.opening_side,
		       COALESCE(x.pre_debit, 0), COALESCE(x.pre_credit, 0),
		       COALESCE(x.period_debit, 0), COALESCE(x.period_credit, 0)
		FROM ledgers l
		LEFT JOIN (
			SELECT e.ledger_name,
			       SUM(e.amount) FILTER (WHERE e.entry_type = 'DEBIT' AND v.voucher_date < $2) AS pre_debit,
			       SUM(e.amount) FILTER (WHERE e.entry_type = 'CREDIT' AND v.voucher_date < $2) AS pre_credit,
			       SUM(e.amount) FILTER (WHERE e.entry_type = 'DEBIT' AND v.voucher_date >= $2) AS period_debit,
			       SUM(e.amount) FILTER (WHERE e.entry_type = 'CREDIT' AND v.voucher_date >= $2) AS period_credit
			FROM voucher_entries e
			JOIN vouchers v ON v.voucher_id = e.voucher_id
			WHERE e.company_id = $1
			  AND v.voucher_date <= $3
			  AND ` + effectiveVoucher + `
			GROUP BY e.ledger_name
		) x ON x.ledger_name = l.name
		WHERE l.company_id = $1
		ORDER BY l.name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, periodStart, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger balances: %w", err)
	}
	defer rows.Close()

	var balances []domain.LedgerBalance
	for rows.Next() {
		var (
			b                   domain.LedgerBalance
			openingBalance      decimal.Decimal
			openingSide         string
			preDebit, preCredit decimal.Decimal
		)
		err := rows.Scan(
			&b.LedgerName,
			&b.GroupCategory,
			&openingBalance,
			&openingSide,
			&preDebit,
			&preCredit,
			&b.PeriodDebit,
			&b.PeriodCredit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger balance row: %w", err)
		}
		b.OpeningDebit, b.OpeningCredit = preDebit, preCredit
		if domain.BalanceSide(openingSide) == domain.SideDebit {
			b.OpeningDebit = b.OpeningDebit.Add(openingBalance)
		} else {
			b.OpeningCredit = b.OpeningCredit.Add(openingBalance)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger balance rows: %w", err)
	}
	return balances, nil
}

// EntriesForLedger returns the dated entry stream for one ledger in voucher
// date order. RunningBalance is left for the caller to fill.
func (r *PgxReportingRepository) EntriesForLedger(ctx context.Context, companyID string, ledgerName string, from time.Time, to time.Time) ([]domain.BookRow, error) {
	query := `
		SELECT v.voucher_date, v.voucher_id, v.number, v.category,
		       COALESCE(NULLIF(e.narration, ''), v.narration),
		       CASE WHEN e.entry_type = 'DEBIT' THEN e.amount ELSE 0 END,
		       CASE WHEN e.entry_type = 'CREDIT' THEN e.amount ELSE 0 END
		FROM voucher_entries e
		JOIN vouchers v ON v.voucher_id = e.voucher_id
		WHERE e.company_id = $1
		  AND e.ledger_name = $2
		  AND v.voucher_date >= $3
		  AND v.voucher_date <= $4
		  AND ` + effectiveVoucher + `
		ORDER BY v.voucher_date, v.created_at, e.entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, ledgerName, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for ledger %q: %w", ledgerName, err)
	}
	defer rows.Close()

	var bookRows []domain.BookRow
	for rows.Next() {
		var row domain.BookRow
		err := rows.Scan(
			&row.Date,
			&row.VoucherID,
			&row.VoucherNumber,
			&row.Category,
			&row.Narration,
			&row.Debit,
			&row.Credit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		bookRows = append(bookRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return bookRows, nil
}

// VouchersOnDate summarises every effective voucher dated on the given day.
func (r *PgxReportingRepository) VouchersOnDate(ctx context.Context, companyID string, date time.Time) ([]domain.DayBookRow, error) {
	query := `
		SELECT v.voucher_id, v.number, v.category, v.narration, v.total_amount
		FROM vouchers v
		WHERE v.company_id = $1
		  AND v.voucher_date::date = $2::date
		  AND ` + effectiveVoucher + `
		ORDER BY v.created_at;
	`
	return r.queryDayBookRows(ctx, query, companyID, date)
}

// VouchersByCategory lists effective vouchers of one category in range.
func (r *PgxReportingRepository) VouchersByCategory(ctx context.Context, companyID string, category domain.VoucherCategory, from time.Time, to time.Time) ([]domain.DayBookRow, error) {
	query := `
		SELECT v.voucher_id, v.number, v.category, v.narration, v.total_amount
		FROM vouchers v
		WHERE v.company_id = $1
		  AND v.category = $2
		  AND v.voucher_date >= $3
		  AND v.voucher_date <= $4
		  AND ` + effectiveVoucher + `
		ORDER BY v.voucher_date, v.created_at;
	`
	return r.queryDayBookRows(ctx, query, companyID, string(category), from, to)
}

func (r *PgxReportingRepository) queryDayBookRows(ctx context.Context, query string, args ...interface{}) ([]domain.DayBookRow, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query voucher summaries: %w", err)
	}
	defer rows.Close()

	var dayRows []domain.DayBookRow
	for rows.Next() {
		var row domain.DayBookRow
		err := rows.Scan(
			&row.VoucherID,
			&row.VoucherNumber,
			&row.Category,
			&row.Narration,
			&row.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher summary row: %w", err)
		}
		dayRows = append(dayRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voucher summary rows: %w", err)
	}
	return dayRows, nil
}

// CashFlowEntries returns, per effective voucher touching a cash or bank
// ledger, its cash movement and the non-cash counter-ledger names the
// activity classifier keys on.
func (r *PgxReportingRepository) CashFlowEntries(ctx context.Context, companyID string, from time.Time, to time.Time) ([]portsrepo.CashFlowEntry, error) {
	query := `
		SELECT v.voucher_id, v.number, v.voucher_date, v.category,
		       COALESCE(SUM(e.amount) FILTER (WHERE e.entry_type = 'DEBIT' AND l.group_category IN ('CASH', 'BANK_ACCOUNT')), 0),
		       COALESCE(SUM(e.amount) FILTER (WHERE e.entry_type = 'CREDIT' AND l.group_category IN ('CASH', 'BANK_ACCOUNT')), 0),
		       COALESCE(array_agg(DISTINCT e.ledger_name) FILTER (WHERE l.group_category NOT IN ('CASH', 'BANK_ACCOUNT')), '{}')
		FROM vouchers v
		JOIN voucher_entries e ON e.voucher_id = v.voucher_id
		JOIN ledgers l ON l.company_id = e.company_id AND l.name = e.ledger_name
		WHERE v.company_id = $1
		  AND v.voucher_date >= $2
		  AND v.voucher_date <= $3
		  AND ` + effectiveVoucher + `
		GROUP BY v.voucher_id, v.number, v.voucher_date, v.category, v.created_at
		HAVING COUNT(*) FILTER (WHERE l.group_category IN ('CASH', 'BANK_ACCOUNT')) > 0
		ORDER BY v.voucher_date, v.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash flow entries: %w", err)
	}
	defer rows.Close()

	var entries []portsrepo.CashFlowEntry
	for rows.Next() {
		var entry portsrepo.CashFlowEntry
		err := rows.Scan(
			&entry.VoucherID,
			&entry.VoucherNumber,
			&entry.Date,
			&entry.Category,
			&entry.CashDebit,
			&entry.CashCredit,
			&entry.CounterLedgers,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash flow row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash flow rows: %w", err)
	}
	return entries, nil
}

// CostCentreSummary aggregates effective entry amounts per cost centre.
func (r *PgxReportingRepository) CostCentreSummary(ctx context.Context, companyID string, from time.Time, to time.Time) ([]domain.CostCentreSummaryRow, error) {
	query := `
		SELECT e.cost_centre_name,
		       COALESCE(SUM(e.amount) FILTER (WHERE e.entry_type = 'DEBIT'), 0),
		       COALESCE(SUM(e.amount) FILTER (WHERE e.entry_type = 'CREDIT'), 0)
		FROM voucher_entries e
		JOIN vouchers v ON v.voucher_id = e.voucher_id
		WHERE e.company_id = $1
		  AND e.cost_centre_name IS NOT NULL
		  AND v.voucher_date >= $2
		  AND v.voucher_date <= $3
		  AND ` + effectiveVoucher + `
		GROUP BY e.cost_centre_name
		ORDER BY e.cost_centre_name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost centre summary: %w", err)
	}
	defer rows.Close()

	var summary []domain.CostCentreSummaryRow
	for rows.Next() {
		var row domain.CostCentreSummaryRow
		if err := rows.Scan(&row.CostCentreName, &row.TotalDebit, &row.TotalCredit); err != nil {
			return nil, fmt.Errorf("failed to scan cost centre summary row: %w", err)
		}
		row.Net = row.TotalDebit.Sub(row.TotalCredit)
		summary = append(summary, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cost centre summary rows: %w", err)
	}
	return summary, nil
}

// ActualForLedger returns the absolute period movement of one ledger.
func (r *PgxReportingRepository) ActualForLedger(ctx context.Context, companyID string, ledgerName string, from time.Time, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN e.entry_type = 'DEBIT' THEN e.amount ELSE -e.amount END), 0)
		FROM voucher_entries e
		JOIN vouchers v ON v.voucher_id = e.voucher_id
		WHERE e.company_id = $1
		  AND e.ledger_name = $2
		  AND v.voucher_date >= $3
		  AND v.voucher_date <= $4
		  AND ` + effectiveVoucher + `;
	`
	var net decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, ledgerName, from, to).Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("failed to derive actuals for ledger %q: %w", ledgerName, err)
	}
	return net.Abs(), nil
}

// ActualForCostCentre returns the absolute period movement of one cost centre.
func (r *PgxReportingRepository) ActualForCostCentre(ctx context.Context, companyID string, costCentreName string, from time.Time, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN e.entry_type = 'DEBIT' THEN e.amount ELSE -e.amount END), 0)
		FROM voucher_entries e
		JOIN vouchers v ON v.voucher_id = e.voucher_id
		WHERE e.company_id = $1
		  AND e.cost_centre_name = $2
		  AND v.voucher_date >= $3
		  AND v.voucher_date <= $4
		  AND ` + effectiveVoucher + `;
	`
	var net decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, costCentreName, from, to).Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("failed to derive actuals for cost centre %q: %w", costCentreName, err)
	}
	return net.Abs(), nil
}
