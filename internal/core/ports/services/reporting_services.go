package services

import (
	"context"
	"time"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// StatementSvc produces the financial statements. Every statement is a
// replay over effective entries; nothing is read from stored balances.
type StatementSvc interface {
	TrialBalance(ctx context.Context, companyID string, asOf time.Time, requestingUserID string) (*domain.TrialBalanceReport, error)
	ProfitAndLoss(ctx context.Context, companyID string, from time.Time, to time.Time, requestingUserID string) (*domain.PAndLReport, error)
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time, requestingUserID string) (*domain.BalanceSheetReport, error)
	CashFlow(ctx context.Context, companyID string, from time.Time, to time.Time, requestingUserID string) (*domain.CashFlowReport, error)
	Ratios(ctx context.Context, companyID string, asOf time.Time, requestingUserID string) (*domain.RatioReport, error)
}

// BookSvc produces the running-balance book projections and registers.
type BookSvc interface {
	// LedgerBook is the dated entry stream for one ledger with a running
	// debit-positive balance.
	LedgerBook(ctx context.Context, companyID string, ledgerName string, from time.Time, to time.Time, requestingUserID string) (*domain.LedgerBookReport, error)

	// CashBook and BankBook merge the books of every cash or bank ledger.
	CashBook(ctx context.Context, companyID string, from time.Time, to time.Time, requestingUserID string) (*domain.LedgerBookReport, error)
	BankBook(ctx context.Context, companyID string, from time.Time, to time.Time, requestingUserID string) (*domain.LedgerBookReport, error)

	// DayBook summarises every voucher dated on one day.
	DayBook(ctx context.Context, companyID string, date time.Time, requestingUserID string) ([]domain.DayBookRow, error)

	// Register lists vouchers of one category over a range.
	Register(ctx context.Context, companyID string, category domain.VoucherCategory, from time.Time, to time.Time, requestingUserID string) ([]domain.DayBookRow, error)
}

// ReportingSvcFacade combines the statement and book interfaces.
type ReportingSvcFacade interface {
	StatementSvc
	BookSvc
}
