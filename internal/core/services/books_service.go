package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/startupbooks/startup_books_app/internal/apperrors"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// LedgerBook is the dated entry stream for one ledger with a running
// debit-positive balance. The opening figure seeds from the ledger's
// configured opening plus every effective entry before the range.
func (s *reportingService) LedgerBook(ctx context.Context, companyID string, ledgerName string, from time.Time, to time.Time, requestingUserID string) (*domain.LedgerBookReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	ledger, err := s.ledgerRepo.FindLedgerByName(ctx, companyID, ledgerName)
	if err != nil {
		return nil, err
	}
	return s.bookForLedgers(ctx, companyID, []domain.Ledger{*ledger}, ledgerName, from, to)
}

// CashBook merges the books of every cash ledger.
func (s *reportingService) CashBook(ctx context.Context, companyID string, from time.Time, to time.Time, requestingUserID string) (*domain.LedgerBookReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.bookForCategories(ctx, companyID, []domain.GroupCategory{domain.CategoryCash}, "Cash Book", from, to)
}

// BankBook merges the books of every bank ledger.
func (s *reportingService) BankBook(ctx context.Context, companyID string, from time.Time, to time.Time, requestingUserID string) (*domain.LedgerBookReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.bookForCategories(ctx, companyID, []domain.GroupCategory{domain.CategoryBankAccount}, "Bank Book", from, to)
}

// bookForCategories collects the company's ledgers of the given categories
// and merges their entry streams. No ledger of the category at all is a
// not-found condition, not an empty book.
func (s *reportingService) bookForCategories(ctx context.Context, companyID string, categories []domain.GroupCategory, bookName string, from, to time.Time) (*domain.LedgerBookReport, error) {
	ledgers, err := s.ledgerRepo.ListLedgers(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}

	matched := make([]domain.Ledger, 0, len(ledgers))
	for _, l := range ledgers {
		for _, c := range categories {
			if l.GroupCategory == c {
				matched = append(matched, l)
				break
			}
		}
	}
	if len(matched) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no %v ledger on the chart of accounts", categories))
	}
	return s.bookForLedgers(ctx, companyID, matched, bookName, from, to)
}

// bookForLedgers builds one running-balance projection over the merged
// entry streams of the given ledgers.
func (s *reportingService) bookForLedgers(ctx context.Context, companyID string, ledgers []domain.Ledger, bookName string, from, to time.Time) (*domain.LedgerBookReport, error) {
	// The replay's opening position already folds the configured opening
	// balance together with every effective entry before the range.
	balances, err := s.reportingRepo.LedgerBalances(ctx, companyID, &from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to replay ledger balances: %w", err)
	}
	configured := make(map[string]bool, len(ledgers))
	for _, l := range ledgers {
		configured[l.Name] = true
	}
	opening := decimal.Zero
	for _, b := range balances {
		if configured[b.LedgerName] {
			opening = opening.Add(b.OpeningDebit.Sub(b.OpeningCredit))
		}
	}

	rows := make([]domain.BookRow, 0)
	for _, l := range ledgers {
		ledgerRows, err := s.reportingRepo.EntriesForLedger(ctx, companyID, l.Name, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load entries for ledger %s: %w", l.Name, err)
		}
		rows = append(rows, ledgerRows...)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	running := opening
	for i := range rows {
		running = running.Add(rows[i].Debit).Sub(rows[i].Credit)
		rows[i].RunningBalance = running
	}

	return &domain.LedgerBookReport{
		LedgerName: bookName,
		From:       from,
		To:         to,
		Opening:    opening,
		Rows:       rows,
		Closing:    running,
	}, nil
}

// DayBook summarises every effective voucher dated on one day.
func (s *reportingService) DayBook(ctx context.Context, companyID string, date time.Time, requestingUserID string) ([]domain.DayBookRow, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.VouchersOnDate(ctx, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day book: %w", err)
	}
	if rows == nil {
		rows = []domain.DayBookRow{}
	}
	return rows, nil
}

// Register lists effective vouchers of one category over a range.
func (s *reportingService) Register(ctx context.Context, companyID string, category domain.VoucherCategory, from time.Time, to time.Time, requestingUserID string) ([]domain.DayBookRow, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.VouchersByCategory(ctx, companyID, category, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load voucher register: %w", err)
	}
	if rows == nil {
		rows = []domain.DayBookRow{}
	}
	return rows, nil
}
