package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/utils/accounting"
)

// reportingService derives every financial statement from one primitive:
// the per-ledger replay of effective entries. Nothing is read from stored
// balances, so identical inputs always produce identical reports.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	ledgerRepo    portsrepo.LedgerRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(rr portsrepo.ReportingRepository, lr portsrepo.LedgerRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.ReportingSvcFacade {
	return &reportingService{
		BaseService:   BaseService{CompanyAuthorizer: authorizer},
		reportingRepo: rr,
		ledgerRepo:    lr,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// closedBalances replays entries and nets each ledger's closing position.
func (s *reportingService) closedBalances(ctx context.Context, companyID string, from *time.Time, to time.Time) ([]domain.LedgerBalance, error) {
	balances, err := s.reportingRepo.LedgerBalances(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to replay ledger balances: %w", err)
	}
	for i := range balances {
		balances[i].Close()
	}
	return balances, nil
}

// TrialBalance lists the closing position of every non-zero ledger.
// Total debit equals total credit whenever the books balance.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time, requestingUserID string) (*domain.TrialBalanceReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	balances, err := s.closedBalances(ctx, companyID, nil, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, b := range balances {
		if b.ClosingDebit.IsZero() && b.ClosingCredit.IsZero() {
			continue
		}
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			LedgerName:    b.LedgerName,
			GroupCategory: b.GroupCategory,
			Debit:         b.ClosingDebit,
			Credit:        b.ClosingCredit,
		})
		report.TotalDebit = report.TotalDebit.Add(b.ClosingDebit)
		report.TotalCredit = report.TotalCredit.Add(b.ClosingCredit)
	}
	return report, nil
}

// ProfitAndLoss partitions period movement by category around the gross
// profit line. The balance-side test guards against mis-posted ledgers: an
// expense ledger only counts while its period balance is a debit balance,
// an income ledger only while it is a credit balance.
func (s *reportingService) ProfitAndLoss(ctx context.Context, companyID string, from time.Time, to time.Time, requestingUserID string) (*domain.PAndLReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	balances, err := s.closedBalances(ctx, companyID, &from, to)
	if err != nil {
		return nil, err
	}
	report := s.buildPAndL(balances, from, to)
	return report, nil
}

// buildPAndL computes the statement from period movement alone, so opening
// balances never leak into the period's result.
func (s *reportingService) buildPAndL(balances []domain.LedgerBalance, from, to time.Time) *domain.PAndLReport {
	report := &domain.PAndLReport{
		From:            from,
		To:              to,
		DirectIncome:    []domain.StatementLine{},
		DirectExpense:   []domain.StatementLine{},
		IndirectIncome:  []domain.StatementLine{},
		IndirectExpense: []domain.StatementLine{},
	}

	var directIncome, directExpense, indirectIncome, indirectExpense decimal.Decimal
	for _, b := range balances {
		movement := b.PeriodDebit.Sub(b.PeriodCredit) // debit-positive
		switch {
		case b.GroupCategory.IsIncome():
			amount := movement.Neg()
			if !amount.IsPositive() {
				continue // balance-side test: income must close credit
			}
			line := domain.StatementLine{LedgerName: b.LedgerName, Amount: amount}
			if b.GroupCategory.IsDirect() {
				report.DirectIncome = append(report.DirectIncome, line)
				directIncome = directIncome.Add(amount)
			} else {
				report.IndirectIncome = append(report.IndirectIncome, line)
				indirectIncome = indirectIncome.Add(amount)
			}
		case b.GroupCategory.IsExpense():
			if !movement.IsPositive() {
				continue // balance-side test: expense must close debit
			}
			line := domain.StatementLine{LedgerName: b.LedgerName, Amount: movement}
			if b.GroupCategory.IsDirect() {
				report.DirectExpense = append(report.DirectExpense, line)
				directExpense = directExpense.Add(movement)
			} else {
				report.IndirectExpense = append(report.IndirectExpense, line)
				indirectExpense = indirectExpense.Add(movement)
			}
		}
	}

	report.GrossProfit = directIncome.Sub(directExpense)
	report.NetProfit = report.GrossProfit.Add(indirectIncome).Sub(indirectExpense)
	return report
}

// BalanceSheet lists assets against liabilities and capital as of a date,
// with the cumulative P&L result plugged into capital. A credit-closing
// asset ledger (an overdraft) moves to the liabilities side and a
// debit-closing liability (an advance) to the assets side, keeping the
// net-worth identity intact.
func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, requestingUserID string) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	balances, err := s.closedBalances(ctx, companyID, nil, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:        asOf,
		Assets:      []domain.StatementLine{},
		Liabilities: []domain.StatementLine{},
		Capital:     []domain.StatementLine{},
	}

	var plProfit decimal.Decimal
	for _, b := range balances {
		net := b.ClosingDebit.Sub(b.ClosingCredit) // debit-positive
		if net.IsZero() {
			continue
		}
		category := b.GroupCategory
		switch {
		case category.IsIncome() || category.IsExpense():
			// Accumulated into the Profit & Loss Account plug.
			plProfit = plProfit.Sub(net)
		case category == domain.CategoryCapital:
			line := domain.StatementLine{LedgerName: b.LedgerName, Amount: net.Neg()}
			report.Capital = append(report.Capital, line)
			report.TotalCapital = report.TotalCapital.Add(line.Amount)
		case net.IsPositive():
			line := domain.StatementLine{LedgerName: b.LedgerName, Amount: net}
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(net)
		default:
			line := domain.StatementLine{LedgerName: b.LedgerName, Amount: net.Neg()}
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(line.Amount)
		}
	}

	report.Capital = append(report.Capital, domain.StatementLine{
		LedgerName: "Profit & Loss Account",
		Amount:     plProfit,
	})
	report.TotalCapital = report.TotalCapital.Add(plProfit)
	report.NetWorth = report.TotalAssets.Sub(report.TotalLiabilities).Sub(report.TotalCapital)
	return report, nil
}

// cash flow classification keywords, matched on lower-cased counter-ledger
// names. Approximate by design, not a GAAP-grade classifier.
var (
	financingKeywords = []string{"loan", "capital", "equity", "dividend", "debenture", "borrowing"}
	investingKeywords = []string{"investment", "asset", "machinery", "equipment", "vehicle", "property", "furniture"}
)

func classifyActivity(counterLedgers []string) domain.CashFlowActivity {
	for _, name := range counterLedgers {
		lower := strings.ToLower(name)
		for _, kw := range financingKeywords {
			if strings.Contains(lower, kw) {
				return domain.ActivityFinancing
			}
		}
		for _, kw := range investingKeywords {
			if strings.Contains(lower, kw) {
				return domain.ActivityInvesting
			}
		}
	}
	return domain.ActivityOperating
}

// CashFlow groups cash/bank ledger movements by activity.
func (s *reportingService) CashFlow(ctx context.Context, companyID string, from time.Time, to time.Time, requestingUserID string) (*domain.CashFlowReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entries, err := s.reportingRepo.CashFlowEntries(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash flow entries: %w", err)
	}

	report := &domain.CashFlowReport{
		From:  from,
		To:    to,
		Lines: []domain.CashFlowLine{},
	}
	for _, e := range entries {
		activity := classifyActivity(e.CounterLedgers)
		line := domain.CashFlowLine{
			VoucherID:     e.VoucherID,
			VoucherNumber: e.VoucherNumber,
			Date:          e.Date,
			Activity:      activity,
			Inflow:        e.CashDebit,
			Outflow:       e.CashCredit,
		}
		report.Lines = append(report.Lines, line)

		net := e.CashDebit.Sub(e.CashCredit)
		switch activity {
		case domain.ActivityFinancing:
			report.NetFinancing = report.NetFinancing.Add(net)
		case domain.ActivityInvesting:
			report.NetInvesting = report.NetInvesting.Add(net)
		default:
			report.NetOperating = report.NetOperating.Add(net)
		}
		report.NetChange = report.NetChange.Add(net)
	}
	return report, nil
}

// Ratios derives standard financial ratios from the balance sheet and the
// cumulative P&L as of a date. Zero denominators yield zero ratios.
func (s *reportingService) Ratios(ctx context.Context, companyID string, asOf time.Time, requestingUserID string) (*domain.RatioReport, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	balances, err := s.closedBalances(ctx, companyID, nil, asOf)
	if err != nil {
		return nil, err
	}

	var currentAssets, stock, currentLiabilities, debt, equity decimal.Decimal
	var directIncome, directExpense, totalIncome, totalExpense decimal.Decimal

	for _, b := range balances {
		net := b.ClosingDebit.Sub(b.ClosingCredit)
		switch b.GroupCategory {
		case domain.CategoryCash, domain.CategoryBankAccount, domain.CategoryCurrentAsset, domain.CategorySundryDebtor:
			currentAssets = currentAssets.Add(net)
		case domain.CategoryStock:
			currentAssets = currentAssets.Add(net)
			stock = stock.Add(net)
		case domain.CategoryCurrentLiability, domain.CategorySundryCreditor:
			currentLiabilities = currentLiabilities.Add(net.Neg())
			debt = debt.Add(net.Neg())
		case domain.CategoryLoan:
			debt = debt.Add(net.Neg())
		case domain.CategoryCapital:
			equity = equity.Add(net.Neg())
		default:
			credit := net.Neg()
			if b.GroupCategory.IsIncome() {
				totalIncome = totalIncome.Add(credit)
				if b.GroupCategory.IsDirect() {
					directIncome = directIncome.Add(credit)
				}
			} else if b.GroupCategory.IsExpense() {
				totalExpense = totalExpense.Add(net)
				if b.GroupCategory.IsDirect() {
					directExpense = directExpense.Add(net)
				}
			}
		}
	}

	// Retained earnings live in equity for the leverage ratio.
	equity = equity.Add(totalIncome).Sub(totalExpense)

	grossProfit := directIncome.Sub(directExpense)
	netProfit := totalIncome.Sub(totalExpense)

	return &domain.RatioReport{
		AsOf:           asOf,
		CurrentRatio:   accounting.SafeDiv(currentAssets, currentLiabilities),
		QuickRatio:     accounting.SafeDiv(currentAssets.Sub(stock), currentLiabilities),
		GrossMargin:    accounting.SafePercent(grossProfit, directIncome),
		NetMargin:      accounting.SafePercent(netProfit, totalIncome),
		DebtEquity:     accounting.SafeDiv(debt, equity),
		WorkingCapital: currentAssets.Sub(currentLiabilities),
	}, nil
}
