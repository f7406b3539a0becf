package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockLedgerRepo    *MockLedgerRepository
	service           portssvc.ReportingSvcFacade

	companyID string
	userID    string
	asOf      time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockLedgerRepo, nil)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

func balance(name string, category domain.GroupCategory, periodDebit, periodCredit int64) domain.LedgerBalance {
	return domain.LedgerBalance{
		LedgerName:    name,
		GroupCategory: category,
		PeriodDebit:   decimal.NewFromInt(periodDebit),
		PeriodCredit:  decimal.NewFromInt(periodCredit),
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_TotalsAgreeAndZeroRowsSkipped() {
	ctx := context.Background()
	balances := []domain.LedgerBalance{
		balance("Cash", domain.CategoryCash, 1000, 200),
		balance("Sales Account", domain.CategorySales, 0, 800),
		// Nets to zero; must not appear on the report.
		balance("Suspense", domain.CategoryOther, 300, 300),
	}

	suite.mockReportingRepo.On("LedgerBalances", ctx, suite.companyID, (*time.Time)(nil), suite.asOf).
		Return(balances, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.Equal("Cash", report.Rows[0].LedgerName)
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(800)))
	suite.True(report.Rows[1].Credit.Equal(decimal.NewFromInt(800)))
	suite.True(report.TotalDebit.Equal(report.TotalCredit))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_PartitionsAroundGrossProfit() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	balances := []domain.LedgerBalance{
		balance("Sales Account", domain.CategorySales, 0, 1000),
		balance("Purchases", domain.CategoryPurchase, 600, 0),
		balance("Rent", domain.CategoryIndirectExpense, 100, 0),
		balance("Interest Received", domain.CategoryIndirectIncome, 0, 50),
		// Mis-posted income ledger closing on the debit side is excluded.
		balance("Discount Given", domain.CategoryIndirectIncome, 30, 0),
		// Balance-sheet ledgers never appear on the P&L.
		balance("Cash", domain.CategoryCash, 1000, 680),
	}

	suite.mockReportingRepo.On("LedgerBalances", ctx, suite.companyID, &from, suite.asOf).
		Return(balances, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.companyID, from, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.DirectIncome, 1)
	suite.Require().Len(report.DirectExpense, 1)
	suite.Require().Len(report.IndirectIncome, 1)
	suite.Require().Len(report.IndirectExpense, 1)
	suite.True(report.GrossProfit.Equal(decimal.NewFromInt(400)))
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(350)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_PlugsProfitIntoCapital() {
	ctx := context.Background()
	balances := []domain.LedgerBalance{
		balance("Cash", domain.CategoryCash, 500, 0),
		balance("Bright Retail", domain.CategorySundryDebtor, 500, 0),
		balance("Acme Supplies", domain.CategorySundryCreditor, 0, 300),
		balance("Owner Capital", domain.CategoryCapital, 0, 400),
		balance("Sales Account", domain.CategorySales, 0, 1000),
		balance("Purchases", domain.CategoryPurchase, 700, 0),
	}

	suite.mockReportingRepo.On("LedgerBalances", ctx, suite.companyID, (*time.Time)(nil), suite.asOf).
		Return(balances, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(300)))

	// Capital carries the owner's 400 plus the 300 P&L plug.
	suite.Require().Len(report.Capital, 2)
	plug := report.Capital[len(report.Capital)-1]
	suite.Equal("Profit & Loss Account", plug.LedgerName)
	suite.True(plug.Amount.Equal(decimal.NewFromInt(300)))
	suite.True(report.TotalCapital.Equal(decimal.NewFromInt(700)))
	suite.True(report.NetWorth.IsZero())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_OverdraftSwitchesSides() {
	ctx := context.Background()
	balances := []domain.LedgerBalance{
		// Bank account closing credit: an overdraft, reported as a liability.
		balance("HDFC Current", domain.CategoryBankAccount, 0, 250),
		balance("Cash", domain.CategoryCash, 250, 0),
	}

	suite.mockReportingRepo.On("LedgerBalances", ctx, suite.companyID, (*time.Time)(nil), suite.asOf).
		Return(balances, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Liabilities, 1)
	suite.Equal("HDFC Current", report.Liabilities[0].LedgerName)
	suite.True(report.Liabilities[0].Amount.Equal(decimal.NewFromInt(250)))
	suite.Require().Len(report.Assets, 1)
	suite.Equal("Cash", report.Assets[0].LedgerName)
}

func (suite *ReportingServiceTestSuite) TestCashFlow_ClassifiesByCounterLedger() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	entries := []portsrepo.CashFlowEntry{
		{VoucherID: uuid.NewString(), VoucherNumber: "RCT-1",
			CashDebit:      decimal.NewFromInt(5000),
			CounterLedgers: []string{"Bank Loan"}},
		{VoucherID: uuid.NewString(), VoucherNumber: "PAY-1",
			CashCredit:     decimal.NewFromInt(2000),
			CounterLedgers: []string{"Machinery"}},
		{VoucherID: uuid.NewString(), VoucherNumber: "RCT-2",
			CashDebit:      decimal.NewFromInt(1000),
			CounterLedgers: []string{"Sales Account"}},
	}

	suite.mockReportingRepo.On("CashFlowEntries", ctx, suite.companyID, from, suite.asOf).
		Return(entries, nil).Once()

	report, err := suite.service.CashFlow(ctx, suite.companyID, from, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Lines, 3)
	suite.Equal(domain.ActivityFinancing, report.Lines[0].Activity)
	suite.Equal(domain.ActivityInvesting, report.Lines[1].Activity)
	suite.Equal(domain.ActivityOperating, report.Lines[2].Activity)
	suite.True(report.NetFinancing.Equal(decimal.NewFromInt(5000)))
	suite.True(report.NetInvesting.Equal(decimal.NewFromInt(-2000)))
	suite.True(report.NetOperating.Equal(decimal.NewFromInt(1000)))
	suite.True(report.NetChange.Equal(decimal.NewFromInt(4000)))
}

func (suite *ReportingServiceTestSuite) TestRatios_DerivedFromBalances() {
	ctx := context.Background()
	balances := []domain.LedgerBalance{
		balance("Cash", domain.CategoryCash, 1500, 0),
		balance("Stock In Hand", domain.CategoryStock, 500, 0),
		balance("Acme Supplies", domain.CategorySundryCreditor, 0, 1000),
		balance("Owner Capital", domain.CategoryCapital, 0, 500),
		balance("Sales Account", domain.CategorySales, 0, 2000),
		balance("Purchases", domain.CategoryPurchase, 1500, 0),
	}

	suite.mockReportingRepo.On("LedgerBalances", ctx, suite.companyID, (*time.Time)(nil), suite.asOf).
		Return(balances, nil).Once()

	report, err := suite.service.Ratios(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	// Current assets 2000 against current liabilities 1000.
	suite.True(report.CurrentRatio.Equal(decimal.NewFromInt(2)))
	suite.True(report.QuickRatio.Equal(decimal.NewFromFloat(1.5)))
	// Gross and net profit both 500 on income 2000.
	suite.True(report.GrossMargin.Equal(decimal.NewFromInt(25)))
	suite.True(report.NetMargin.Equal(decimal.NewFromInt(25)))
	suite.True(report.WorkingCapital.Equal(decimal.NewFromInt(1000)))
	// Equity 500 plus retained 500 against debt 1000.
	suite.True(report.DebtEquity.Equal(decimal.NewFromInt(1)))
}

func (suite *ReportingServiceTestSuite) TestRatios_ZeroDenominatorsYieldZero() {
	ctx := context.Background()

	suite.mockReportingRepo.On("LedgerBalances", ctx, suite.companyID, (*time.Time)(nil), suite.asOf).
		Return([]domain.LedgerBalance{}, nil).Once()

	report, err := suite.service.Ratios(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.CurrentRatio.IsZero())
	suite.True(report.NetMargin.IsZero())
	suite.True(report.DebtEquity.IsZero())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
