package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/startupbooks/startup_books_app/internal/apperrors"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

func (suite *ReportingServiceTestSuite) TestLedgerBook_RunningBalance() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("FindLedgerByName", ctx, suite.companyID, "Cash").
		Return(&domain.Ledger{Name: "Cash", GroupCategory: domain.CategoryCash}, nil).Once()
	suite.mockReportingRepo.On("LedgerBalances", ctx, suite.companyID, &from, to).
		Return([]domain.LedgerBalance{{
			LedgerName:   "Cash",
			OpeningDebit: decimal.NewFromInt(1000),
		}}, nil).Once()
	suite.mockReportingRepo.On("EntriesForLedger", ctx, suite.companyID, "Cash", from, to).
		Return([]domain.BookRow{
			{Date: from.AddDate(0, 0, 2), VoucherNumber: "RCT-1", Debit: decimal.NewFromInt(500)},
			{Date: from.AddDate(0, 0, 5), VoucherNumber: "PAY-1", Credit: decimal.NewFromInt(300)},
		}, nil).Once()

	book, err := suite.service.LedgerBook(ctx, suite.companyID, "Cash", from, to, suite.userID)

	suite.Require().NoError(err)
	suite.True(book.Opening.Equal(decimal.NewFromInt(1000)))
	suite.Require().Len(book.Rows, 2)
	suite.True(book.Rows[0].RunningBalance.Equal(decimal.NewFromInt(1500)))
	suite.True(book.Rows[1].RunningBalance.Equal(decimal.NewFromInt(1200)))
	suite.True(book.Closing.Equal(decimal.NewFromInt(1200)))
}

func (suite *ReportingServiceTestSuite) TestCashBook_MergesCashLedgersInDateOrder() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("ListLedgers", ctx, suite.companyID).
		Return([]domain.Ledger{
			{Name: "Cash", GroupCategory: domain.CategoryCash},
			{Name: "Petty Cash", GroupCategory: domain.CategoryCash},
			{Name: "HDFC Current", GroupCategory: domain.CategoryBankAccount},
		}, nil).Once()
	suite.mockReportingRepo.On("LedgerBalances", ctx, suite.companyID, &from, to).
		Return([]domain.LedgerBalance{
			{LedgerName: "Cash", OpeningDebit: decimal.NewFromInt(100)},
			{LedgerName: "Petty Cash", OpeningDebit: decimal.NewFromInt(50)},
			// Bank opening must not leak into the cash book.
			{LedgerName: "HDFC Current", OpeningDebit: decimal.NewFromInt(9000)},
		}, nil).Once()
	suite.mockReportingRepo.On("EntriesForLedger", ctx, suite.companyID, "Cash", from, to).
		Return([]domain.BookRow{
			{Date: from.AddDate(0, 0, 10), VoucherNumber: "PAY-2", Credit: decimal.NewFromInt(40)},
		}, nil).Once()
	suite.mockReportingRepo.On("EntriesForLedger", ctx, suite.companyID, "Petty Cash", from, to).
		Return([]domain.BookRow{
			{Date: from.AddDate(0, 0, 3), VoucherNumber: "RCT-3", Debit: decimal.NewFromInt(20)},
		}, nil).Once()

	book, err := suite.service.CashBook(ctx, suite.companyID, from, to, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Cash Book", book.LedgerName)
	suite.True(book.Opening.Equal(decimal.NewFromInt(150)))
	suite.Require().Len(book.Rows, 2)
	suite.Equal("RCT-3", book.Rows[0].VoucherNumber)
	suite.Equal("PAY-2", book.Rows[1].VoucherNumber)
	suite.True(book.Closing.Equal(decimal.NewFromInt(130)))
}

func (suite *ReportingServiceTestSuite) TestBankBook_NoBankLedgerIsNotFound() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("ListLedgers", ctx, suite.companyID).
		Return([]domain.Ledger{{Name: "Cash", GroupCategory: domain.CategoryCash}}, nil).Once()

	book, err := suite.service.BankBook(ctx, suite.companyID, from, to, suite.userID)

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReportingServiceTestSuite) TestDayBook_EmptyDayIsNotNil() {
	ctx := context.Background()
	date := time.Date(2025, 4, 6, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("VouchersOnDate", ctx, suite.companyID, date).
		Return(nil, nil).Once()

	rows, err := suite.service.DayBook(ctx, suite.companyID, date, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(rows)
	suite.Empty(rows)
}

func (suite *ReportingServiceTestSuite) TestRegister_FiltersByCategory() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	expected := []domain.DayBookRow{
		{VoucherNumber: "INV-1", Category: domain.CategorySalesVoucher, TotalAmount: decimal.NewFromInt(1180)},
	}

	suite.mockReportingRepo.On("VouchersByCategory", ctx, suite.companyID, domain.CategorySalesVoucher, from, to).
		Return(expected, nil).Once()

	rows, err := suite.service.Register(ctx, suite.companyID, domain.CategorySalesVoucher, from, to, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(expected, rows)
}
