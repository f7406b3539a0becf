package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/startupbooks/startup_books_app/internal/apperrors"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/core/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
)

type BillServiceTestSuite struct {
	suite.Suite
	mockBillRepo    *MockBillRepository
	mockVoucherRepo *MockVoucherRepository
	service         portssvc.BillSvcFacade

	companyID string
	userID    string
}

func (suite *BillServiceTestSuite) SetupTest() {
	suite.mockBillRepo = new(MockBillRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.service = services.NewBillService(suite.mockBillRepo, suite.mockVoucherRepo, nil)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *BillServiceTestSuite) openBill(amount int64) *domain.Bill {
	return &domain.Bill{
		BillID:            uuid.NewString(),
		CompanyID:         suite.companyID,
		BillType:          domain.BillReceivable,
		Number:            "INV-1",
		LedgerName:        "Bright Retail",
		BillDate:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		OriginalAmount:    decimal.NewFromInt(amount),
		SettledAmount:     decimal.Zero,
		OutstandingAmount: decimal.NewFromInt(amount),
		Status:            domain.BillOpen,
	}
}

func (suite *BillServiceTestSuite) settleReq(amount int64) dto.SettleBillRequest {
	return dto.SettleBillRequest{
		VoucherID: uuid.NewString(),
		EntryID:   uuid.NewString(),
		Amount:    decimal.NewFromInt(amount),
		Date:      time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *BillServiceTestSuite) expectEntryLookup(req dto.SettleBillRequest) {
	suite.mockVoucherRepo.On("FindEntryByID", context.Background(), suite.companyID, req.VoucherID, req.EntryID).
		Return(&domain.VoucherEntry{EntryID: req.EntryID, VoucherID: req.VoucherID}, nil).Once()
}

func (suite *BillServiceTestSuite) TestSettleBill_PartialSettlement() {
	ctx := context.Background()
	bill := suite.openBill(1000)
	req := suite.settleReq(400)

	suite.mockBillRepo.On("FindBillByID", ctx, suite.companyID, bill.BillID).Return(bill, nil).Once()
	suite.expectEntryLookup(req)

	partial := *bill
	partial.SettledAmount = decimal.NewFromInt(400)
	partial.OutstandingAmount = decimal.NewFromInt(600)
	partial.Status = domain.BillPartial

	var savedSettlement domain.BillSettlement
	suite.mockBillRepo.On("SettleBill", ctx, mock.AnythingOfType("domain.BillSettlement")).
		Run(func(args mock.Arguments) {
			savedSettlement = args.Get(1).(domain.BillSettlement)
		}).Return(&partial, nil).Once()

	updated, err := suite.service.SettleBill(ctx, suite.companyID, bill.BillID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.BillPartial, updated.Status)
	suite.True(updated.SettledAmount.Equal(decimal.NewFromInt(400)))
	suite.True(updated.OutstandingAmount.Equal(decimal.NewFromInt(600)))
	suite.Equal(bill.BillID, savedSettlement.BillID)
	suite.Equal(suite.companyID, savedSettlement.CompanyID)
	suite.True(savedSettlement.Amount.Equal(decimal.NewFromInt(400)))
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestSettleBill_FullSettlement() {
	ctx := context.Background()
	bill := suite.openBill(1000)
	bill.SettledAmount = decimal.NewFromInt(600)
	bill.OutstandingAmount = decimal.NewFromInt(400)
	bill.Status = domain.BillPartial
	req := suite.settleReq(400)

	settled := *bill
	settled.SettledAmount = decimal.NewFromInt(1000)
	settled.OutstandingAmount = decimal.Zero
	settled.Status = domain.BillSettled

	suite.mockBillRepo.On("FindBillByID", ctx, suite.companyID, bill.BillID).Return(bill, nil).Once()
	suite.expectEntryLookup(req)
	suite.mockBillRepo.On("SettleBill", ctx, mock.AnythingOfType("domain.BillSettlement")).
		Return(&settled, nil).Once()

	updated, err := suite.service.SettleBill(ctx, suite.companyID, bill.BillID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.BillSettled, updated.Status)
	suite.True(updated.OutstandingAmount.IsZero())
}

func (suite *BillServiceTestSuite) TestSettleBill_ConcurrentSettlementRejected() {
	ctx := context.Background()
	bill := suite.openBill(300)
	req := suite.settleReq(300)

	// The snapshot read passes every check, but by the time the guarded
	// update runs another settlement has consumed the outstanding amount.
	suite.mockBillRepo.On("FindBillByID", ctx, suite.companyID, bill.BillID).Return(bill, nil).Once()
	suite.expectEntryLookup(req)
	suite.mockBillRepo.On("SettleBill", ctx, mock.AnythingOfType("domain.BillSettlement")).
		Return(nil, apperrors.ErrConflict).Once()

	updated, err := suite.service.SettleBill(ctx, suite.companyID, bill.BillID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *BillServiceTestSuite) TestSettleBill_OverSettlementRejected() {
	ctx := context.Background()
	bill := suite.openBill(1000)
	req := suite.settleReq(1001)

	suite.mockBillRepo.On("FindBillByID", ctx, suite.companyID, bill.BillID).Return(bill, nil).Once()

	updated, err := suite.service.SettleBill(ctx, suite.companyID, bill.BillID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "SettleBill", mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestSettleBill_SettledBillRejected() {
	ctx := context.Background()
	bill := suite.openBill(1000)
	bill.Status = domain.BillSettled
	req := suite.settleReq(100)

	suite.mockBillRepo.On("FindBillByID", ctx, suite.companyID, bill.BillID).Return(bill, nil).Once()

	_, err := suite.service.SettleBill(ctx, suite.companyID, bill.BillID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *BillServiceTestSuite) TestSettleBill_UnknownEntryRejected() {
	ctx := context.Background()
	bill := suite.openBill(1000)
	req := suite.settleReq(100)

	suite.mockBillRepo.On("FindBillByID", ctx, suite.companyID, bill.BillID).Return(bill, nil).Once()
	suite.mockVoucherRepo.On("FindEntryByID", ctx, suite.companyID, req.VoucherID, req.EntryID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SettleBill(ctx, suite.companyID, bill.BillID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BillServiceTestSuite) TestCancelBill_OpenBill() {
	ctx := context.Background()
	bill := suite.openBill(1000)

	suite.mockBillRepo.On("FindBillByID", ctx, suite.companyID, bill.BillID).Return(bill, nil).Once()

	var saved domain.Bill
	suite.mockBillRepo.On("SaveBill", ctx, mock.AnythingOfType("domain.Bill")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Bill)
		}).Return(nil).Once()

	err := suite.service.CancelBill(ctx, suite.companyID, bill.BillID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.BillCancelled, saved.Status)
	suite.True(saved.OutstandingAmount.IsZero())
}

func (suite *BillServiceTestSuite) TestCancelBill_WithSettlementsRejected() {
	ctx := context.Background()
	bill := suite.openBill(1000)
	bill.SettledAmount = decimal.NewFromInt(100)
	bill.OutstandingAmount = decimal.NewFromInt(900)
	bill.Status = domain.BillPartial

	suite.mockBillRepo.On("FindBillByID", ctx, suite.companyID, bill.BillID).Return(bill, nil).Once()

	err := suite.service.CancelBill(ctx, suite.companyID, bill.BillID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "SaveBill", mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestCancelBill_AlreadyCancelledIsIdempotent() {
	ctx := context.Background()
	bill := suite.openBill(1000)
	bill.Status = domain.BillCancelled

	suite.mockBillRepo.On("FindBillByID", ctx, suite.companyID, bill.BillID).Return(bill, nil).Once()

	err := suite.service.CancelBill(ctx, suite.companyID, bill.BillID, suite.userID)

	suite.Require().NoError(err)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "SaveBill", mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestCreateBill_DuplicateNumber() {
	ctx := context.Background()
	req := dto.CreateBillRequest{
		Number:     "INV-1",
		BillType:   domain.BillReceivable,
		LedgerName: "Bright Retail",
		BillDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(500),
	}

	suite.mockBillRepo.On("FindBillByNumber", ctx, suite.companyID, "INV-1").
		Return(suite.openBill(500), nil).Once()

	_, err := suite.service.CreateBill(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *BillServiceTestSuite) TestAgingReport_BucketsByDaysOverdue() {
	ctx := context.Background()
	asOf := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	due := func(daysAgo int) *time.Time {
		d := asOf.AddDate(0, 0, -daysAgo)
		return &d
	}

	bills := []domain.Bill{
		// Not yet due.
		{BillType: domain.BillReceivable, LedgerName: "Bright Retail", DueDate: due(-5),
			OutstandingAmount: decimal.NewFromInt(100), Status: domain.BillOpen},
		// 10 days overdue.
		{BillType: domain.BillReceivable, LedgerName: "Bright Retail", DueDate: due(10),
			OutstandingAmount: decimal.NewFromInt(200), Status: domain.BillOpen},
		// 45 days overdue.
		{BillType: domain.BillReceivable, LedgerName: "North Traders", DueDate: due(45),
			OutstandingAmount: decimal.NewFromInt(300), Status: domain.BillPartial},
		// No due date: the bill date stands in, 100 days ago.
		{BillType: domain.BillReceivable, LedgerName: "North Traders",
			BillDate:          asOf.AddDate(0, 0, -100),
			OutstandingAmount: decimal.NewFromInt(400), Status: domain.BillOpen},
		// Payable, excluded from a receivable report.
		{BillType: domain.BillPayable, LedgerName: "Acme Supplies", DueDate: due(10),
			OutstandingAmount: decimal.NewFromInt(999), Status: domain.BillOpen},
	}

	suite.mockBillRepo.On("ListBillsByStatus", ctx, suite.companyID,
		[]domain.BillStatus{domain.BillOpen, domain.BillPartial}).Return(bills, nil).Once()

	report, err := suite.service.AgingReport(ctx, suite.companyID, domain.BillReceivable, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)

	bright := report.Rows[0]
	suite.Equal("Bright Retail", bright.LedgerName)
	suite.True(bright.Buckets[domain.BucketCurrent].Equal(decimal.NewFromInt(100)))
	suite.True(bright.Buckets[domain.Bucket1To30].Equal(decimal.NewFromInt(200)))
	suite.True(bright.Total.Equal(decimal.NewFromInt(300)))

	north := report.Rows[1]
	suite.True(north.Buckets[domain.Bucket31To60].Equal(decimal.NewFromInt(300)))
	suite.True(north.Buckets[domain.BucketOver90].Equal(decimal.NewFromInt(400)))

	suite.True(report.Totals.Total.Equal(decimal.NewFromInt(1000)))
}

func (suite *BillServiceTestSuite) TestOutstandingReport_GroupsByLedger() {
	ctx := context.Background()
	asOf := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	bills := []domain.Bill{
		{BillType: domain.BillPayable, LedgerName: "Acme Supplies",
			OutstandingAmount: decimal.NewFromInt(250), Status: domain.BillOpen},
		{BillType: domain.BillPayable, LedgerName: "Acme Supplies",
			OutstandingAmount: decimal.NewFromInt(750), Status: domain.BillPartial},
		{BillType: domain.BillPayable, LedgerName: "South Metals",
			OutstandingAmount: decimal.NewFromInt(500), Status: domain.BillOpen},
	}

	suite.mockBillRepo.On("ListBillsByStatus", ctx, suite.companyID,
		[]domain.BillStatus{domain.BillOpen, domain.BillPartial}).Return(bills, nil).Once()

	report, err := suite.service.OutstandingReport(ctx, suite.companyID, domain.BillPayable, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.Equal("Acme Supplies", report.Rows[0].LedgerName)
	suite.Equal(2, report.Rows[0].BillCount)
	suite.True(report.Rows[0].Outstanding.Equal(decimal.NewFromInt(1000)))
	suite.True(report.Total.Equal(decimal.NewFromInt(1500)))
}

func TestBillServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillServiceTestSuite))
}
