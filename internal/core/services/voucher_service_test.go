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
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/core/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
)

type VoucherServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo   *MockVoucherRepository
	mockLedgerRepo    *MockLedgerRepository
	mockInventoryRepo *MockInventoryRepository
	mockBillRepo      *MockBillRepository
	mockGstCalc       *MockGstCalculator
	service           portssvc.VoucherSvcFacade

	companyID string
	userID    string
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockBillRepo = new(MockBillRepository)
	suite.mockGstCalc = new(MockGstCalculator)
	// nil authorizer grants access, keeping the tests focused on posting.
	suite.service = services.NewVoucherService(
		suite.mockVoucherRepo,
		suite.mockLedgerRepo,
		suite.mockInventoryRepo,
		suite.mockBillRepo,
		suite.mockGstCalc,
		nil,
	)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *VoucherServiceTestSuite) draftVoucher(category domain.VoucherCategory) *domain.Voucher {
	return &domain.Voucher{
		VoucherID: uuid.NewString(),
		CompanyID: suite.companyID,
		TypeID:    uuid.NewString(),
		Category:  category,
		Number:    "V-001",
		Date:      time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		Status:    domain.VoucherDraft,
	}
}

func entryFor(entries []domain.VoucherEntry, ledgerName string) *domain.VoucherEntry {
	for i := range entries {
		if entries[i].LedgerName == ledgerName {
			return &entries[i]
		}
	}
	return nil
}

func (suite *VoucherServiceTestSuite) TestPostVoucher_PaymentSynthesizesEntries() {
	ctx := context.Background()
	party := "Acme Supplies"
	voucher := suite.draftVoucher(domain.CategoryPayment)
	voucher.PartyLedgerName = &party
	voucher.TotalAmount = decimal.NewFromInt(500)

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerByName", ctx, suite.companyID, party).
		Return(&domain.Ledger{Name: party, GroupCategory: domain.CategorySundryCreditor}, nil).Once()
	suite.mockLedgerRepo.On("FindFirstLedgerByCategories", ctx, suite.companyID,
		[]domain.GroupCategory{domain.CategoryCash, domain.CategoryBankAccount}).
		Return(&domain.Ledger{Name: "Cash", GroupCategory: domain.CategoryCash}, nil).Once()

	var captured portsrepo.PostVoucherParams
	suite.mockVoucherRepo.On("PostVoucher", ctx, mock.AnythingOfType("repositories.PostVoucherParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.PostVoucherParams)
		}).Return(nil).Once()

	result, err := suite.service.PostVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, result.EntriesCreated)
	suite.False(result.GstPosted)
	suite.False(result.InventoryUpdated)

	suite.Equal(domain.VoucherPosted, captured.Voucher.Status)
	suite.Require().Len(captured.Voucher.Entries, 2)
	partyEntry := entryFor(captured.Voucher.Entries, party)
	suite.Require().NotNil(partyEntry)
	suite.Equal(domain.Debit, partyEntry.EntryType)
	suite.True(partyEntry.Amount.Equal(decimal.NewFromInt(500)))
	cashEntry := entryFor(captured.Voucher.Entries, "Cash")
	suite.Require().NotNil(cashEntry)
	suite.Equal(domain.Credit, cashEntry.EntryType)
	suite.Nil(captured.Bill)
	suite.Empty(captured.StockChecks)

	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestPostVoucher_SalesPostsGstAndOpensBill() {
	ctx := context.Background()
	party := "Bright Retail"
	counter := "Sales Account"
	pos := "27"
	creditDays := 30

	voucher := suite.draftVoucher(domain.CategorySalesVoucher)
	voucher.PartyLedgerName = &party
	voucher.CounterLedgerName = &counter
	voucher.PlaceOfSupply = &pos
	voucher.InventoryLines = []domain.InventoryLine{{
		LineID:        uuid.NewString(),
		VoucherID:     voucher.VoucherID,
		ItemName:      "Widget",
		WarehouseName: "Main",
		Quantity:      decimal.NewFromInt(10),
		Rate:          decimal.NewFromInt(100),
		Amount:        decimal.NewFromInt(1000),
	}}

	totals := domain.TaxLine{
		Taxable: decimal.NewFromInt(1000),
		CGST:    decimal.NewFromInt(90),
		SGST:    decimal.NewFromInt(90),
		Total:   decimal.NewFromInt(1180),
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockInventoryRepo.On("StockBalance", ctx, suite.companyID, "Widget", "Main").
		Return(decimal.NewFromInt(25), nil)
	suite.mockGstCalc.On("ComputeDocument", ctx, suite.companyID, voucher.InventoryLines, voucher.Date, pos).
		Return([]domain.TaxLine{totals}, totals, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerByName", ctx, suite.companyID, party).
		Return(&domain.Ledger{
			Name:             party,
			GroupCategory:    domain.CategorySundryDebtor,
			BillByBill:       true,
			CreditPeriodDays: &creditDays,
		}, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerByName", ctx, suite.companyID, counter).
		Return(&domain.Ledger{Name: counter, GroupCategory: domain.CategorySales}, nil).Once()
	suite.mockGstCalc.On("ResolvePostingLedger", ctx, suite.companyID, domain.MappingOutputCGST).
		Return("Output CGST", nil).Once()
	suite.mockGstCalc.On("ResolvePostingLedger", ctx, suite.companyID, domain.MappingOutputSGST).
		Return("Output SGST", nil).Once()

	var captured portsrepo.PostVoucherParams
	suite.mockVoucherRepo.On("PostVoucher", ctx, mock.AnythingOfType("repositories.PostVoucherParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.PostVoucherParams)
		}).Return(nil).Once()

	result, err := suite.service.PostVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(4, result.EntriesCreated)
	suite.True(result.GstPosted)
	suite.True(result.InventoryUpdated)

	gross := decimal.NewFromInt(1180)
	partyEntry := entryFor(captured.Voucher.Entries, party)
	suite.Require().NotNil(partyEntry)
	suite.Equal(domain.Debit, partyEntry.EntryType)
	suite.True(partyEntry.Amount.Equal(gross))
	salesEntry := entryFor(captured.Voucher.Entries, counter)
	suite.Require().NotNil(salesEntry)
	suite.Equal(domain.Credit, salesEntry.EntryType)
	suite.True(salesEntry.Amount.Equal(decimal.NewFromInt(1000)))
	cgstEntry := entryFor(captured.Voucher.Entries, "Output CGST")
	suite.Require().NotNil(cgstEntry)
	suite.Equal(domain.Credit, cgstEntry.EntryType)
	suite.True(cgstEntry.Amount.Equal(decimal.NewFromInt(90)))
	suite.True(captured.Voucher.TotalAmount.Equal(gross))

	suite.Require().Len(captured.StockChecks, 1)
	suite.True(captured.StockChecks[0].Required.Equal(decimal.NewFromInt(10)))

	suite.Require().NotNil(captured.Bill)
	suite.Equal(domain.BillReceivable, captured.Bill.BillType)
	suite.Equal(party, captured.Bill.LedgerName)
	suite.Equal(domain.BillOpen, captured.Bill.Status)
	suite.True(captured.Bill.OriginalAmount.Equal(gross))
	suite.True(captured.Bill.OutstandingAmount.Equal(gross))
	suite.Require().NotNil(captured.Bill.DueDate)
	suite.Equal(voucher.Date.AddDate(0, 0, creditDays), *captured.Bill.DueDate)

	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockGstCalc.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestPostVoucher_JournalUnbalanced() {
	ctx := context.Background()
	voucher := suite.draftVoucher(domain.CategoryJournal)
	voucher.Entries = []domain.VoucherEntry{
		{EntryID: uuid.NewString(), LedgerName: "Rent", EntryType: domain.Debit, Amount: decimal.NewFromInt(100)},
		{EntryID: uuid.NewString(), LedgerName: "Cash", EntryType: domain.Credit, Amount: decimal.NewFromInt(90)},
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()

	result, err := suite.service.PostVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Require().Len(vErr.Reasons, 1)
	suite.Contains(vErr.Reasons[0], "do not balance")
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "PostVoucher", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestPostVoucher_AlreadyPosted() {
	ctx := context.Background()
	voucher := suite.draftVoucher(domain.CategoryPayment)
	voucher.Status = domain.VoucherPosted

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()

	result, err := suite.service.PostVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *VoucherServiceTestSuite) TestPostVoucher_InsufficientStock() {
	ctx := context.Background()
	party := "Bright Retail"
	counter := "Sales Account"
	voucher := suite.draftVoucher(domain.CategorySalesVoucher)
	voucher.PartyLedgerName = &party
	voucher.CounterLedgerName = &counter
	voucher.InventoryLines = []domain.InventoryLine{{
		LineID:        uuid.NewString(),
		ItemName:      "Widget",
		WarehouseName: "Main",
		Quantity:      decimal.NewFromInt(5),
		Rate:          decimal.NewFromInt(100),
		Amount:        decimal.NewFromInt(500),
	}}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockInventoryRepo.On("StockBalance", ctx, suite.companyID, "Widget", "Main").
		Return(decimal.NewFromInt(2), nil).Once()

	result, err := suite.service.PostVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Require().Len(vErr.Reasons, 1)
	suite.Contains(vErr.Reasons[0], "insufficient stock for Widget at Main")
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "PostVoucher", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestPostVoucher_ManualEntriesBypassRules() {
	ctx := context.Background()
	voucher := suite.draftVoucher(domain.CategoryPayment)
	voucher.TotalAmount = decimal.NewFromInt(250)
	voucher.Entries = []domain.VoucherEntry{
		{EntryID: uuid.NewString(), LedgerName: "Vendor Advance", EntryType: domain.Debit, Amount: decimal.NewFromInt(250)},
		{EntryID: uuid.NewString(), LedgerName: "Petty Cash", EntryType: domain.Credit, Amount: decimal.NewFromInt(250)},
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()

	var captured portsrepo.PostVoucherParams
	suite.mockVoucherRepo.On("PostVoucher", ctx, mock.AnythingOfType("repositories.PostVoucherParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.PostVoucherParams)
		}).Return(nil).Once()

	result, err := suite.service.PostVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, result.EntriesCreated)
	suite.Equal("Vendor Advance", captured.Voucher.Entries[0].LedgerName)
	// No party/counter resolution happens when entries are supplied.
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindLedgerByName", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCancelVoucher_DraftFlipsStatus() {
	ctx := context.Background()
	voucher := suite.draftVoucher(domain.CategoryJournal)

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("CancelDraftVoucher", ctx, suite.companyID, voucher.VoucherID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	result, err := suite.service.CancelVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(voucher.VoucherID, result.VoucherID)
	suite.Nil(result.ReversingVoucherID)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCancelVoucher_PostedGeneratesReversal() {
	ctx := context.Background()
	voucher := suite.draftVoucher(domain.CategoryPayment)
	voucher.Status = domain.VoucherPosted
	voucher.TotalAmount = decimal.NewFromInt(500)
	voucher.Entries = []domain.VoucherEntry{
		{EntryID: uuid.NewString(), VoucherID: voucher.VoucherID, LedgerName: "Acme Supplies", EntryType: domain.Debit, Amount: decimal.NewFromInt(500)},
		{EntryID: uuid.NewString(), VoucherID: voucher.VoucherID, LedgerName: "Cash", EntryType: domain.Credit, Amount: decimal.NewFromInt(500)},
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockBillRepo.On("ListBillsByVoucher", ctx, suite.companyID, voucher.VoucherID).Return([]domain.Bill{}, nil).Once()

	var reversing domain.Voucher
	suite.mockVoucherRepo.On("ReverseVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("domain.Voucher")).
		Run(func(args mock.Arguments) {
			reversing = args.Get(2).(domain.Voucher)
		}).Return(nil).Once()

	result, err := suite.service.CancelVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result.ReversingVoucherID)
	suite.Equal(reversing.VoucherID, *result.ReversingVoucherID)

	suite.Equal(voucher.Number+"/R", reversing.Number)
	suite.Equal(domain.VoucherPosted, reversing.Status)
	suite.Require().NotNil(reversing.OriginalVoucherID)
	suite.Equal(voucher.VoucherID, *reversing.OriginalVoucherID)
	suite.Require().Len(reversing.Entries, 2)
	suite.Equal(domain.Credit, entryFor(reversing.Entries, "Acme Supplies").EntryType)
	suite.Equal(domain.Debit, entryFor(reversing.Entries, "Cash").EntryType)
	// Inventory lines are not carried; the cancelled original stops counting.
	suite.Empty(reversing.InventoryLines)
}

func (suite *VoucherServiceTestSuite) TestCancelVoucher_PostedWithSettledBillRejected() {
	ctx := context.Background()
	voucher := suite.draftVoucher(domain.CategorySalesVoucher)
	voucher.Status = domain.VoucherPosted

	bill := domain.Bill{
		BillID:            uuid.NewString(),
		CompanyID:         suite.companyID,
		Number:            "INV-9",
		VoucherID:         &voucher.VoucherID,
		OriginalAmount:    decimal.NewFromInt(1180),
		SettledAmount:     decimal.NewFromInt(200),
		OutstandingAmount: decimal.NewFromInt(980),
		Status:            domain.BillPartial,
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockBillRepo.On("ListBillsByVoucher", ctx, suite.companyID, voucher.VoucherID).Return([]domain.Bill{bill}, nil).Once()

	result, err := suite.service.CancelVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "ReverseVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCancelVoucher_ReversingVoucherRejected() {
	ctx := context.Background()
	original := uuid.NewString()
	voucher := suite.draftVoucher(domain.CategoryPayment)
	voucher.Status = domain.VoucherPosted
	voucher.OriginalVoucherID = &original

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()

	result, err := suite.service.CancelVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *VoucherServiceTestSuite) TestCancelVoucher_AlreadyCancelled() {
	ctx := context.Background()
	voucher := suite.draftVoucher(domain.CategoryPayment)
	voucher.Status = domain.VoucherCancelled

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, suite.companyID, voucher.VoucherID).Return(voucher, nil).Once()

	_, err := suite.service.CancelVoucher(ctx, suite.companyID, voucher.VoucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *VoucherServiceTestSuite) TestCreateDraftVoucher_DuplicateNumber() {
	ctx := context.Background()
	typeID := uuid.NewString()
	req := dto.CreateVoucherRequest{
		TypeID: typeID,
		Number: "INV-42",
		Date:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockVoucherRepo.On("FindVoucherTypeByID", ctx, suite.companyID, typeID).
		Return(&domain.VoucherType{TypeID: typeID, Category: domain.CategorySalesVoucher}, nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByNumber", ctx, suite.companyID, typeID, "INV-42").
		Return(&domain.Voucher{VoucherID: uuid.NewString(), Number: "INV-42"}, nil).Once()

	result, err := suite.service.CreateDraftVoucher(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveDraftVoucher", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateDraftVoucher_ComputesLineAmount() {
	ctx := context.Background()
	typeID := uuid.NewString()
	req := dto.CreateVoucherRequest{
		TypeID: typeID,
		Number: "PUR-7",
		Date:   time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		InventoryLines: []dto.CreateInventoryLineRequest{{
			ItemName:      "Widget",
			WarehouseName: "Main",
			Quantity:      decimal.NewFromInt(4),
			Rate:          decimal.NewFromFloat(12.5),
		}},
	}

	suite.mockVoucherRepo.On("FindVoucherTypeByID", ctx, suite.companyID, typeID).
		Return(&domain.VoucherType{TypeID: typeID, Category: domain.CategoryPurchaseVch}, nil).Once()
	suite.mockVoucherRepo.On("FindVoucherByNumber", ctx, suite.companyID, typeID, "PUR-7").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockVoucherRepo.On("SaveDraftVoucher", ctx, mock.AnythingOfType("domain.Voucher")).Return(nil).Once()

	voucher, err := suite.service.CreateDraftVoucher(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.VoucherDraft, voucher.Status)
	suite.Require().Len(voucher.InventoryLines, 1)
	suite.True(voucher.InventoryLines[0].Amount.Equal(decimal.NewFromInt(50)))
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
