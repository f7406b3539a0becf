package services_test

import (
	"context"
	"testing"

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

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.LedgerSvcFacade

	companyID string
	userID    string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, nil)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) group(category domain.GroupCategory) *domain.LedgerGroup {
	return &domain.LedgerGroup{
		GroupID:   uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      string(category),
		Category:  category,
	}
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_DefaultsOpeningSideDebitForAssets() {
	ctx := context.Background()
	group := suite.group(domain.CategoryCash)
	req := dto.CreateLedgerRequest{
		GroupID:        group.GroupID,
		Name:           "Petty Cash",
		OpeningBalance: decimal.NewFromInt(500),
	}

	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, group.GroupID).Return(group, nil).Once()

	var saved domain.Ledger
	suite.mockLedgerRepo.On("SaveLedger", ctx, mock.AnythingOfType("domain.Ledger")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Ledger)
		}).Return(nil).Once()

	ledger, err := suite.service.CreateLedger(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SideDebit, ledger.OpeningSide)
	suite.Equal(domain.CategoryCash, saved.GroupCategory)
	suite.Equal(suite.userID, saved.CreatedBy)
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_DefaultsOpeningSideCreditForCapital() {
	ctx := context.Background()
	group := suite.group(domain.CategoryCapital)
	req := dto.CreateLedgerRequest{
		GroupID: group.GroupID,
		Name:    "Owner Capital",
	}

	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, group.GroupID).Return(group, nil).Once()
	suite.mockLedgerRepo.On("SaveLedger", ctx, mock.AnythingOfType("domain.Ledger")).Return(nil).Once()

	ledger, err := suite.service.CreateLedger(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SideCredit, ledger.OpeningSide)
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_RejectsNegativeOpeningBalance() {
	ctx := context.Background()
	group := suite.group(domain.CategoryCash)
	req := dto.CreateLedgerRequest{
		GroupID:        group.GroupID,
		Name:           "Petty Cash",
		OpeningBalance: decimal.NewFromInt(-1),
	}

	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, group.GroupID).Return(group, nil).Once()

	_, err := suite.service.CreateLedger(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveLedger", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_BillByBillRequiresPartyGroup() {
	ctx := context.Background()
	group := suite.group(domain.CategoryCash)
	req := dto.CreateLedgerRequest{
		GroupID:    group.GroupID,
		Name:       "Petty Cash",
		BillByBill: true,
	}

	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, group.GroupID).Return(group, nil).Once()

	_, err := suite.service.CreateLedger(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveLedger", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateLedger_InventoryFlagRequiresStockGroup() {
	ctx := context.Background()
	group := suite.group(domain.CategorySales)
	req := dto.CreateLedgerRequest{
		GroupID:               group.GroupID,
		Name:                  "Finished Goods",
		InventoryAffectsStock: true,
	}

	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, group.GroupID).Return(group, nil).Once()

	_, err := suite.service.CreateLedger(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveLedger", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateLedgerGroup_ParentCategoryMismatch() {
	ctx := context.Background()
	parent := suite.group(domain.CategoryCurrentAsset)
	req := dto.CreateLedgerGroupRequest{
		Name:          "Staff Loans",
		Category:      domain.CategoryLoan,
		ParentGroupID: &parent.GroupID,
	}

	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, parent.GroupID).Return(parent, nil).Once()

	_, err := suite.service.CreateLedgerGroup(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveLedgerGroup", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUpdateLedgerGroup_RejectsAncestryCycle() {
	ctx := context.Background()
	groupA := suite.group(domain.CategoryCurrentAsset)
	groupB := suite.group(domain.CategoryCurrentAsset)
	groupB.ParentGroupID = &groupA.GroupID

	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, groupA.GroupID).Return(groupA, nil).Once()
	// Walking the parent chain from B leads back to A.
	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, groupB.GroupID).Return(groupB, nil).Once()

	req := dto.UpdateLedgerGroupRequest{ParentGroupID: &groupB.GroupID}
	_, err := suite.service.UpdateLedgerGroup(ctx, suite.companyID, groupA.GroupID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "UpdateLedgerGroup", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteLedgerGroup_WithChildGroups() {
	ctx := context.Background()
	group := suite.group(domain.CategoryCurrentAsset)

	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, group.GroupID).Return(group, nil).Once()
	suite.mockLedgerRepo.On("CountChildGroups", ctx, suite.companyID, group.GroupID).Return(2, nil).Once()

	err := suite.service.DeleteLedgerGroup(ctx, suite.companyID, group.GroupID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "DeleteLedgerGroup", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteLedgerGroup_WithLedgers() {
	ctx := context.Background()
	group := suite.group(domain.CategoryCurrentAsset)

	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, group.GroupID).Return(group, nil).Once()
	suite.mockLedgerRepo.On("CountChildGroups", ctx, suite.companyID, group.GroupID).Return(0, nil).Once()
	suite.mockLedgerRepo.On("CountGroupLedgers", ctx, suite.companyID, group.GroupID).Return(3, nil).Once()

	err := suite.service.DeleteLedgerGroup(ctx, suite.companyID, group.GroupID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestDeleteLedger_WithEntries() {
	ctx := context.Background()
	ledger := &domain.Ledger{
		LedgerID:  uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "Sales Account",
	}

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, suite.companyID, ledger.LedgerID).Return(ledger, nil).Once()
	suite.mockLedgerRepo.On("CountEntriesForLedger", ctx, suite.companyID, "Sales Account").Return(12, nil).Once()

	err := suite.service.DeleteLedger(ctx, suite.companyID, ledger.LedgerID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "DeleteLedger", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteLedger_UnusedLedger() {
	ctx := context.Background()
	ledger := &domain.Ledger{
		LedgerID:  uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "Old Deposit",
	}

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, suite.companyID, ledger.LedgerID).Return(ledger, nil).Once()
	suite.mockLedgerRepo.On("CountEntriesForLedger", ctx, suite.companyID, "Old Deposit").Return(0, nil).Once()
	suite.mockLedgerRepo.On("DeleteLedger", ctx, suite.companyID, ledger.LedgerID).Return(nil).Once()

	err := suite.service.DeleteLedger(ctx, suite.companyID, ledger.LedgerID, suite.userID)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateLedger_MoveRederivesCategory() {
	ctx := context.Background()
	oldGroup := suite.group(domain.CategoryCurrentAsset)
	newGroup := suite.group(domain.CategorySundryDebtor)
	ledger := &domain.Ledger{
		LedgerID:      uuid.NewString(),
		CompanyID:     suite.companyID,
		GroupID:       oldGroup.GroupID,
		GroupCategory: oldGroup.Category,
		Name:          "Bright Retail",
	}

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, suite.companyID, ledger.LedgerID).Return(ledger, nil).Once()
	suite.mockLedgerRepo.On("FindLedgerGroupByID", ctx, suite.companyID, newGroup.GroupID).Return(newGroup, nil).Once()

	var saved domain.Ledger
	suite.mockLedgerRepo.On("UpdateLedger", ctx, mock.AnythingOfType("domain.Ledger")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Ledger)
		}).Return(nil).Once()

	req := dto.UpdateLedgerRequest{GroupID: &newGroup.GroupID}
	updated, err := suite.service.UpdateLedger(ctx, suite.companyID, ledger.LedgerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CategorySundryDebtor, updated.GroupCategory)
	suite.Equal(newGroup.GroupID, saved.GroupID)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
