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

type GstServiceTestSuite struct {
	suite.Suite
	mockGstRepo     *MockGstRepository
	mockLedgerRepo  *MockLedgerRepository
	mockCompanyRepo *MockCompanyRepository
	service         portssvc.GstSvcFacade

	companyID string
	userID    string
	on        time.Time
}

func (suite *GstServiceTestSuite) SetupTest() {
	suite.mockGstRepo = new(MockGstRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.service = services.NewGstService(suite.mockGstRepo, suite.mockLedgerRepo, suite.mockCompanyRepo, nil)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.on = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

// registeredIn stubs the registration lookup with the given home state.
func (suite *GstServiceTestSuite) registeredIn(stateCode string) {
	suite.mockGstRepo.On("FindRegistration", context.Background(), suite.companyID).
		Return(&domain.GstRegistration{CompanyID: suite.companyID, StateCode: stateCode}, nil)
}

func lineWithRate(amount int64, rate float64) domain.InventoryLine {
	r := decimal.NewFromFloat(rate)
	return domain.InventoryLine{
		LineID:   uuid.NewString(),
		ItemName: "Widget",
		Amount:   decimal.NewFromInt(amount),
		GstRate:  &r,
	}
}

func (suite *GstServiceTestSuite) TestComputeLine_IntrastateSplitsExplicitRate() {
	ctx := context.Background()
	suite.registeredIn("29")

	tax, err := suite.service.ComputeLine(ctx, suite.companyID, lineWithRate(1000, 18), suite.on, "29")

	suite.Require().NoError(err)
	suite.True(tax.CGST.Equal(decimal.NewFromInt(90)), "CGST was %s", tax.CGST)
	suite.True(tax.SGST.Equal(decimal.NewFromInt(90)))
	suite.True(tax.IGST.IsZero())
	suite.True(tax.Total.Equal(decimal.NewFromInt(1180)))
}

func (suite *GstServiceTestSuite) TestComputeLine_InterstateChargesIGST() {
	ctx := context.Background()
	suite.registeredIn("29")

	tax, err := suite.service.ComputeLine(ctx, suite.companyID, lineWithRate(1000, 18), suite.on, "27")

	suite.Require().NoError(err)
	suite.True(tax.CGST.IsZero())
	suite.True(tax.SGST.IsZero())
	suite.True(tax.IGST.Equal(decimal.NewFromInt(180)))
	suite.True(tax.Total.Equal(decimal.NewFromInt(1180)))
}

func (suite *GstServiceTestSuite) TestComputeLine_ComponentsRoundIndependently() {
	ctx := context.Background()
	suite.registeredIn("29")

	// 999 * 9% = 89.91 per component.
	tax, err := suite.service.ComputeLine(ctx, suite.companyID, lineWithRate(999, 18), suite.on, "29")

	suite.Require().NoError(err)
	suite.True(tax.CGST.Equal(decimal.NewFromFloat(89.91)), "CGST was %s", tax.CGST)
	suite.True(tax.SGST.Equal(decimal.NewFromFloat(89.91)))
	suite.True(tax.Total.Equal(decimal.NewFromFloat(1178.82)))
}

func (suite *GstServiceTestSuite) TestComputeLine_HSNLookupIntrastate() {
	ctx := context.Background()
	suite.registeredIn("29")
	line := domain.InventoryLine{
		LineID:   uuid.NewString(),
		ItemName: "Laptop",
		Amount:   decimal.NewFromInt(50000),
		HSNCode:  "8471",
	}

	suite.mockGstRepo.On("FindRateByHSN", ctx, suite.companyID, "8471", domain.SupplyGoods, suite.on).
		Return(&domain.GstTaxRate{
			HSNCode:  "8471",
			CGSTRate: decimal.NewFromInt(9),
			SGSTRate: decimal.NewFromInt(9),
			IGSTRate: decimal.NewFromInt(18),
		}, nil).Once()

	tax, err := suite.service.ComputeLine(ctx, suite.companyID, line, suite.on, "29")

	suite.Require().NoError(err)
	suite.True(tax.CGST.Equal(decimal.NewFromInt(4500)))
	suite.True(tax.SGST.Equal(decimal.NewFromInt(4500)))
	suite.True(tax.IGST.IsZero())
}

func (suite *GstServiceTestSuite) TestComputeLine_HSNInterstateFallsBackToCombinedRate() {
	ctx := context.Background()
	suite.registeredIn("29")
	line := domain.InventoryLine{
		LineID:   uuid.NewString(),
		ItemName: "Laptop",
		Amount:   decimal.NewFromInt(1000),
		HSNCode:  "8471",
	}

	// IGST rate left unconfigured; CGST+SGST stands in.
	suite.mockGstRepo.On("FindRateByHSN", ctx, suite.companyID, "8471", domain.SupplyGoods, suite.on).
		Return(&domain.GstTaxRate{
			HSNCode:  "8471",
			CGSTRate: decimal.NewFromInt(9),
			SGSTRate: decimal.NewFromInt(9),
		}, nil).Once()

	tax, err := suite.service.ComputeLine(ctx, suite.companyID, line, suite.on, "27")

	suite.Require().NoError(err)
	suite.True(tax.IGST.Equal(decimal.NewFromInt(180)))
	suite.True(tax.CGST.IsZero())
	suite.True(tax.SGST.IsZero())
}

func (suite *GstServiceTestSuite) TestComputeLine_MissingRateIsConfigurationError() {
	ctx := context.Background()
	suite.registeredIn("29")
	line := domain.InventoryLine{
		LineID:   uuid.NewString(),
		ItemName: "Mystery Item",
		Amount:   decimal.NewFromInt(1000),
		HSNCode:  "9999",
	}

	suite.mockGstRepo.On("FindRateByHSN", ctx, suite.companyID, "9999", domain.SupplyGoods, suite.on).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ComputeLine(ctx, suite.companyID, line, suite.on, "29")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
}

func (suite *GstServiceTestSuite) TestComputeLine_UntaxedLineWithoutRateOrHSN() {
	ctx := context.Background()
	suite.registeredIn("29")
	line := domain.InventoryLine{
		LineID:   uuid.NewString(),
		ItemName: "Exempt Item",
		Amount:   decimal.NewFromInt(700),
	}

	tax, err := suite.service.ComputeLine(ctx, suite.companyID, line, suite.on, "29")

	suite.Require().NoError(err)
	suite.False(tax.HasTax())
	suite.True(tax.Total.Equal(decimal.NewFromInt(700)))
}

func (suite *GstServiceTestSuite) TestComputeLine_FallsBackToCompanyState() {
	ctx := context.Background()
	suite.mockGstRepo.On("FindRegistration", ctx, suite.companyID).
		Return(nil, apperrors.ErrNotFound)
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, StateCode: "29"}, nil)

	tax, err := suite.service.ComputeLine(ctx, suite.companyID, lineWithRate(1000, 18), suite.on, "27")

	suite.Require().NoError(err)
	suite.True(tax.IGST.Equal(decimal.NewFromInt(180)))
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *GstServiceTestSuite) TestComputeDocument_SumsLineTotals() {
	ctx := context.Background()
	suite.registeredIn("29")

	lines := []domain.InventoryLine{lineWithRate(1000, 18), lineWithRate(500, 12)}
	perLine, totals, err := suite.service.ComputeDocument(ctx, suite.companyID, lines, suite.on, "29")

	suite.Require().NoError(err)
	suite.Require().Len(perLine, 2)
	suite.True(totals.CGST.Equal(decimal.NewFromInt(120)))
	suite.True(totals.SGST.Equal(decimal.NewFromInt(120)))
	suite.True(totals.Taxable.Equal(decimal.NewFromInt(1500)))
	suite.True(totals.Total.Equal(decimal.NewFromInt(1740)))
}

func (suite *GstServiceTestSuite) TestResolvePostingLedger_Mapped() {
	ctx := context.Background()
	suite.mockGstRepo.On("FindLedgerMappings", ctx, suite.companyID).
		Return(map[domain.GstMappingType]string{
			domain.MappingOutputCGST: "Output CGST",
		}, nil).Once()

	name, err := suite.service.ResolvePostingLedger(ctx, suite.companyID, domain.MappingOutputCGST)

	suite.Require().NoError(err)
	suite.Equal("Output CGST", name)
}

func (suite *GstServiceTestSuite) TestResolvePostingLedger_MissingMapping() {
	ctx := context.Background()
	suite.mockGstRepo.On("FindLedgerMappings", ctx, suite.companyID).
		Return(map[domain.GstMappingType]string{}, nil).Once()

	_, err := suite.service.ResolvePostingLedger(ctx, suite.companyID, domain.MappingOutputIGST)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
}

func (suite *GstServiceTestSuite) TestCreateTaxRate_RejectsNegativeRate() {
	ctx := context.Background()
	req := dto.CreateTaxRateRequest{
		HSNCode:       "8471",
		SupplyType:    domain.SupplyGoods,
		CGSTRate:      decimal.NewFromInt(-9),
		EffectiveFrom: suite.on,
	}

	_, err := suite.service.CreateTaxRate(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *GstServiceTestSuite) TestCreateTaxRate_RejectsInvertedWindow() {
	ctx := context.Background()
	to := suite.on.AddDate(0, -1, 0)
	req := dto.CreateTaxRateRequest{
		HSNCode:       "8471",
		SupplyType:    domain.SupplyGoods,
		CGSTRate:      decimal.NewFromInt(9),
		EffectiveFrom: suite.on,
		EffectiveTo:   &to,
	}

	_, err := suite.service.CreateTaxRate(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *GstServiceTestSuite) TestSaveLedgerMapping_UnknownLedger() {
	ctx := context.Background()
	req := dto.CreateGstLedgerMappingRequest{
		MappingType: domain.MappingOutputCGST,
		LedgerName:  "Ghost Ledger",
	}

	suite.mockLedgerRepo.On("FindLedgerByName", ctx, suite.companyID, "Ghost Ledger").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SaveLedgerMapping(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGstRepo.AssertNotCalled(suite.T(), "SaveLedgerMapping", mock.Anything, mock.Anything)
}

func TestGstServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GstServiceTestSuite))
}
