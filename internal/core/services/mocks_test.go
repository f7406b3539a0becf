package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
)

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveLedgerGroup(ctx context.Context, group domain.LedgerGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateLedgerGroup(ctx context.Context, group domain.LedgerGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteLedgerGroup(ctx context.Context, companyID string, groupID string) error {
	args := m.Called(ctx, companyID, groupID)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindLedgerGroupByID(ctx context.Context, companyID string, groupID string) (*domain.LedgerGroup, error) {
	args := m.Called(ctx, companyID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerGroup), args.Error(1)
}

func (m *MockLedgerRepository) FindLedgerGroupByName(ctx context.Context, companyID string, name string) (*domain.LedgerGroup, error) {
	args := m.Called(ctx, companyID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerGroup), args.Error(1)
}

func (m *MockLedgerRepository) ListLedgerGroups(ctx context.Context, companyID string) ([]domain.LedgerGroup, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerGroup), args.Error(1)
}

func (m *MockLedgerRepository) CountChildGroups(ctx context.Context, companyID string, groupID string) (int, error) {
	args := m.Called(ctx, companyID, groupID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) CountGroupLedgers(ctx context.Context, companyID string, groupID string) (int, error) {
	args := m.Called(ctx, companyID, groupID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateLedger(ctx context.Context, ledger domain.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteLedger(ctx context.Context, companyID string, ledgerID string) error {
	args := m.Called(ctx, companyID, ledgerID)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindLedgerByID(ctx context.Context, companyID string, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, companyID, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindLedgerByName(ctx context.Context, companyID string, name string) (*domain.Ledger, error) {
	args := m.Called(ctx, companyID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindLedgersByNames(ctx context.Context, companyID string, names []string) (map[string]domain.Ledger, error) {
	args := m.Called(ctx, companyID, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) ListLedgers(ctx context.Context, companyID string) ([]domain.Ledger, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindFirstLedgerByCategories(ctx context.Context, companyID string, categories []domain.GroupCategory) (*domain.Ledger, error) {
	args := m.Called(ctx, companyID, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) CountEntriesForLedger(ctx context.Context, companyID string, ledgerName string) (int, error) {
	args := m.Called(ctx, companyID, ledgerName)
	return args.Int(0), args.Error(1)
}

// MockVoucherRepository is a mock type for the VoucherRepositoryFacade interface
type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) SaveVoucherType(ctx context.Context, vt domain.VoucherType) error {
	args := m.Called(ctx, vt)
	return args.Error(0)
}

func (m *MockVoucherRepository) FindVoucherTypeByID(ctx context.Context, companyID string, typeID string) (*domain.VoucherType, error) {
	args := m.Called(ctx, companyID, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherType), args.Error(1)
}

func (m *MockVoucherRepository) ListVoucherTypes(ctx context.Context, companyID string) ([]domain.VoucherType, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherType), args.Error(1)
}

func (m *MockVoucherRepository) SaveDraftVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, companyID string, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, companyID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindVoucherByNumber(ctx context.Context, companyID string, typeID string, number string) (*domain.Voucher, error) {
	args := m.Called(ctx, companyID, typeID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindEntryByID(ctx context.Context, companyID string, voucherID string, entryID string) (*domain.VoucherEntry, error) {
	args := m.Called(ctx, companyID, voucherID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherEntry), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	var vouchers []domain.Voucher
	if args.Get(0) != nil {
		vouchers = args.Get(0).([]domain.Voucher)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return vouchers, token, args.Error(2)
}

func (m *MockVoucherRepository) PostVoucher(ctx context.Context, params portsrepo.PostVoucherParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockVoucherRepository) CancelDraftVoucher(ctx context.Context, companyID string, voucherID string, userID string, at time.Time) error {
	args := m.Called(ctx, companyID, voucherID, userID, at)
	return args.Error(0)
}

func (m *MockVoucherRepository) ReverseVoucher(ctx context.Context, original domain.Voucher, reversing domain.Voucher) error {
	args := m.Called(ctx, original, reversing)
	return args.Error(0)
}

// MockInventoryRepository is a mock type for the InventoryRepositoryFacade interface
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) StockBalance(ctx context.Context, companyID string, itemName string, warehouseName string) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, itemName, warehouseName)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryRepository) StockSummary(ctx context.Context, companyID string) ([]domain.StockBalanceRow, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockBalanceRow), args.Error(1)
}

// MockBillRepository is a mock type for the BillRepositoryFacade interface
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) FindBillByID(ctx context.Context, companyID string, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, companyID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepository) FindBillByNumber(ctx context.Context, companyID string, number string) (*domain.Bill, error) {
	args := m.Called(ctx, companyID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListBillsByStatus(ctx context.Context, companyID string, statuses []domain.BillStatus) ([]domain.Bill, error) {
	args := m.Called(ctx, companyID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListBillsByVoucher(ctx context.Context, companyID string, voucherID string) ([]domain.Bill, error) {
	args := m.Called(ctx, companyID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepository) SettleBill(ctx context.Context, settlement domain.BillSettlement) (*domain.Bill, error) {
	args := m.Called(ctx, settlement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListSettlementsByBill(ctx context.Context, companyID string, billID string) ([]domain.BillSettlement, error) {
	args := m.Called(ctx, companyID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillSettlement), args.Error(1)
}

// MockGstRepository is a mock type for the GstRepositoryFacade interface
type MockGstRepository struct {
	mock.Mock
}

func (m *MockGstRepository) SaveRegistration(ctx context.Context, reg domain.GstRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockGstRepository) FindRegistration(ctx context.Context, companyID string) (*domain.GstRegistration, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GstRegistration), args.Error(1)
}

func (m *MockGstRepository) SaveTaxRate(ctx context.Context, rate domain.GstTaxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockGstRepository) ListTaxRates(ctx context.Context, companyID string) ([]domain.GstTaxRate, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GstTaxRate), args.Error(1)
}

func (m *MockGstRepository) FindRateByHSN(ctx context.Context, companyID string, hsnCode string, supplyType domain.SupplyType, on time.Time) (*domain.GstTaxRate, error) {
	args := m.Called(ctx, companyID, hsnCode, supplyType, on)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GstTaxRate), args.Error(1)
}

func (m *MockGstRepository) SaveLedgerMapping(ctx context.Context, mapping domain.GstLedgerMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockGstRepository) FindLedgerMappings(ctx context.Context, companyID string) (map[domain.GstMappingType]string, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.GstMappingType]string), args.Error(1)
}

// MockCompanyRepository is a mock type for the CompanyRepositoryFacade interface
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompanyRole, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCompanyRole), args.Error(1)
}

func (m *MockCompanyRepository) AddUserToCompany(ctx context.Context, link domain.UserCompany) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) LedgerBalances(ctx context.Context, companyID string, from *time.Time, to time.Time) ([]domain.LedgerBalance, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerBalance), args.Error(1)
}

func (m *MockReportingRepository) EntriesForLedger(ctx context.Context, companyID string, ledgerName string, from time.Time, to time.Time) ([]domain.BookRow, error) {
	args := m.Called(ctx, companyID, ledgerName, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookRow), args.Error(1)
}

func (m *MockReportingRepository) VouchersOnDate(ctx context.Context, companyID string, date time.Time) ([]domain.DayBookRow, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayBookRow), args.Error(1)
}

func (m *MockReportingRepository) VouchersByCategory(ctx context.Context, companyID string, category domain.VoucherCategory, from time.Time, to time.Time) ([]domain.DayBookRow, error) {
	args := m.Called(ctx, companyID, category, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayBookRow), args.Error(1)
}

func (m *MockReportingRepository) CashFlowEntries(ctx context.Context, companyID string, from time.Time, to time.Time) ([]portsrepo.CashFlowEntry, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.CashFlowEntry), args.Error(1)
}

func (m *MockReportingRepository) CostCentreSummary(ctx context.Context, companyID string, from time.Time, to time.Time) ([]domain.CostCentreSummaryRow, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCentreSummaryRow), args.Error(1)
}

func (m *MockReportingRepository) ActualForLedger(ctx context.Context, companyID string, ledgerName string, from time.Time, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, ledgerName, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) ActualForCostCentre(ctx context.Context, companyID string, costCentreName string, from time.Time, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, costCentreName, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockCostCentreRepository is a mock type for the CostCentreRepositoryFacade interface
type MockCostCentreRepository struct {
	mock.Mock
}

func (m *MockCostCentreRepository) SaveCostCategory(ctx context.Context, category domain.CostCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCostCentreRepository) ListCostCategories(ctx context.Context, companyID string) ([]domain.CostCategory, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCategory), args.Error(1)
}

func (m *MockCostCentreRepository) FindCostCategoryByID(ctx context.Context, companyID string, categoryID string) (*domain.CostCategory, error) {
	args := m.Called(ctx, companyID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCategory), args.Error(1)
}

func (m *MockCostCentreRepository) SaveCostCentre(ctx context.Context, centre domain.CostCentre) error {
	args := m.Called(ctx, centre)
	return args.Error(0)
}

func (m *MockCostCentreRepository) FindCostCentreByName(ctx context.Context, companyID string, name string) (*domain.CostCentre, error) {
	args := m.Called(ctx, companyID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCentre), args.Error(1)
}

func (m *MockCostCentreRepository) ListCostCentres(ctx context.Context, companyID string) ([]domain.CostCentre, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCentre), args.Error(1)
}

func (m *MockCostCentreRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockCostCentreRepository) ListBudgets(ctx context.Context, companyID string) ([]domain.Budget, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockCostCentreRepository) FindBudgetByID(ctx context.Context, companyID string, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, companyID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

// MockGstCalculator is a mock type for the GstCalculatorSvc interface
type MockGstCalculator struct {
	mock.Mock
}

func (m *MockGstCalculator) ComputeLine(ctx context.Context, companyID string, line domain.InventoryLine, on time.Time, placeOfSupply string) (domain.TaxLine, error) {
	args := m.Called(ctx, companyID, line, on, placeOfSupply)
	return args.Get(0).(domain.TaxLine), args.Error(1)
}

func (m *MockGstCalculator) ComputeDocument(ctx context.Context, companyID string, lines []domain.InventoryLine, on time.Time, placeOfSupply string) ([]domain.TaxLine, domain.TaxLine, error) {
	args := m.Called(ctx, companyID, lines, on, placeOfSupply)
	var perLine []domain.TaxLine
	if args.Get(0) != nil {
		perLine = args.Get(0).([]domain.TaxLine)
	}
	return perLine, args.Get(1).(domain.TaxLine), args.Error(2)
}

func (m *MockGstCalculator) ResolvePostingLedger(ctx context.Context, companyID string, mappingType domain.GstMappingType) (string, error) {
	args := m.Called(ctx, companyID, mappingType)
	return args.String(0), args.Error(1)
}
