package repositories

// RepositoryProvider bundles every repository facade for wiring services.
type RepositoryProvider struct {
	CompanyRepo    CompanyRepositoryFacade
	LedgerRepo     LedgerRepositoryFacade
	VoucherRepo    VoucherRepositoryFacade
	InventoryRepo  InventoryRepositoryFacade
	BillRepo       BillRepositoryFacade
	GstRepo        GstRepositoryFacade
	CostCentreRepo CostCentreRepositoryFacade
	ReportingRepo  ReportingRepository
}
