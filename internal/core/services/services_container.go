package services

import (
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Initialize company service first since every other service authorizes through it
	container.Company = NewCompanyService(repos.CompanyRepo)
	authorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	container.Ledger = NewLedgerService(repos.LedgerRepo, authorizer)
	container.Gst = NewGstService(repos.GstRepo, repos.LedgerRepo, repos.CompanyRepo, authorizer)

	// The voucher posting engine consumes the GST calculator for tax entries
	gstCalculator := container.Gst.(portssvc.GstCalculatorSvc)
	container.Voucher = NewVoucherService(
		repos.VoucherRepo,
		repos.LedgerRepo,
		repos.InventoryRepo,
		repos.BillRepo,
		gstCalculator,
		authorizer,
	)

	container.Inventory = NewInventoryService(repos.InventoryRepo, authorizer)
	container.Bill = NewBillService(repos.BillRepo, repos.VoucherRepo, authorizer)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.LedgerRepo, authorizer)
	container.CostCentre = NewCostCentreService(repos.CostCentreRepo, repos.LedgerRepo, repos.ReportingRepo, authorizer)

	return container
}
