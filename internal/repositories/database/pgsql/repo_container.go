package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		CompanyRepo:    newPgxCompanyRepository(dbPool),
		LedgerRepo:     newPgxLedgerRepository(dbPool),
		VoucherRepo:    newPgxVoucherRepository(dbPool),
		InventoryRepo:  newPgxInventoryRepository(dbPool),
		BillRepo:       newPgxBillRepository(dbPool),
		GstRepo:        newPgxGstRepository(dbPool),
		CostCentreRepo: newPgxCostCentreRepository(dbPool),
		ReportingRepo:  newPgxReportingRepository(dbPool),
	}
}
