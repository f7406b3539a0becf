package repositories

import (
	"context"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// BillRepositoryFacade provides access to bill and settlement data.
type BillRepositoryFacade interface {
	SaveBill(ctx context.Context, bill domain.Bill) error
	FindBillByID(ctx context.Context, companyID string, billID string) (*domain.Bill, error)
	FindBillByNumber(ctx context.Context, companyID string, number string) (*domain.Bill, error)
	ListBillsByStatus(ctx context.Context, companyID string, statuses []domain.BillStatus) ([]domain.Bill, error)
	ListBillsByVoucher(ctx context.Context, companyID string, voucherID string) ([]domain.Bill, error)
	// SettleBill applies the settlement amount to the bill and inserts the
	// settlement row in one transaction. The settled/outstanding/status
	// columns are recomputed in SQL against the current row, guarded on the
	// bill still being settleable for the amount; a bill that was settled or
	// cancelled concurrently returns ErrConflict. The updated bill is
	// returned.
	SettleBill(ctx context.Context, settlement domain.BillSettlement) (*domain.Bill, error)
	ListSettlementsByBill(ctx context.Context, companyID string, billID string) ([]domain.BillSettlement, error)
}
