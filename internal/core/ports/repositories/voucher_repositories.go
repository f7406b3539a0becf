package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// StockCheck is a stock requirement re-verified inside the posting
// transaction, under a per-(item, warehouse) advisory lock. Two concurrent
// postings against the same pair serialize on the lock, which closes the
// validate-then-append race.
type StockCheck struct {
	ItemName      string
	WarehouseName string
	Required      decimal.Decimal
}

// PostVoucherParams carries everything the posting transaction commits
// atomically: final entries on the voucher, stock requirements to
// re-verify, and an optional bill opened alongside the voucher.
type PostVoucherParams struct {
	Voucher     domain.Voucher
	StockChecks []StockCheck
	Bill        *domain.Bill
}

// VoucherRepositoryFacade provides access to voucher types, drafts and the
// atomic posting/reversal operations.
type VoucherRepositoryFacade interface {
	SaveVoucherType(ctx context.Context, vt domain.VoucherType) error
	FindVoucherTypeByID(ctx context.Context, companyID string, typeID string) (*domain.VoucherType, error)
	ListVoucherTypes(ctx context.Context, companyID string) ([]domain.VoucherType, error)

	// SaveDraftVoucher persists a draft header together with any manually
	// supplied entries and inventory lines.
	SaveDraftVoucher(ctx context.Context, voucher domain.Voucher) error
	// FindVoucherByID loads a voucher with its entries and inventory lines.
	FindVoucherByID(ctx context.Context, companyID string, voucherID string) (*domain.Voucher, error)
	FindVoucherByNumber(ctx context.Context, companyID string, typeID string, number string) (*domain.Voucher, error)
	FindEntryByID(ctx context.Context, companyID string, voucherID string, entryID string) (*domain.VoucherEntry, error)
	ListVouchers(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Voucher, *string, error)

	// PostVoucher commits entries, stock re-checks, optional bill creation
	// and the DRAFT -> POSTED flip as one transaction.
	PostVoucher(ctx context.Context, params PostVoucherParams) error
	// CancelDraftVoucher flips a draft straight to CANCELLED.
	CancelDraftVoucher(ctx context.Context, companyID string, voucherID string, userID string, at time.Time) error
	// ReverseVoucher saves the reversing voucher, marks the original
	// CANCELLED with the reversal link and cancels any bills the original
	// opened, atomically. A bill with settlements aborts the reversal with
	// ErrConflict.
	ReverseVoucher(ctx context.Context, original domain.Voucher, reversing domain.Voucher) error
}

// InventoryRepositoryFacade derives stock positions from posted vouchers'
// inventory lines. Balances are never stored.
type InventoryRepositoryFacade interface {
	StockBalance(ctx context.Context, companyID string, itemName string, warehouseName string) (decimal.Decimal, error)
	StockSummary(ctx context.Context, companyID string) ([]domain.StockBalanceRow, error)
}
