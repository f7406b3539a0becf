package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/dto"
)

// VoucherTypeSvc defines operations on voucher types.
type VoucherTypeSvc interface {
	CreateVoucherType(ctx context.Context, companyID string, req dto.CreateVoucherTypeRequest, creatorUserID string) (*domain.VoucherType, error)
	ListVoucherTypes(ctx context.Context, companyID string, requestingUserID string) ([]domain.VoucherType, error)
}

// VoucherReaderSvc defines read operations for voucher data.
type VoucherReaderSvc interface {
	GetVoucherByID(ctx context.Context, companyID string, voucherID string, requestingUserID string) (*domain.Voucher, error)
	ListVouchers(ctx context.Context, companyID string, requestingUserID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherWriterSvc defines the draft/post/cancel lifecycle.
type VoucherWriterSvc interface {
	// CreateDraftVoucher validates and persists a DRAFT voucher. Drafts
	// have no ledger, stock or bill effect.
	CreateDraftVoucher(ctx context.Context, companyID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error)

	// PostVoucher validates the draft against its category's posting rule,
	// synthesizes missing entries, appends tax entries, re-checks stock and
	// commits the whole thing atomically.
	PostVoucher(ctx context.Context, companyID string, voucherID string, requestingUserID string) (*dto.PostVoucherResult, error)

	// CancelVoucher cancels a draft directly, or generates and posts a
	// reversing voucher for a posted original.
	CancelVoucher(ctx context.Context, companyID string, voucherID string, requestingUserID string) (*dto.CancelVoucherResult, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces.
type VoucherSvcFacade interface {
	VoucherTypeSvc
	VoucherReaderSvc
	VoucherWriterSvc
}

// InventorySvcFacade serves derived stock positions.
type InventorySvcFacade interface {
	// GetStockBalance returns the derived quantity for one item/warehouse
	// pair, clamped at zero.
	GetStockBalance(ctx context.Context, companyID string, itemName string, warehouseName string, requestingUserID string) (decimal.Decimal, error)

	// GetStockSummary lists derived balances for every pair with movement.
	GetStockSummary(ctx context.Context, companyID string, requestingUserID string) ([]domain.StockBalanceRow, error)
}
