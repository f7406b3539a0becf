package services

import (
	"context"
	"time"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/dto"
)

// BillReaderSvc defines read operations for bill data.
type BillReaderSvc interface {
	GetBillByID(ctx context.Context, companyID string, billID string, requestingUserID string) (*domain.Bill, error)
	ListOpenBills(ctx context.Context, companyID string, billType domain.BillType, requestingUserID string) ([]domain.Bill, error)
	ListSettlements(ctx context.Context, companyID string, billID string, requestingUserID string) ([]domain.BillSettlement, error)
}

// BillWriterSvc defines write operations for bill data.
type BillWriterSvc interface {
	// CreateBill opens a bill, typically alongside a posted invoice.
	CreateBill(ctx context.Context, companyID string, req dto.CreateBillRequest, creatorUserID string) (*domain.Bill, error)

	// SettleBill applies a settlement against an open or partial bill.
	// Over-settlement is rejected with ErrValidation.
	SettleBill(ctx context.Context, companyID string, billID string, req dto.SettleBillRequest, requestingUserID string) (*domain.Bill, error)

	// CancelBill cancels a bill that has no settlements.
	CancelBill(ctx context.Context, companyID string, billID string, requestingUserID string) error
}

// BillReportSvc produces aging and outstanding reports over open bills.
type BillReportSvc interface {
	AgingReport(ctx context.Context, companyID string, billType domain.BillType, asOf time.Time, requestingUserID string) (*dto.AgingReportResponse, error)
	OutstandingReport(ctx context.Context, companyID string, billType domain.BillType, asOf time.Time, requestingUserID string) (*dto.OutstandingReportResponse, error)
}

// BillSvcFacade combines all bill-related service interfaces.
type BillSvcFacade interface {
	BillReaderSvc
	BillWriterSvc
	BillReportSvc
}
