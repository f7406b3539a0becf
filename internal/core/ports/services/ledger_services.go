package services

import (
	"context"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/dto"
)

// LedgerGroupSvc defines operations on chart-of-accounts groups.
type LedgerGroupSvc interface {
	CreateLedgerGroup(ctx context.Context, companyID string, req dto.CreateLedgerGroupRequest, creatorUserID string) (*domain.LedgerGroup, error)
	UpdateLedgerGroup(ctx context.Context, companyID string, groupID string, req dto.UpdateLedgerGroupRequest, requestingUserID string) (*domain.LedgerGroup, error)

	// DeleteLedgerGroup removes an empty group. Groups with child groups or
	// ledgers cannot be deleted.
	DeleteLedgerGroup(ctx context.Context, companyID string, groupID string, requestingUserID string) error

	GetLedgerGroupByID(ctx context.Context, companyID string, groupID string, requestingUserID string) (*domain.LedgerGroup, error)
	ListLedgerGroups(ctx context.Context, companyID string, requestingUserID string) ([]domain.LedgerGroup, error)
}

// LedgerReaderSvc defines read operations on ledgers.
type LedgerReaderSvc interface {
	GetLedgerByID(ctx context.Context, companyID string, ledgerID string, requestingUserID string) (*domain.Ledger, error)
	GetLedgerByName(ctx context.Context, companyID string, name string, requestingUserID string) (*domain.Ledger, error)
	ListLedgers(ctx context.Context, companyID string, requestingUserID string) ([]domain.Ledger, error)
}

// LedgerWriterSvc defines write operations on ledgers.
type LedgerWriterSvc interface {
	CreateLedger(ctx context.Context, companyID string, req dto.CreateLedgerRequest, creatorUserID string) (*domain.Ledger, error)
	UpdateLedger(ctx context.Context, companyID string, ledgerID string, req dto.UpdateLedgerRequest, requestingUserID string) (*domain.Ledger, error)

	// DeleteLedger removes a ledger that has no voucher entries.
	DeleteLedger(ctx context.Context, companyID string, ledgerID string, requestingUserID string) error
}

// LedgerSvcFacade combines all chart-of-accounts service interfaces.
type LedgerSvcFacade interface {
	LedgerGroupSvc
	LedgerReaderSvc
	LedgerWriterSvc
}
