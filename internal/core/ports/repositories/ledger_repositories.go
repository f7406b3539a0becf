package repositories

import (
	"context"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// LedgerRepositoryFacade provides access to the chart of accounts.
// All lookups are company-scoped; a ledger belonging to another company is
// reported as not found.
type LedgerRepositoryFacade interface {
	SaveLedgerGroup(ctx context.Context, group domain.LedgerGroup) error
	UpdateLedgerGroup(ctx context.Context, group domain.LedgerGroup) error
	DeleteLedgerGroup(ctx context.Context, companyID string, groupID string) error
	FindLedgerGroupByID(ctx context.Context, companyID string, groupID string) (*domain.LedgerGroup, error)
	FindLedgerGroupByName(ctx context.Context, companyID string, name string) (*domain.LedgerGroup, error)
	ListLedgerGroups(ctx context.Context, companyID string) ([]domain.LedgerGroup, error)
	CountChildGroups(ctx context.Context, companyID string, groupID string) (int, error)
	CountGroupLedgers(ctx context.Context, companyID string, groupID string) (int, error)

	SaveLedger(ctx context.Context, ledger domain.Ledger) error
	UpdateLedger(ctx context.Context, ledger domain.Ledger) error
	DeleteLedger(ctx context.Context, companyID string, ledgerID string) error
	FindLedgerByID(ctx context.Context, companyID string, ledgerID string) (*domain.Ledger, error)
	FindLedgerByName(ctx context.Context, companyID string, name string) (*domain.Ledger, error)
	FindLedgersByNames(ctx context.Context, companyID string, names []string) (map[string]domain.Ledger, error)
	ListLedgers(ctx context.Context, companyID string) ([]domain.Ledger, error)
	// FindFirstLedgerByCategories returns the first ledger (by name) whose
	// group category is one of the given categories, used to resolve default
	// cash/bank and sales/purchase counter-ledgers during posting.
	FindFirstLedgerByCategories(ctx context.Context, companyID string, categories []domain.GroupCategory) (*domain.Ledger, error)
	CountEntriesForLedger(ctx context.Context, companyID string, ledgerName string) (int, error)
}
