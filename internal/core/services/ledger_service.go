package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/startupbooks/startup_books_app/internal/apperrors"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
	"github.com/startupbooks/startup_books_app/internal/middleware"
)

// ledgerService manages the chart of accounts: groups and ledgers.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(lr portsrepo.LedgerRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		ledgerRepo:  lr,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateLedgerGroup creates a new group on the chart of accounts.
func (s *ledgerService) CreateLedgerGroup(ctx context.Context, companyID string, req dto.CreateLedgerGroupRequest, creatorUserID string) (*domain.LedgerGroup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if req.ParentGroupID != nil {
		parent, err := s.ledgerRepo.FindLedgerGroupByID(ctx, companyID, *req.ParentGroupID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent group %s not found", apperrors.ErrValidation, *req.ParentGroupID)
			}
			return nil, fmt.Errorf("failed to validate parent group: %w", err)
		}
		// A child group inherits placement from its parent, so the
		// categories must agree.
		if parent.Category != req.Category {
			return nil, fmt.Errorf("%w: group category %s does not match parent category %s", apperrors.ErrValidation, req.Category, parent.Category)
		}
	}

	now := time.Now()
	group := domain.LedgerGroup{
		GroupID:       uuid.NewString(),
		CompanyID:     companyID,
		Name:          req.Name,
		Category:      req.Category,
		ParentGroupID: req.ParentGroupID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveLedgerGroup(ctx, group); err != nil {
		logger.Error("Failed to save ledger group", slog.String("error", err.Error()), slog.String("group_name", req.Name))
		return nil, fmt.Errorf("failed to create ledger group: %w", err)
	}

	logger.Info("Ledger group created", slog.String("group_id", group.GroupID), slog.String("company_id", companyID))
	return &group, nil
}

// UpdateLedgerGroup renames or re-parents a group. The category never changes.
func (s *ledgerService) UpdateLedgerGroup(ctx context.Context, companyID string, groupID string, req dto.UpdateLedgerGroupRequest, requestingUserID string) (*domain.LedgerGroup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	group, err := s.ledgerRepo.FindLedgerGroupByID(ctx, companyID, groupID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		group.Name = *req.Name
		updated = true
	}
	if req.ParentGroupID != nil {
		if err := s.checkGroupCycle(ctx, companyID, groupID, *req.ParentGroupID); err != nil {
			return nil, err
		}
		parent, err := s.ledgerRepo.FindLedgerGroupByID(ctx, companyID, *req.ParentGroupID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent group %s not found", apperrors.ErrValidation, *req.ParentGroupID)
			}
			return nil, err
		}
		if parent.Category != group.Category {
			return nil, fmt.Errorf("%w: cannot move group under a parent of category %s", apperrors.ErrValidation, parent.Category)
		}
		group.ParentGroupID = req.ParentGroupID
		updated = true
	}

	if !updated {
		return group, nil
	}

	group.LastUpdatedAt = time.Now()
	group.LastUpdatedBy = requestingUserID

	if err := s.ledgerRepo.UpdateLedgerGroup(ctx, *group); err != nil {
		logger.Error("Failed to update ledger group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to update ledger group: %w", err)
	}
	return group, nil
}

// checkGroupCycle walks the parent chain from newParentID and fails if it
// passes through groupID. A group can never be its own ancestor.
func (s *ledgerService) checkGroupCycle(ctx context.Context, companyID string, groupID string, newParentID string) error {
	current := newParentID
	for current != "" {
		if current == groupID {
			return fmt.Errorf("%w: group cannot be its own ancestor", apperrors.ErrValidation)
		}
		parent, err := s.ledgerRepo.FindLedgerGroupByID(ctx, companyID, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return err
		}
		if parent.ParentGroupID == nil {
			return nil
		}
		current = *parent.ParentGroupID
	}
	return nil
}

// DeleteLedgerGroup deletes a group that has no child groups and no ledgers.
func (s *ledgerService) DeleteLedgerGroup(ctx context.Context, companyID string, groupID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.ledgerRepo.FindLedgerGroupByID(ctx, companyID, groupID); err != nil {
		return err
	}

	children, err := s.ledgerRepo.CountChildGroups(ctx, companyID, groupID)
	if err != nil {
		return fmt.Errorf("failed to count child groups: %w", err)
	}
	if children > 0 {
		return fmt.Errorf("%w: group has %d child groups", apperrors.ErrConflict, children)
	}

	ledgers, err := s.ledgerRepo.CountGroupLedgers(ctx, companyID, groupID)
	if err != nil {
		return fmt.Errorf("failed to count group ledgers: %w", err)
	}
	if ledgers > 0 {
		return fmt.Errorf("%w: group has %d ledgers", apperrors.ErrConflict, ledgers)
	}

	if err := s.ledgerRepo.DeleteLedgerGroup(ctx, companyID, groupID); err != nil {
		logger.Error("Failed to delete ledger group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return fmt.Errorf("failed to delete ledger group: %w", err)
	}

	logger.Info("Ledger group deleted", slog.String("group_id", groupID))
	return nil
}

// GetLedgerGroupByID retrieves a single group.
func (s *ledgerService) GetLedgerGroupByID(ctx context.Context, companyID string, groupID string, requestingUserID string) (*domain.LedgerGroup, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindLedgerGroupByID(ctx, companyID, groupID)
}

// ListLedgerGroups lists every group of the company.
func (s *ledgerService) ListLedgerGroups(ctx context.Context, companyID string, requestingUserID string) ([]domain.LedgerGroup, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	groups, err := s.ledgerRepo.ListLedgerGroups(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger groups: %w", err)
	}
	if groups == nil {
		groups = []domain.LedgerGroup{}
	}
	return groups, nil
}

// CreateLedger creates a ledger under an existing group. The group's
// category is denormalised onto the ledger for statement placement.
func (s *ledgerService) CreateLedger(ctx context.Context, companyID string, req dto.CreateLedgerRequest, creatorUserID string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	group, err := s.ledgerRepo.FindLedgerGroupByID(ctx, companyID, req.GroupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: group %s not found", apperrors.ErrValidation, req.GroupID)
		}
		return nil, fmt.Errorf("failed to validate group: %w", err)
	}

	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}
	if req.BillByBill && group.Category != domain.CategorySundryDebtor && group.Category != domain.CategorySundryCreditor {
		return nil, fmt.Errorf("%w: bill-by-bill tracking requires a sundry debtor or creditor group", apperrors.ErrValidation)
	}
	if req.InventoryAffectsStock && group.Category != domain.CategoryStock {
		return nil, fmt.Errorf("%w: inventory tracking requires a stock group", apperrors.ErrValidation)
	}

	openingSide := req.OpeningSide
	if openingSide == "" {
		// Default to the natural side for the category.
		if group.Category.IsAsset() || group.Category.IsExpense() {
			openingSide = domain.SideDebit
		} else {
			openingSide = domain.SideCredit
		}
	}

	now := time.Now()
	ledger := domain.Ledger{
		LedgerID:              uuid.NewString(),
		CompanyID:             companyID,
		GroupID:               req.GroupID,
		GroupCategory:         group.Category,
		Name:                  req.Name,
		OpeningBalance:        req.OpeningBalance,
		OpeningSide:           openingSide,
		CreditLimit:           req.CreditLimit,
		CreditPeriodDays:      req.CreditPeriodDays,
		BillByBill:            req.BillByBill,
		InventoryAffectsStock: req.InventoryAffectsStock,
		GSTIN:                 req.GSTIN,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ledger named %q already exists", apperrors.ErrDuplicate, req.Name)
		}
		logger.Error("Failed to save ledger", slog.String("error", err.Error()), slog.String("ledger_name", req.Name))
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}

	logger.Info("Ledger created", slog.String("ledger_id", ledger.LedgerID), slog.String("ledger_name", req.Name))
	return &ledger, nil
}

// UpdateLedger mutates a ledger. Moving it to another group re-derives the
// denormalised category.
func (s *ledgerService) UpdateLedger(ctx context.Context, companyID string, ledgerID string, req dto.UpdateLedgerRequest, requestingUserID string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, companyID, ledgerID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.GroupID != nil && *req.GroupID != ledger.GroupID {
		group, err := s.ledgerRepo.FindLedgerGroupByID(ctx, companyID, *req.GroupID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: group %s not found", apperrors.ErrValidation, *req.GroupID)
			}
			return nil, err
		}
		ledger.GroupID = group.GroupID
		ledger.GroupCategory = group.Category
		updated = true
	}
	if req.Name != nil {
		ledger.Name = *req.Name
		updated = true
	}
	if req.OpeningBalance != nil {
		if req.OpeningBalance.IsNegative() {
			return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
		}
		ledger.OpeningBalance = *req.OpeningBalance
		updated = true
	}
	if req.OpeningSide != nil {
		ledger.OpeningSide = *req.OpeningSide
		updated = true
	}
	if req.CreditLimit != nil {
		ledger.CreditLimit = req.CreditLimit
		updated = true
	}
	if req.CreditPeriodDays != nil {
		ledger.CreditPeriodDays = req.CreditPeriodDays
		updated = true
	}
	if req.BillByBill != nil {
		if *req.BillByBill && ledger.GroupCategory != domain.CategorySundryDebtor && ledger.GroupCategory != domain.CategorySundryCreditor {
			return nil, fmt.Errorf("%w: bill-by-bill tracking requires a sundry debtor or creditor group", apperrors.ErrValidation)
		}
		ledger.BillByBill = *req.BillByBill
		updated = true
	}
	if req.GSTIN != nil {
		ledger.GSTIN = *req.GSTIN
		updated = true
	}

	if !updated {
		return ledger, nil
	}

	ledger.LastUpdatedAt = time.Now()
	ledger.LastUpdatedBy = requestingUserID

	if err := s.ledgerRepo.UpdateLedger(ctx, *ledger); err != nil {
		logger.Error("Failed to update ledger", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("failed to update ledger: %w", err)
	}
	return ledger, nil
}

// DeleteLedger deletes a ledger that has never been posted to.
func (s *ledgerService) DeleteLedger(ctx context.Context, companyID string, ledgerID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, companyID, ledgerID)
	if err != nil {
		return err
	}

	entries, err := s.ledgerRepo.CountEntriesForLedger(ctx, companyID, ledger.Name)
	if err != nil {
		return fmt.Errorf("failed to count ledger entries: %w", err)
	}
	if entries > 0 {
		return fmt.Errorf("%w: ledger has %d voucher entries", apperrors.ErrConflict, entries)
	}

	if err := s.ledgerRepo.DeleteLedger(ctx, companyID, ledgerID); err != nil {
		logger.Error("Failed to delete ledger", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return fmt.Errorf("failed to delete ledger: %w", err)
	}

	logger.Info("Ledger deleted", slog.String("ledger_id", ledgerID))
	return nil
}

// GetLedgerByID retrieves a single ledger.
func (s *ledgerService) GetLedgerByID(ctx context.Context, companyID string, ledgerID string, requestingUserID string) (*domain.Ledger, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindLedgerByID(ctx, companyID, ledgerID)
}

// GetLedgerByName retrieves a single ledger by its per-company unique name.
func (s *ledgerService) GetLedgerByName(ctx context.Context, companyID string, name string, requestingUserID string) (*domain.Ledger, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindLedgerByName(ctx, companyID, name)
}

// ListLedgers lists every ledger of the company.
func (s *ledgerService) ListLedgers(ctx context.Context, companyID string, requestingUserID string) ([]domain.Ledger, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	ledgers, err := s.ledgerRepo.ListLedgers(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	if ledgers == nil {
		ledgers = []domain.Ledger{}
	}
	return ledgers, nil
}
