package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
)

// inventoryService serves stock positions derived from posted vouchers.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(ir portsrepo.InventoryRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.InventorySvcFacade {
	return &inventoryService{
		BaseService:   BaseService{CompanyAuthorizer: authorizer},
		inventoryRepo: ir,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// GetStockBalance returns the derived quantity for one item/warehouse pair.
// A negative derivation is reported as zero.
func (s *inventoryService) GetStockBalance(ctx context.Context, companyID string, itemName string, warehouseName string, requestingUserID string) (decimal.Decimal, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return decimal.Zero, err
	}

	balance, err := s.inventoryRepo.StockBalance(ctx, companyID, itemName, warehouseName)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to derive stock balance: %w", err)
	}
	if balance.IsNegative() {
		return decimal.Zero, nil
	}
	return balance, nil
}

// GetStockSummary lists derived balances for every pair with movement.
func (s *inventoryService) GetStockSummary(ctx context.Context, companyID string, requestingUserID string) ([]domain.StockBalanceRow, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	rows, err := s.inventoryRepo.StockSummary(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive stock summary: %w", err)
	}
	for i := range rows {
		if rows[i].Quantity.IsNegative() {
			rows[i].Quantity = decimal.Zero
		}
	}
	if rows == nil {
		rows = []domain.StockBalanceRow{}
	}
	return rows, nil
}
