package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/startupbooks/startup_books_app/internal/apperrors"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
	"github.com/startupbooks/startup_books_app/internal/middleware"
)

// billService tracks receivable/payable bills with partial settlement.
type billService struct {
	BaseService
	billRepo    portsrepo.BillRepositoryFacade
	voucherRepo portsrepo.VoucherRepositoryFacade
}

// NewBillService creates a new BillService.
func NewBillService(br portsrepo.BillRepositoryFacade, vr portsrepo.VoucherRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.BillSvcFacade {
	return &billService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		billRepo:    br,
		voucherRepo: vr,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

// CreateBill opens a new bill against a party ledger.
func (s *billService) CreateBill(ctx context.Context, companyID string, req dto.CreateBillRequest, creatorUserID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: bill amount must be positive", apperrors.ErrValidation)
	}

	if existing, err := s.billRepo.FindBillByNumber(ctx, companyID, req.Number); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: bill number %q already exists", apperrors.ErrDuplicate, req.Number)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check bill number: %w", err)
	}

	now := time.Now()
	bill := domain.Bill{
		BillID:            uuid.NewString(),
		CompanyID:         companyID,
		BillType:          req.BillType,
		Number:            req.Number,
		LedgerName:        req.LedgerName,
		BillDate:          req.BillDate,
		DueDate:           req.DueDate,
		OriginalAmount:    req.Amount,
		SettledAmount:     decimal.Zero,
		OutstandingAmount: req.Amount,
		Status:            domain.BillOpen,
		VoucherID:         req.VoucherID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		logger.Error("Failed to save bill", slog.String("error", err.Error()), slog.String("bill_number", req.Number))
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	logger.Info("Bill created", slog.String("bill_id", bill.BillID), slog.String("bill_type", string(req.BillType)))
	return &bill, nil
}

// GetBillByID retrieves a single bill.
func (s *billService) GetBillByID(ctx context.Context, companyID string, billID string, requestingUserID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.billRepo.FindBillByID(ctx, companyID, billID)
}

// ListOpenBills lists OPEN and PARTIAL bills of one type.
func (s *billService) ListOpenBills(ctx context.Context, companyID string, billType domain.BillType, requestingUserID string) ([]domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	bills, err := s.openBillsOfType(ctx, companyID, billType)
	if err != nil {
		return nil, err
	}
	if bills == nil {
		bills = []domain.Bill{}
	}
	return bills, nil
}

// ListSettlements lists the settlement history of one bill.
func (s *billService) ListSettlements(ctx context.Context, companyID string, billID string, requestingUserID string) ([]domain.BillSettlement, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.billRepo.FindBillByID(ctx, companyID, billID); err != nil {
		return nil, err
	}
	settlements, err := s.billRepo.ListSettlementsByBill(ctx, companyID, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	if settlements == nil {
		settlements = []domain.BillSettlement{}
	}
	return settlements, nil
}

// SettleBill applies one settlement against an open or partial bill. The
// bill mutation and the settlement row commit in one transaction.
func (s *billService) SettleBill(ctx context.Context, companyID string, billID string, req dto.SettleBillRequest, requestingUserID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	bill, err := s.billRepo.FindBillByID(ctx, companyID, billID)
	if err != nil {
		return nil, err
	}

	if bill.Status == domain.BillSettled || bill.Status == domain.BillCancelled {
		return nil, fmt.Errorf("%w: bill is %s and cannot be settled", apperrors.ErrConflict, bill.Status)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: settlement amount must be positive", apperrors.ErrValidation)
	}
	if req.Amount.GreaterThan(bill.OutstandingAmount) {
		return nil, fmt.Errorf("%w: settlement %s exceeds outstanding %s", apperrors.ErrValidation, req.Amount, bill.OutstandingAmount)
	}

	// The voucher entry must belong to this company; cross-tenant
	// references are reported as not found.
	if _, err := s.voucherRepo.FindEntryByID(ctx, companyID, req.VoucherID, req.EntryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: voucher entry %s not found", apperrors.ErrNotFound, req.EntryID)
		}
		return nil, fmt.Errorf("failed to resolve settlement entry: %w", err)
	}

	now := time.Now()
	settlement := domain.BillSettlement{
		SettlementID: uuid.NewString(),
		BillID:       billID,
		CompanyID:    companyID,
		VoucherID:    req.VoucherID,
		EntryID:      req.EntryID,
		Amount:       req.Amount,
		Date:         req.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	// The repository recomputes the bill in SQL under a guard, so a second
	// settlement racing this one cannot both apply against the snapshot
	// read above.
	updated, err := s.billRepo.SettleBill(ctx, settlement)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		logger.Error("Failed to settle bill", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to settle bill: %w", err)
	}

	logger.Info("Bill settled",
		slog.String("bill_id", billID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

// CancelBill cancels a bill that has no settlements yet.
func (s *billService) CancelBill(ctx context.Context, companyID string, billID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return err
	}

	bill, err := s.billRepo.FindBillByID(ctx, companyID, billID)
	if err != nil {
		return err
	}
	if bill.Status == domain.BillCancelled {
		return nil
	}
	if !bill.SettledAmount.IsZero() {
		return fmt.Errorf("%w: bill has settlements and cannot be cancelled", apperrors.ErrConflict)
	}

	now := time.Now()
	bill.Status = domain.BillCancelled
	bill.OutstandingAmount = decimal.Zero
	bill.LastUpdatedAt = now
	bill.LastUpdatedBy = requestingUserID

	if err := s.billRepo.SaveBill(ctx, *bill); err != nil {
		logger.Error("Failed to cancel bill", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return fmt.Errorf("failed to cancel bill: %w", err)
	}

	logger.Info("Bill cancelled", slog.String("bill_id", billID))
	return nil
}

func (s *billService) openBillsOfType(ctx context.Context, companyID string, billType domain.BillType) ([]domain.Bill, error) {
	bills, err := s.billRepo.ListBillsByStatus(ctx, companyID, []domain.BillStatus{domain.BillOpen, domain.BillPartial})
	if err != nil {
		return nil, fmt.Errorf("failed to list open bills: %w", err)
	}
	filtered := bills[:0]
	for _, b := range bills {
		if b.BillType == billType {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// AgingReport buckets open/partial bills by how far past due they are.
func (s *billService) AgingReport(ctx context.Context, companyID string, billType domain.BillType, asOf time.Time, requestingUserID string) (*dto.AgingReportResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	bills, err := s.openBillsOfType(ctx, companyID, billType)
	if err != nil {
		return nil, err
	}

	byLedger := make(map[string]*domain.AgingRow)
	order := make([]string, 0)
	totals := domain.AgingRow{
		LedgerName: "TOTAL",
		Buckets:    make(map[domain.AgingBucket]decimal.Decimal),
	}

	for _, b := range bills {
		bucket := domain.BucketFor(b.DaysOverdue(asOf))
		row, ok := byLedger[b.LedgerName]
		if !ok {
			row = &domain.AgingRow{
				LedgerName: b.LedgerName,
				Buckets:    make(map[domain.AgingBucket]decimal.Decimal),
			}
			byLedger[b.LedgerName] = row
			order = append(order, b.LedgerName)
		}
		row.Buckets[bucket] = row.Buckets[bucket].Add(b.OutstandingAmount)
		row.Total = row.Total.Add(b.OutstandingAmount)
		totals.Buckets[bucket] = totals.Buckets[bucket].Add(b.OutstandingAmount)
		totals.Total = totals.Total.Add(b.OutstandingAmount)
	}

	rows := make([]domain.AgingRow, 0, len(order))
	for _, name := range order {
		rows = append(rows, *byLedger[name])
	}

	return &dto.AgingReportResponse{
		AsOf:     asOf,
		BillType: billType,
		Rows:     rows,
		Totals:   totals,
	}, nil
}

// OutstandingReport groups open/partial bills by ledger, summing outstanding.
func (s *billService) OutstandingReport(ctx context.Context, companyID string, billType domain.BillType, asOf time.Time, requestingUserID string) (*dto.OutstandingReportResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	bills, err := s.openBillsOfType(ctx, companyID, billType)
	if err != nil {
		return nil, err
	}

	byLedger := make(map[string]*domain.OutstandingRow)
	order := make([]string, 0)
	total := decimal.Zero

	for _, b := range bills {
		row, ok := byLedger[b.LedgerName]
		if !ok {
			row = &domain.OutstandingRow{LedgerName: b.LedgerName}
			byLedger[b.LedgerName] = row
			order = append(order, b.LedgerName)
		}
		row.BillCount++
		row.Outstanding = row.Outstanding.Add(b.OutstandingAmount)
		total = total.Add(b.OutstandingAmount)
	}

	rows := make([]domain.OutstandingRow, 0, len(order))
	for _, name := range order {
		rows = append(rows, *byLedger[name])
	}

	return &dto.OutstandingReportResponse{
		AsOf:     asOf,
		BillType: billType,
		Rows:     rows,
		Total:    total,
	}, nil
}
