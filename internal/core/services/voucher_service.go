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

// voucherService drives the draft/post/cancel lifecycle. Posting dispatches
// through a per-category rule table that synthesizes balanced entries.
type voucherService struct {
	BaseService
	voucherRepo   portsrepo.VoucherRepositoryFacade
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	inventoryRepo portsrepo.InventoryRepositoryFacade
	billRepo      portsrepo.BillRepositoryFacade
	gstSvc        portssvc.GstCalculatorSvc
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(
	vr portsrepo.VoucherRepositoryFacade,
	lr portsrepo.LedgerRepositoryFacade,
	ir portsrepo.InventoryRepositoryFacade,
	br portsrepo.BillRepositoryFacade,
	gstSvc portssvc.GstCalculatorSvc,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.VoucherSvcFacade {
	return &voucherService{
		BaseService:   BaseService{CompanyAuthorizer: authorizer},
		voucherRepo:   vr,
		ledgerRepo:    lr,
		inventoryRepo: ir,
		billRepo:      br,
		gstSvc:        gstSvc,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// CreateVoucherType registers a document type for the company.
func (s *voucherService) CreateVoucherType(ctx context.Context, companyID string, req dto.CreateVoucherTypeRequest, creatorUserID string) (*domain.VoucherType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	vt := domain.VoucherType{
		TypeID:    uuid.NewString(),
		CompanyID: companyID,
		Name:      req.Name,
		Category:  req.Category,
		Prefix:    req.Prefix,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.voucherRepo.SaveVoucherType(ctx, vt); err != nil {
		logger.Error("Failed to save voucher type", slog.String("error", err.Error()), slog.String("type_name", req.Name))
		return nil, fmt.Errorf("failed to create voucher type: %w", err)
	}

	logger.Info("Voucher type created", slog.String("type_id", vt.TypeID), slog.String("category", string(req.Category)))
	return &vt, nil
}

// ListVoucherTypes lists the company's document types.
func (s *voucherService) ListVoucherTypes(ctx context.Context, companyID string, requestingUserID string) ([]domain.VoucherType, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	types, err := s.voucherRepo.ListVoucherTypes(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list voucher types: %w", err)
	}
	if types == nil {
		types = []domain.VoucherType{}
	}
	return types, nil
}

// CreateDraftVoucher validates and persists a DRAFT voucher. A draft has no
// ledger, stock or bill effect until it is posted.
func (s *voucherService) CreateDraftVoucher(ctx context.Context, companyID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	vt, err := s.voucherRepo.FindVoucherTypeByID(ctx, companyID, req.TypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: voucher type %s not found", apperrors.ErrValidation, req.TypeID)
		}
		return nil, fmt.Errorf("failed to resolve voucher type: %w", err)
	}

	if existing, err := s.voucherRepo.FindVoucherByNumber(ctx, companyID, req.TypeID, req.Number); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: voucher number %q already used for this type", apperrors.ErrDuplicate, req.Number)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check voucher number: %w", err)
	}

	now := time.Now()
	voucherID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	entries := make([]domain.VoucherEntry, len(req.Entries))
	for i, e := range req.Entries {
		if e.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: entry amount must be positive for ledger %s", apperrors.ErrValidation, e.LedgerName)
		}
		entries[i] = domain.VoucherEntry{
			EntryID:        uuid.NewString(),
			VoucherID:      voucherID,
			LedgerName:     e.LedgerName,
			EntryType:      e.EntryType,
			Amount:         e.Amount,
			CostCentreName: e.CostCentreName,
			Narration:      e.Narration,
			AuditFields:    audit,
		}
	}

	lines := make([]domain.InventoryLine, len(req.InventoryLines))
	for i, l := range req.InventoryLines {
		amount := l.Amount
		if amount.IsZero() {
			amount = l.Quantity.Mul(l.Rate)
		}
		lines[i] = domain.InventoryLine{
			LineID:         uuid.NewString(),
			VoucherID:      voucherID,
			ItemName:       l.ItemName,
			WarehouseName:  l.WarehouseName,
			Quantity:       l.Quantity,
			Rate:           l.Rate,
			Amount:         amount,
			DiscountAmount: l.DiscountAmount,
			GstRate:        l.GstRate,
			HSNCode:        l.HSNCode,
			AuditFields:    audit,
		}
	}

	voucher := domain.Voucher{
		VoucherID:         voucherID,
		CompanyID:         companyID,
		TypeID:            vt.TypeID,
		Category:          vt.Category,
		Number:            req.Number,
		Date:              req.Date,
		Status:            domain.VoucherDraft,
		TotalAmount:       req.TotalAmount,
		PartyLedgerName:   req.PartyLedgerName,
		CounterLedgerName: req.CounterLedgerName,
		PlaceOfSupply:     req.PlaceOfSupply,
		Narration:         req.Narration,
		Entries:           entries,
		InventoryLines:    lines,
		AuditFields:       audit,
	}

	if err := s.voucherRepo.SaveDraftVoucher(ctx, voucher); err != nil {
		logger.Error("Failed to save draft voucher", slog.String("error", err.Error()), slog.String("voucher_number", req.Number))
		return nil, fmt.Errorf("failed to save draft voucher: %w", err)
	}

	logger.Info("Draft voucher created", slog.String("voucher_id", voucherID), slog.String("category", string(vt.Category)))
	return &voucher, nil
}

// GetVoucherByID retrieves a voucher with its entries and inventory lines.
func (s *voucherService) GetVoucherByID(ctx context.Context, companyID string, voucherID string, requestingUserID string) (*domain.Voucher, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.voucherRepo.FindVoucherByID(ctx, companyID, voucherID)
}

// ListVouchers retrieves a cursor-paginated page of vouchers.
func (s *voucherService) ListVouchers(ctx context.Context, companyID string, requestingUserID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchers(ctx, companyID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list vouchers from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve vouchers: %w", err)
	}

	responses := make([]dto.VoucherResponse, len(vouchers))
	for i := range vouchers {
		responses[i] = dto.ToVoucherResponse(&vouchers[i])
	}

	return &dto.ListVouchersResponse{Vouchers: responses, NextToken: nextToken}, nil
}

// postingContext carries everything a posting rule needs to synthesize
// entries for one voucher.
type postingContext struct {
	voucher *domain.Voucher
	party   *domain.Ledger
	counter *domain.Ledger
	net     decimal.Decimal // inventory value net of discounts
	tax     domain.TaxLine  // document tax totals
	gross   decimal.Decimal // net + tax
	now     time.Time
	userID  string
}

// postingRule synthesizes the debit/credit skeleton for one category.
// Tax entries are appended separately.
type postingRule func(s *voucherService, ctx context.Context, pc *postingContext) ([]domain.VoucherEntry, error)

// postingRules maps each entry-producing category to its rule.
var postingRules = map[domain.VoucherCategory]postingRule{
	domain.CategoryPayment:      (*voucherService).postPayment,
	domain.CategoryReceipt:      (*voucherService).postReceipt,
	domain.CategoryContra:       (*voucherService).postContra,
	domain.CategoryJournal:      (*voucherService).postJournal,
	domain.CategorySalesVoucher: (*voucherService).postSales,
	domain.CategoryPurchaseVch:  (*voucherService).postPurchase,
	domain.CategoryCreditNote:   (*voucherService).postCreditNote,
	domain.CategoryDebitNote:    (*voucherService).postDebitNote,
}

func (pc *postingContext) newEntry(ledgerName string, entryType domain.EntryType, amount decimal.Decimal) domain.VoucherEntry {
	return domain.VoucherEntry{
		EntryID:    uuid.NewString(),
		VoucherID:  pc.voucher.VoucherID,
		LedgerName: ledgerName,
		EntryType:  entryType,
		Amount:     amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     pc.now,
			CreatedBy:     pc.userID,
			LastUpdatedAt: pc.now,
			LastUpdatedBy: pc.userID,
		},
	}
}

// PAYMENT: debit the party, credit cash/bank.
func (s *voucherService) postPayment(ctx context.Context, pc *postingContext) ([]domain.VoucherEntry, error) {
	return []domain.VoucherEntry{
		pc.newEntry(pc.party.Name, domain.Debit, pc.voucher.TotalAmount),
		pc.newEntry(pc.counter.Name, domain.Credit, pc.voucher.TotalAmount),
	}, nil
}

// RECEIPT: debit cash/bank, credit the party.
func (s *voucherService) postReceipt(ctx context.Context, pc *postingContext) ([]domain.VoucherEntry, error) {
	return []domain.VoucherEntry{
		pc.newEntry(pc.counter.Name, domain.Debit, pc.voucher.TotalAmount),
		pc.newEntry(pc.party.Name, domain.Credit, pc.voucher.TotalAmount),
	}, nil
}

// CONTRA: debit the destination cash/bank, credit the source cash/bank.
func (s *voucherService) postContra(ctx context.Context, pc *postingContext) ([]domain.VoucherEntry, error) {
	if pc.party.Name == pc.counter.Name {
		return nil, fmt.Errorf("%w: contra voucher must move between two different cash/bank ledgers", apperrors.ErrValidation)
	}
	if !pc.party.GroupCategory.IsCashOrBank() || !pc.counter.GroupCategory.IsCashOrBank() {
		return nil, fmt.Errorf("%w: contra voucher ledgers must be cash or bank ledgers", apperrors.ErrValidation)
	}
	return []domain.VoucherEntry{
		pc.newEntry(pc.counter.Name, domain.Debit, pc.voucher.TotalAmount),
		pc.newEntry(pc.party.Name, domain.Credit, pc.voucher.TotalAmount),
	}, nil
}

// JOURNAL entries are supplied manually; the rule only validates balance,
// which has already happened by the time the table dispatches.
func (s *voucherService) postJournal(ctx context.Context, pc *postingContext) ([]domain.VoucherEntry, error) {
	return pc.voucher.Entries, nil
}

// SALES: debit the customer for the grand total, credit sales for the net.
// Output GST entries are appended after the rule runs.
func (s *voucherService) postSales(ctx context.Context, pc *postingContext) ([]domain.VoucherEntry, error) {
	return []domain.VoucherEntry{
		pc.newEntry(pc.party.Name, domain.Debit, pc.gross),
		pc.newEntry(pc.counter.Name, domain.Credit, pc.net),
	}, nil
}

// PURCHASE: debit purchases for the net, credit the supplier for the grand
// total. Input GST entries are appended after the rule runs.
func (s *voucherService) postPurchase(ctx context.Context, pc *postingContext) ([]domain.VoucherEntry, error) {
	return []domain.VoucherEntry{
		pc.newEntry(pc.counter.Name, domain.Debit, pc.net),
		pc.newEntry(pc.party.Name, domain.Credit, pc.gross),
	}, nil
}

// CREDIT_NOTE: a sales return. Debit the sales-return ledger for the net,
// credit the customer for the grand total; output GST is debited back.
func (s *voucherService) postCreditNote(ctx context.Context, pc *postingContext) ([]domain.VoucherEntry, error) {
	return []domain.VoucherEntry{
		pc.newEntry(pc.counter.Name, domain.Debit, pc.net),
		pc.newEntry(pc.party.Name, domain.Credit, pc.gross),
	}, nil
}

// DEBIT_NOTE: a purchase return. Debit the supplier for the grand total,
// credit the purchase-return ledger for the net; input GST is credited back.
func (s *voucherService) postDebitNote(ctx context.Context, pc *postingContext) ([]domain.VoucherEntry, error) {
	return []domain.VoucherEntry{
		pc.newEntry(pc.party.Name, domain.Debit, pc.gross),
		pc.newEntry(pc.counter.Name, domain.Credit, pc.net),
	}, nil
}

// counterCategories names the group categories a category's counter-ledger
// may come from when the voucher doesn't name one explicitly.
func counterCategories(category domain.VoucherCategory) []domain.GroupCategory {
	switch category {
	case domain.CategoryPayment, domain.CategoryReceipt, domain.CategoryContra:
		return []domain.GroupCategory{domain.CategoryCash, domain.CategoryBankAccount}
	case domain.CategorySalesVoucher, domain.CategoryCreditNote:
		return []domain.GroupCategory{domain.CategorySales}
	case domain.CategoryPurchaseVch, domain.CategoryDebitNote:
		return []domain.GroupCategory{domain.CategoryPurchase}
	}
	return nil
}

// resolveCounterLedger returns the counter-ledger for a voucher: the named
// one when present, else the first ledger of the category's default groups.
// No candidate at all is a configuration problem, not a validation one.
func (s *voucherService) resolveCounterLedger(ctx context.Context, v *domain.Voucher) (*domain.Ledger, error) {
	if v.CounterLedgerName != nil && *v.CounterLedgerName != "" {
		ledger, err := s.ledgerRepo.FindLedgerByName(ctx, v.CompanyID, *v.CounterLedgerName)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: counter ledger %q not found", apperrors.ErrValidation, *v.CounterLedgerName)
			}
			return nil, fmt.Errorf("failed to resolve counter ledger: %w", err)
		}
		return ledger, nil
	}

	categories := counterCategories(v.Category)
	if categories == nil {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("category %s has no default counter-ledger", v.Category))
	}

	ledger, err := s.ledgerRepo.FindFirstLedgerByCategories(ctx, v.CompanyID, categories)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewConfigurationError(fmt.Sprintf("no %v ledger configured for %s vouchers", categories, v.Category))
		}
		return nil, fmt.Errorf("failed to resolve counter ledger: %w", err)
	}
	return ledger, nil
}

func (s *voucherService) resolvePartyLedger(ctx context.Context, v *domain.Voucher) (*domain.Ledger, error) {
	if v.PartyLedgerName == nil || *v.PartyLedgerName == "" {
		return nil, fmt.Errorf("%w: party ledger is required for %s vouchers", apperrors.ErrValidation, v.Category)
	}
	ledger, err := s.ledgerRepo.FindLedgerByName(ctx, v.CompanyID, *v.PartyLedgerName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: party ledger %q not found", apperrors.ErrValidation, *v.PartyLedgerName)
		}
		return nil, fmt.Errorf("failed to resolve party ledger: %w", err)
	}
	return ledger, nil
}

// stockRequirements aggregates required outward quantities per
// (item, warehouse) pair, in first-seen order.
func stockRequirements(v *domain.Voucher) []portsrepo.StockCheck {
	if v.Category.StockEffect() >= 0 {
		return nil
	}
	index := make(map[string]int)
	checks := make([]portsrepo.StockCheck, 0, len(v.InventoryLines))
	for _, line := range v.InventoryLines {
		key := line.ItemName + "\x00" + line.WarehouseName
		if i, ok := index[key]; ok {
			checks[i].Required = checks[i].Required.Add(line.Quantity)
			continue
		}
		index[key] = len(checks)
		checks = append(checks, portsrepo.StockCheck{
			ItemName:      line.ItemName,
			WarehouseName: line.WarehouseName,
			Required:      line.Quantity,
		})
	}
	return checks
}

// validateForPosting collects every violated precondition for the voucher's
// category instead of stopping at the first.
func (s *voucherService) validateForPosting(ctx context.Context, v *domain.Voucher) error {
	var reasons []string

	if v.Category.RequiresInventory() && len(v.InventoryLines) == 0 {
		reasons = append(reasons, fmt.Sprintf("%s voucher requires at least one inventory line", v.Category))
	}

	for _, line := range v.InventoryLines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			reasons = append(reasons, fmt.Sprintf("inventory quantity must be positive for item %s", line.ItemName))
		}
		if line.TaxableValue().IsNegative() {
			reasons = append(reasons, fmt.Sprintf("discount exceeds line amount for item %s", line.ItemName))
		}
	}

	for _, e := range v.Entries {
		if e.Amount.LessThanOrEqual(decimal.Zero) {
			reasons = append(reasons, fmt.Sprintf("entry amount must be positive for ledger %s", e.LedgerName))
		}
	}

	switch v.Category {
	case domain.CategoryJournal:
		if len(v.Entries) < 2 {
			reasons = append(reasons, "journal voucher must have at least two entries")
		}
		if !domain.EntriesBalanced(v.Entries) {
			debits, credits := domain.EntryTotals(v.Entries)
			reasons = append(reasons, fmt.Sprintf("entries do not balance: debits %s, credits %s", debits, credits))
		}
	case domain.CategoryPayment, domain.CategoryReceipt, domain.CategoryContra:
		if len(v.Entries) == 0 && v.TotalAmount.LessThanOrEqual(decimal.Zero) {
			reasons = append(reasons, "voucher amount must be positive")
		}
	}

	// Manually supplied entries on non-journal vouchers must still balance.
	if v.Category != domain.CategoryJournal && len(v.Entries) > 0 && !domain.EntriesBalanced(v.Entries) {
		debits, credits := domain.EntryTotals(v.Entries)
		reasons = append(reasons, fmt.Sprintf("entries do not balance: debits %s, credits %s", debits, credits))
	}

	// Outward stock categories must have cover for every requested quantity.
	// The posting transaction re-derives this under a per-pair advisory lock.
	for _, check := range stockRequirements(v) {
		available, err := s.inventoryRepo.StockBalance(ctx, v.CompanyID, check.ItemName, check.WarehouseName)
		if err != nil {
			return fmt.Errorf("failed to derive stock balance for %s/%s: %w", check.ItemName, check.WarehouseName, err)
		}
		if available.LessThan(check.Required) {
			reasons = append(reasons, fmt.Sprintf("insufficient stock for %s at %s: have %s, need %s",
				check.ItemName, check.WarehouseName, available, check.Required))
		}
	}

	if len(reasons) > 0 {
		return apperrors.NewValidationError(reasons...)
	}
	return nil
}

// taxMappingsFor returns the component-to-mapping table and entry side for
// a category's tax entries. Sales-side documents post output tax; purchase
// side posts input tax. Returns posts=false for untaxed categories.
func taxMappingsFor(category domain.VoucherCategory) (mappings map[string]domain.GstMappingType, side domain.EntryType, posts bool) {
	output := map[string]domain.GstMappingType{
		"cgst": domain.MappingOutputCGST,
		"sgst": domain.MappingOutputSGST,
		"igst": domain.MappingOutputIGST,
		"cess": domain.MappingOutputCess,
	}
	input := map[string]domain.GstMappingType{
		"cgst": domain.MappingInputCGST,
		"sgst": domain.MappingInputSGST,
		"igst": domain.MappingInputIGST,
		"cess": domain.MappingInputCess,
	}
	switch category {
	case domain.CategorySalesVoucher:
		return output, domain.Credit, true
	case domain.CategoryCreditNote:
		// Sales return: claw the output tax back on the debit side.
		return output, domain.Debit, true
	case domain.CategoryPurchaseVch:
		return input, domain.Debit, true
	case domain.CategoryDebitNote:
		// Purchase return: surrender the input credit.
		return input, domain.Credit, true
	}
	return nil, "", false
}

// taxEntries builds one entry per non-zero tax component against its mapped
// ledger. A component with tax but no mapping is ErrConfiguration.
func (s *voucherService) taxEntries(ctx context.Context, pc *postingContext) ([]domain.VoucherEntry, error) {
	mappings, side, posts := taxMappingsFor(pc.voucher.Category)
	if !posts || !pc.tax.HasTax() {
		return nil, nil
	}

	components := []struct {
		key    string
		amount decimal.Decimal
	}{
		{"cgst", pc.tax.CGST},
		{"sgst", pc.tax.SGST},
		{"igst", pc.tax.IGST},
		{"cess", pc.tax.Cess},
	}

	var entries []domain.VoucherEntry
	for _, c := range components {
		if c.amount.IsZero() {
			continue
		}
		ledgerName, err := s.gstSvc.ResolvePostingLedger(ctx, pc.voucher.CompanyID, mappings[c.key])
		if err != nil {
			return nil, err
		}
		entries = append(entries, pc.newEntry(ledgerName, side, c.amount))
	}
	return entries, nil
}

// PostVoucher validates the draft, synthesizes entries through the posting
// rule table, appends tax entries and commits everything atomically.
func (s *voucherService) PostVoucher(ctx context.Context, companyID string, voucherID string, requestingUserID string) (*dto.PostVoucherResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status != domain.VoucherDraft {
		return nil, fmt.Errorf("%w: voucher status is %s, expected DRAFT", apperrors.ErrConflict, voucher.Status)
	}

	if err := s.validateForPosting(ctx, voucher); err != nil {
		return nil, err
	}

	now := time.Now()
	pc := &postingContext{
		voucher: voucher,
		net:     voucher.NetInventoryValue(),
		now:     now,
		userID:  requestingUserID,
	}

	gstPosted := false
	var entries []domain.VoucherEntry

	if voucher.Category.PostsLedgerEntries() {
		placeOfSupply := ""
		if voucher.PlaceOfSupply != nil {
			placeOfSupply = *voucher.PlaceOfSupply
		}
		if _, _, posts := taxMappingsFor(voucher.Category); posts && len(voucher.InventoryLines) > 0 {
			_, totals, err := s.gstSvc.ComputeDocument(ctx, companyID, voucher.InventoryLines, voucher.Date, placeOfSupply)
			if err != nil {
				return nil, err
			}
			pc.tax = totals
			gstPosted = totals.HasTax()
		}
		pc.gross = pc.net.Add(pc.tax.CGST).Add(pc.tax.SGST).Add(pc.tax.IGST).Add(pc.tax.Cess)

		if len(voucher.Entries) > 0 {
			// Manual entries win; the rule table is bypassed.
			entries = voucher.Entries
		} else {
			rule, ok := postingRules[voucher.Category]
			if !ok {
				return nil, apperrors.NewConfigurationError(fmt.Sprintf("no posting rule for category %s", voucher.Category))
			}

			if voucher.Category != domain.CategoryJournal {
				pc.party, err = s.resolvePartyLedger(ctx, voucher)
				if err != nil {
					return nil, err
				}
				pc.counter, err = s.resolveCounterLedger(ctx, voucher)
				if err != nil {
					return nil, err
				}
			}

			entries, err = rule(s, ctx, pc)
			if err != nil {
				return nil, err
			}

			tax, err := s.taxEntries(ctx, pc)
			if err != nil {
				return nil, err
			}
			entries = append(entries, tax...)
		}

		if !domain.EntriesBalanced(entries) {
			debits, credits := domain.EntryTotals(entries)
			return nil, apperrors.NewConsistencyError(fmt.Sprintf("synthesized entries do not balance: debits %s, credits %s", debits, credits))
		}
	}

	voucher.Entries = entries
	voucher.Status = domain.VoucherPosted
	if gstPosted || (len(voucher.InventoryLines) > 0 && voucher.Category.PostsLedgerEntries()) {
		voucher.TotalAmount = pc.gross
	}
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = requestingUserID

	bill, err := s.billForPosting(ctx, pc)
	if err != nil {
		return nil, err
	}

	params := portsrepo.PostVoucherParams{
		Voucher:     *voucher,
		StockChecks: stockRequirements(voucher),
		Bill:        bill,
	}
	if err := s.voucherRepo.PostVoucher(ctx, params); err != nil {
		logger.Error("Failed to post voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, err
	}

	logger.Info("Voucher posted",
		slog.String("voucher_id", voucherID),
		slog.String("category", string(voucher.Category)),
		slog.Int("entries", len(entries)),
		slog.Bool("gst_posted", gstPosted))

	return &dto.PostVoucherResult{
		VoucherID:        voucherID,
		EntriesCreated:   len(entries),
		InventoryUpdated: voucher.Category.StockEffect() != 0 && len(voucher.InventoryLines) > 0,
		GstPosted:        gstPosted,
	}, nil
}

// billForPosting opens a bill alongside invoices against bill-by-bill
// parties: a receivable for sales, a payable for purchases. The due date
// comes from the party's credit period when one is configured.
func (s *voucherService) billForPosting(ctx context.Context, pc *postingContext) (*domain.Bill, error) {
	v := pc.voucher
	if pc.party == nil || !pc.party.BillByBill {
		return nil, nil
	}

	var billType domain.BillType
	switch v.Category {
	case domain.CategorySalesVoucher:
		billType = domain.BillReceivable
	case domain.CategoryPurchaseVch:
		billType = domain.BillPayable
	default:
		return nil, nil
	}

	var dueDate *time.Time
	if pc.party.CreditPeriodDays != nil {
		d := v.Date.AddDate(0, 0, *pc.party.CreditPeriodDays)
		dueDate = &d
	}

	voucherID := v.VoucherID
	bill := &domain.Bill{
		BillID:            uuid.NewString(),
		CompanyID:         v.CompanyID,
		BillType:          billType,
		Number:            v.Number,
		LedgerName:        pc.party.Name,
		BillDate:          v.Date,
		DueDate:           dueDate,
		OriginalAmount:    pc.gross,
		SettledAmount:     decimal.Zero,
		OutstandingAmount: pc.gross,
		Status:            domain.BillOpen,
		VoucherID:         &voucherID,
		AuditFields: domain.AuditFields{
			CreatedAt:     pc.now,
			CreatedBy:     pc.userID,
			LastUpdatedAt: pc.now,
			LastUpdatedBy: pc.userID,
		},
	}
	return bill, nil
}

// CancelVoucher cancels a draft with a status flip. Cancelling a posted
// voucher generates and posts a reversing voucher with flipped entries and
// links the pair, so replayed balances net the original out.
func (s *voucherService) CancelVoucher(ctx context.Context, companyID string, voucherID string, requestingUserID string) (*dto.CancelVoucherResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, companyID, voucherID)
	if err != nil {
		return nil, err
	}

	switch voucher.Status {
	case domain.VoucherDraft:
		if err := s.voucherRepo.CancelDraftVoucher(ctx, companyID, voucherID, requestingUserID, time.Now()); err != nil {
			logger.Error("Failed to cancel draft voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
			return nil, err
		}
		logger.Info("Draft voucher cancelled", slog.String("voucher_id", voucherID))
		return &dto.CancelVoucherResult{VoucherID: voucherID}, nil

	case domain.VoucherPosted:
		if voucher.OriginalVoucherID != nil {
			return nil, fmt.Errorf("%w: cannot cancel a reversing voucher", apperrors.ErrConflict)
		}
		// Bills this voucher opened go with it, but money already received
		// against one cannot be silently unwound.
		bills, err := s.billRepo.ListBillsByVoucher(ctx, companyID, voucherID)
		if err != nil {
			return nil, fmt.Errorf("failed to check bills for voucher %s: %w", voucherID, err)
		}
		for _, b := range bills {
			if b.SettledAmount.GreaterThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: bill %s opened by this voucher has settlements", apperrors.ErrConflict, b.Number)
			}
		}
		reversing, err := s.buildReversingVoucher(voucher, requestingUserID)
		if err != nil {
			return nil, err
		}
		if err := s.voucherRepo.ReverseVoucher(ctx, *voucher, *reversing); err != nil {
			logger.Error("Failed to reverse voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
			return nil, err
		}
		logger.Info("Voucher cancelled via reversal",
			slog.String("voucher_id", voucherID),
			slog.String("reversing_voucher_id", reversing.VoucherID))
		return &dto.CancelVoucherResult{VoucherID: voucherID, ReversingVoucherID: &reversing.VoucherID}, nil

	default:
		return nil, fmt.Errorf("%w: voucher is already cancelled", apperrors.ErrConflict)
	}
}

// buildReversingVoucher produces the mirror voucher for a posted original:
// same date and amounts, every entry flipped. Inventory lines are not
// carried; stock derives from POSTED vouchers only, and the original stops
// counting once it flips to CANCELLED.
func (s *voucherService) buildReversingVoucher(original *domain.Voucher, userID string) (*domain.Voucher, error) {
	now := time.Now()
	newID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	entries := make([]domain.VoucherEntry, len(original.Entries))
	for i, e := range original.Entries {
		flipped := domain.Credit
		if e.EntryType == domain.Credit {
			flipped = domain.Debit
		}
		entries[i] = domain.VoucherEntry{
			EntryID:        uuid.NewString(),
			VoucherID:      newID,
			LedgerName:     e.LedgerName,
			EntryType:      flipped,
			Amount:         e.Amount,
			CostCentreName: e.CostCentreName,
			Narration:      e.Narration,
			AuditFields:    audit,
		}
	}

	reversing := &domain.Voucher{
		VoucherID:         newID,
		CompanyID:         original.CompanyID,
		TypeID:            original.TypeID,
		Category:          original.Category,
		Number:            original.Number + "/R",
		Date:              original.Date,
		Status:            domain.VoucherPosted,
		TotalAmount:       original.TotalAmount,
		PartyLedgerName:   original.PartyLedgerName,
		CounterLedgerName: original.CounterLedgerName,
		PlaceOfSupply:     original.PlaceOfSupply,
		Narration:         fmt.Sprintf("Reversal of %s", original.Number),
		OriginalVoucherID: &original.VoucherID,
		Entries:           entries,
		AuditFields:       audit,
	}
	return reversing, nil
}
