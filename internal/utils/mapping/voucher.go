package mapping

import (
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/models"
)

// ToModelVoucher converts a domain Voucher header to its model row.
// Entries and inventory lines are mapped separately.
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:          d.VoucherID,
		CompanyID:          d.CompanyID,
		TypeID:             d.TypeID,
		Category:           string(d.Category),
		Number:             d.Number,
		VoucherDate:        d.Date,
		Status:             string(d.Status),
		TotalAmount:        d.TotalAmount,
		PartyLedgerName:    d.PartyLedgerName,
		CounterLedgerName:  d.CounterLedgerName,
		PlaceOfSupply:      d.PlaceOfSupply,
		Narration:          d.Narration,
		OriginalVoucherID:  d.OriginalVoucherID,
		ReversingVoucherID: d.ReversingVoucherID,
		AuditFields:        toModelAudit(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher row to the domain type.
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:          m.VoucherID,
		CompanyID:          m.CompanyID,
		TypeID:             m.TypeID,
		Category:           domain.VoucherCategory(m.Category),
		Number:             m.Number,
		Date:               m.VoucherDate,
		Status:             domain.VoucherStatus(m.Status),
		TotalAmount:        m.TotalAmount,
		PartyLedgerName:    m.PartyLedgerName,
		CounterLedgerName:  m.CounterLedgerName,
		PlaceOfSupply:      m.PlaceOfSupply,
		Narration:          m.Narration,
		OriginalVoucherID:  m.OriginalVoucherID,
		ReversingVoucherID: m.ReversingVoucherID,
		AuditFields:        toDomainAudit(m.AuditFields),
	}
}

// ToModelVoucherEntry converts a domain VoucherEntry to its model row.
func ToModelVoucherEntry(d domain.VoucherEntry, companyID string) models.VoucherEntry {
	return models.VoucherEntry{
		EntryID:        d.EntryID,
		VoucherID:      d.VoucherID,
		CompanyID:      companyID,
		LedgerName:     d.LedgerName,
		EntryType:      string(d.EntryType),
		Amount:         d.Amount,
		CostCentreName: d.CostCentreName,
		Narration:      d.Narration,
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

// ToDomainVoucherEntry converts a model VoucherEntry row to the domain type.
func ToDomainVoucherEntry(m models.VoucherEntry) domain.VoucherEntry {
	return domain.VoucherEntry{
		EntryID:        m.EntryID,
		VoucherID:      m.VoucherID,
		LedgerName:     m.LedgerName,
		EntryType:      domain.EntryType(m.EntryType),
		Amount:         m.Amount,
		CostCentreName: m.CostCentreName,
		Narration:      m.Narration,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

// ToDomainVoucherEntrySlice converts model entry rows to domain entries.
func ToDomainVoucherEntrySlice(ms []models.VoucherEntry) []domain.VoucherEntry {
	ds := make([]domain.VoucherEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVoucherEntry(m)
	}
	return ds
}

// ToModelInventoryLine converts a domain InventoryLine to its model row.
func ToModelInventoryLine(d domain.InventoryLine, companyID string) models.InventoryLine {
	return models.InventoryLine{
		LineID:         d.LineID,
		VoucherID:      d.VoucherID,
		CompanyID:      companyID,
		ItemName:       d.ItemName,
		WarehouseName:  d.WarehouseName,
		Quantity:       d.Quantity,
		Rate:           d.Rate,
		Amount:         d.Amount,
		DiscountAmount: d.DiscountAmount,
		GstRate:        d.GstRate,
		HSNCode:        d.HSNCode,
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

// ToDomainInventoryLine converts a model InventoryLine row to the domain type.
func ToDomainInventoryLine(m models.InventoryLine) domain.InventoryLine {
	return domain.InventoryLine{
		LineID:         m.LineID,
		VoucherID:      m.VoucherID,
		ItemName:       m.ItemName,
		WarehouseName:  m.WarehouseName,
		Quantity:       m.Quantity,
		Rate:           m.Rate,
		Amount:         m.Amount,
		DiscountAmount: m.DiscountAmount,
		GstRate:        m.GstRate,
		HSNCode:        m.HSNCode,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

// ToDomainInventoryLineSlice converts model line rows to domain lines.
func ToDomainInventoryLineSlice(ms []models.InventoryLine) []domain.InventoryLine {
	ds := make([]domain.InventoryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInventoryLine(m)
	}
	return ds
}

// ToModelVoucherType converts a domain VoucherType to its model row.
func ToModelVoucherType(d domain.VoucherType) models.VoucherType {
	return models.VoucherType{
		TypeID:      d.TypeID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Category:    string(d.Category),
		Prefix:      d.Prefix,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainVoucherType converts a model VoucherType row to the domain type.
func ToDomainVoucherType(m models.VoucherType) domain.VoucherType {
	return domain.VoucherType{
		TypeID:      m.TypeID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Category:    domain.VoucherCategory(m.Category),
		Prefix:      m.Prefix,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}
