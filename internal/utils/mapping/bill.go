package mapping

import (
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/models"
)

// ToModelBill converts a domain Bill to its model row.
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		BillID:            d.BillID,
		CompanyID:         d.CompanyID,
		BillType:          string(d.BillType),
		Number:            d.Number,
		LedgerName:        d.LedgerName,
		BillDate:          d.BillDate,
		DueDate:           d.DueDate,
		OriginalAmount:    d.OriginalAmount,
		SettledAmount:     d.SettledAmount,
		OutstandingAmount: d.OutstandingAmount,
		Status:            string(d.Status),
		VoucherID:         d.VoucherID,
		AuditFields:       toModelAudit(d.AuditFields),
	}
}

// ToDomainBill converts a model Bill row to the domain type.
func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:            m.BillID,
		CompanyID:         m.CompanyID,
		BillType:          domain.BillType(m.BillType),
		Number:            m.Number,
		LedgerName:        m.LedgerName,
		BillDate:          m.BillDate,
		DueDate:           m.DueDate,
		OriginalAmount:    m.OriginalAmount,
		SettledAmount:     m.SettledAmount,
		OutstandingAmount: m.OutstandingAmount,
		Status:            domain.BillStatus(m.Status),
		VoucherID:         m.VoucherID,
		AuditFields:       toDomainAudit(m.AuditFields),
	}
}

// ToDomainBillSlice converts model Bill rows to domain Bills.
func ToDomainBillSlice(ms []models.Bill) []domain.Bill {
	ds := make([]domain.Bill, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBill(m)
	}
	return ds
}

// ToModelBillSettlement converts a domain BillSettlement to its model row.
func ToModelBillSettlement(d domain.BillSettlement) models.BillSettlement {
	return models.BillSettlement{
		SettlementID: d.SettlementID,
		BillID:       d.BillID,
		CompanyID:    d.CompanyID,
		VoucherID:    d.VoucherID,
		EntryID:      d.EntryID,
		Amount:       d.Amount,
		SettledOn:    d.Date,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

// ToDomainBillSettlement converts a model settlement row to the domain type.
func ToDomainBillSettlement(m models.BillSettlement) domain.BillSettlement {
	return domain.BillSettlement{
		SettlementID: m.SettlementID,
		BillID:       m.BillID,
		CompanyID:    m.CompanyID,
		VoucherID:    m.VoucherID,
		EntryID:      m.EntryID,
		Amount:       m.Amount,
		Date:         m.SettledOn,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}
