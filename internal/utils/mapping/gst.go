package mapping

import (
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/models"
)

// ToModelGstRegistration converts a domain registration to its model row.
func ToModelGstRegistration(d domain.GstRegistration) models.GstRegistration {
	return models.GstRegistration{
		RegistrationID:   d.RegistrationID,
		CompanyID:        d.CompanyID,
		GSTIN:            d.GSTIN,
		StateCode:        d.StateCode,
		RegistrationType: d.RegistrationType,
		EffectiveFrom:    d.EffectiveFrom,
		AuditFields:      toModelAudit(d.AuditFields),
	}
}

// ToDomainGstRegistration converts a model registration row to the domain type.
func ToDomainGstRegistration(m models.GstRegistration) domain.GstRegistration {
	return domain.GstRegistration{
		RegistrationID:   m.RegistrationID,
		CompanyID:        m.CompanyID,
		GSTIN:            m.GSTIN,
		StateCode:        m.StateCode,
		RegistrationType: m.RegistrationType,
		EffectiveFrom:    m.EffectiveFrom,
		AuditFields:      toDomainAudit(m.AuditFields),
	}
}

// ToModelGstTaxRate converts a domain tax rate to its model row.
func ToModelGstTaxRate(d domain.GstTaxRate) models.GstTaxRate {
	return models.GstTaxRate{
		RateID:        d.RateID,
		CompanyID:     d.CompanyID,
		HSNCode:       d.HSNCode,
		SupplyType:    string(d.SupplyType),
		CGSTRate:      d.CGSTRate,
		SGSTRate:      d.SGSTRate,
		IGSTRate:      d.IGSTRate,
		CessRate:      d.CessRate,
		EffectiveFrom: d.EffectiveFrom,
		EffectiveTo:   d.EffectiveTo,
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToDomainGstTaxRate converts a model tax rate row to the domain type.
func ToDomainGstTaxRate(m models.GstTaxRate) domain.GstTaxRate {
	return domain.GstTaxRate{
		RateID:        m.RateID,
		CompanyID:     m.CompanyID,
		HSNCode:       m.HSNCode,
		SupplyType:    domain.SupplyType(m.SupplyType),
		CGSTRate:      m.CGSTRate,
		SGSTRate:      m.SGSTRate,
		IGSTRate:      m.IGSTRate,
		CessRate:      m.CessRate,
		EffectiveFrom: m.EffectiveFrom,
		EffectiveTo:   m.EffectiveTo,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToModelGstLedgerMapping converts a domain mapping to its model row.
func ToModelGstLedgerMapping(d domain.GstLedgerMapping) models.GstLedgerMapping {
	return models.GstLedgerMapping{
		MappingID:   d.MappingID,
		CompanyID:   d.CompanyID,
		MappingType: string(d.MappingType),
		LedgerName:  d.LedgerName,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainGstLedgerMapping converts a model mapping row to the domain type.
func ToDomainGstLedgerMapping(m models.GstLedgerMapping) domain.GstLedgerMapping {
	return domain.GstLedgerMapping{
		MappingID:   m.MappingID,
		CompanyID:   m.CompanyID,
		MappingType: domain.GstMappingType(m.MappingType),
		LedgerName:  m.LedgerName,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}
