package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/startupbooks/startup_books_app/internal/apperrors"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portsrepo "github.com/startupbooks/startup_books_app/internal/core/ports/repositories"
	"github.com/startupbooks/startup_books_app/internal/models"
	"github.com/startupbooks/startup_books_app/internal/utils/mapping"
)

type PgxGstRepository struct {
	BaseRepository
}

// newPgxGstRepository creates a new repository for GST configuration data.
func newPgxGstRepository(pool *pgxpool.Pool) portsrepo.GstRepositoryFacade {
	return &PgxGstRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GstRepositoryFacade = (*PgxGstRepository)(nil)

// SaveRegistration upserts the company's single registration row.
func (r *PgxGstRepository) SaveRegistration(ctx context.Context, reg domain.GstRegistration) error {
	m := mapping.ToModelGstRegistration(reg)
	query := `
		INSERT INTO gst_registrations (registration_id, company_id, gstin, state_code, registration_type, effective_from, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id) DO UPDATE
		SET gstin = EXCLUDED.gstin,
		    state_code = EXCLUDED.state_code,
		    registration_type = EXCLUDED.registration_type,
		    effective_from = EXCLUDED.effective_from,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RegistrationID,
		m.CompanyID,
		m.GSTIN,
		m.StateCode,
		m.RegistrationType,
		m.EffectiveFrom,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save GST registration for company %s: %w", reg.CompanyID, err)
	}
	return nil
}

// FindRegistration retrieves the company's registration row.
func (r *PgxGstRepository) FindRegistration(ctx context.Context, companyID string) (*domain.GstRegistration, error) {
	query := `
		SELECT registration_id, company_id, gstin, state_code, registration_type, effective_from, created_at, created_by, last_updated_at, last_updated_by
		FROM gst_registrations
		WHERE company_id = $1;
	`
	var m models.GstRegistration
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&m.RegistrationID,
		&m.CompanyID,
		&m.GSTIN,
		&m.StateCode,
		&m.RegistrationType,
		&m.EffectiveFrom,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find GST registration for company %s: %w", companyID, err)
	}
	d := mapping.ToDomainGstRegistration(m)
	return &d, nil
}

const taxRateColumns = `rate_id, company_id, hsn_code, supply_type, cgst_rate, sgst_rate, igst_rate, cess_rate, effective_from, effective_to, created_at, created_by, last_updated_at, last_updated_by`

func scanTaxRate(row pgx.Row) (*domain.GstTaxRate, error) {
	var m models.GstTaxRate
	err := row.Scan(
		&m.RateID,
		&m.CompanyID,
		&m.HSNCode,
		&m.SupplyType,
		&m.CGSTRate,
		&m.SGSTRate,
		&m.IGSTRate,
		&m.CessRate,
		&m.EffectiveFrom,
		&m.EffectiveTo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainGstTaxRate(m)
	return &d, nil
}

// SaveTaxRate inserts a new rate row.
func (r *PgxGstRepository) SaveTaxRate(ctx context.Context, rate domain.GstTaxRate) error {
	m := mapping.ToModelGstTaxRate(rate)
	query := `
		INSERT INTO gst_tax_rates (` + taxRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RateID,
		m.CompanyID,
		m.HSNCode,
		m.SupplyType,
		m.CGSTRate,
		m.SGSTRate,
		m.IGSTRate,
		m.CessRate,
		m.EffectiveFrom,
		m.EffectiveTo,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: rate for HSN %q already exists in this window", apperrors.ErrDuplicate, rate.HSNCode)
		}
		return fmt.Errorf("failed to save tax rate %s: %w", rate.RateID, err)
	}
	return nil
}

// ListTaxRates lists every rate of the company ordered by HSN code.
func (r *PgxGstRepository) ListTaxRates(ctx context.Context, companyID string) ([]domain.GstTaxRate, error) {
	query := `SELECT ` + taxRateColumns + ` FROM gst_tax_rates WHERE company_id = $1 ORDER BY hsn_code, effective_from;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.GstTaxRate
	for rows.Next() {
		rate, err := scanTaxRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax rate row: %w", err)
		}
		rates = append(rates, *rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax rate rows: %w", err)
	}
	return rates, nil
}

// FindRateByHSN resolves the rate effective on the given date. The newest
// effective_from wins when windows overlap.
func (r *PgxGstRepository) FindRateByHSN(ctx context.Context, companyID string, hsnCode string, supplyType domain.SupplyType, on time.Time) (*domain.GstTaxRate, error) {
	query := `
		SELECT ` + taxRateColumns + `
		FROM gst_tax_rates
		WHERE company_id = $1
		  AND hsn_code = $2
		  AND supply_type = $3
		  AND effective_from <= $4
		  AND (effective_to IS NULL OR effective_to >= $4)
		ORDER BY effective_from DESC
		LIMIT 1;
	`
	rate, err := scanTaxRate(r.Pool.QueryRow(ctx, query, companyID, hsnCode, string(supplyType), on))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate for HSN %q: %w", hsnCode, err)
	}
	return rate, nil
}

// SaveLedgerMapping upserts the posting ledger for one tax component.
func (r *PgxGstRepository) SaveLedgerMapping(ctx context.Context, m domain.GstLedgerMapping) error {
	mm := mapping.ToModelGstLedgerMapping(m)
	query := `
		INSERT INTO gst_ledger_mappings (mapping_id, company_id, mapping_type, ledger_name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, mapping_type) DO UPDATE
		SET ledger_name = EXCLUDED.ledger_name,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		mm.MappingID,
		mm.CompanyID,
		mm.MappingType,
		mm.LedgerName,
		mm.CreatedAt,
		mm.CreatedBy,
		mm.LastUpdatedAt,
		mm.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save GST ledger mapping %s: %w", m.MappingType, err)
	}
	return nil
}

// FindLedgerMappings returns every configured mapping keyed by type.
func (r *PgxGstRepository) FindLedgerMappings(ctx context.Context, companyID string) (map[domain.GstMappingType]string, error) {
	query := `SELECT mapping_type, ledger_name FROM gst_ledger_mappings WHERE company_id = $1;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query GST ledger mappings: %w", err)
	}
	defer rows.Close()

	mappings := make(map[domain.GstMappingType]string)
	for rows.Next() {
		var mappingType, ledgerName string
		if err := rows.Scan(&mappingType, &ledgerName); err != nil {
			return nil, fmt.Errorf("failed to scan GST mapping row: %w", err)
		}
		mappings[domain.GstMappingType(mappingType)] = ledgerName
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating GST mapping rows: %w", err)
	}
	return mappings, nil
}
