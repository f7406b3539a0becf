package repositories

import (
	"context"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// CompanyRepositoryFacade provides access to tenant data.
type CompanyRepositoryFacade interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompanyRole, error)
	AddUserToCompany(ctx context.Context, link domain.UserCompany) error
}
