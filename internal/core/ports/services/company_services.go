package services

import (
	"context"

	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/dto"
)

// CompanyAuthorizerSvc checks a user's role within a company.
// Every company-scoped service goes through this before touching data.
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction returns ErrNotFound when the user has no link to
	// the company, or ErrForbidden when the linked role is insufficient.
	AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.UserCompanyRole) error
}

// CompanyReaderSvc defines read operations for company data.
type CompanyReaderSvc interface {
	GetCompanyByID(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error)
}

// CompanyWriterSvc defines write operations for company data.
type CompanyWriterSvc interface {
	// CreateCompany creates a company and makes the creator its OWNER.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)

	// AddUserToCompany links a user to the company. Requires ADMIN.
	AddUserToCompany(ctx context.Context, companyID string, req dto.AddUserToCompanyRequest, requestingUserID string) error
}

// CompanySvcFacade combines all company-related service interfaces.
type CompanySvcFacade interface {
	CompanyAuthorizerSvc
	CompanyReaderSvc
	CompanyWriterSvc
}
