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

// companyService handles business logic related to companies and memberships.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(cr portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: cr}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates a new company and makes the creator the initial owner.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	newCompanyID := uuid.NewString()

	fyStartMonth := req.FYStartMonth
	if fyStartMonth == 0 {
		fyStartMonth = 4 // April, the Indian financial year
	}

	company := domain.Company{
		CompanyID:    newCompanyID,
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		GSTIN:        req.GSTIN,
		StateCode:    req.StateCode,
		FYStartMonth: fyStartMonth,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company in repository", slog.String("error", err.Error()), slog.String("company_name", req.Name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	membership := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: newCompanyID,
		Role:      domain.RoleOwner,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		logger.Error("Failed to add creator as owner to new company", slog.String("error", err.Error()), slog.String("company_id", newCompanyID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator to company: %w", err)
	}

	logger.Info("Company created successfully", slog.String("company_id", newCompanyID), slog.String("creator_user_id", creatorUserID))
	return &company, nil
}

// GetCompanyByID retrieves a company the requesting user is a member of.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find company by ID", slog.String("error", err.Error()), slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}

// AddUserToCompany adds a user to a company with a specific role.
func (s *companyService) AddUserToCompany(ctx context.Context, companyID string, req dto.AddUserToCompanyRequest, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	now := time.Now()
	membership := domain.UserCompany{
		UserID:    req.UserID,
		CompanyID: companyID,
		Role:      req.Role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		logger.Error("Failed to add user to company in repository", slog.String("error", err.Error()), slog.String("target_user_id", req.UserID), slog.String("company_id", companyID))
		return fmt.Errorf("failed to add user %s to company %s: %w", req.UserID, companyID, err)
	}

	logger.Info("User added to company successfully", slog.String("target_user_id", req.UserID), slog.String("company_id", companyID), slog.String("role", string(req.Role)))
	return nil
}

// AuthorizeUserAction checks if a user has the required role (or higher) within a specific company.
// Returns apperrors.ErrNotFound if the user is not a member (existence is not revealed),
// apperrors.ErrForbidden if the member's role is insufficient, nil if authorized.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user not a member of company", slog.String("user_id", userID), slog.String("company_id", companyID))
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user company role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("company_id", companyID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if !role.Satisfies(requiredRole) {
		logger.Warn("Authorization failed: insufficient role", slog.String("user_id", userID), slog.String("company_id", companyID), slog.String("role", string(*role)), slog.String("required_role", string(requiredRole)))
		return fmt.Errorf("%w: requires %s role", apperrors.ErrForbidden, requiredRole)
	}

	return nil
}
