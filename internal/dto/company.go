package dto

import (
	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// CreateCompanyRequest creates a tenant. The creator becomes its OWNER.
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
	GSTIN        string `json:"gstin,omitempty" binding:"omitempty,len=15"`
	StateCode    string `json:"stateCode,omitempty" binding:"omitempty,len=2"`
	FYStartMonth int    `json:"fyStartMonth,omitempty" binding:"omitempty,min=1,max=12"`
}

// AddUserToCompanyRequest links a user to a company with a role.
type AddUserToCompanyRequest struct {
	UserID string                 `json:"userID" binding:"required"`
	Role   domain.UserCompanyRole `json:"role" binding:"required,companyrole"`
}
