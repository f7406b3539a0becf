package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
	"github.com/startupbooks/startup_books_app/internal/middleware"
)

// ledgerHandler handles HTTP requests for the chart of accounts.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

func (h *ledgerHandler) createLedgerGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateLedgerGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createLedgerGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	group, err := h.ledgerService.CreateLedgerGroup(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "createLedgerGroup", err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *ledgerHandler) updateLedgerGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	groupID := c.Param("group_id")

	var req dto.UpdateLedgerGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateLedgerGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	group, err := h.ledgerService.UpdateLedgerGroup(c.Request.Context(), companyID, groupID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "updateLedgerGroup", err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *ledgerHandler) deleteLedgerGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	groupID := c.Param("group_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteLedgerGroup(c.Request.Context(), companyID, groupID, userID); err != nil {
		respondWithServiceError(c, logger, "deleteLedgerGroup", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ledgerHandler) getLedgerGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	groupID := c.Param("group_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	group, err := h.ledgerService.GetLedgerGroupByID(c.Request.Context(), companyID, groupID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "getLedgerGroup", err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *ledgerHandler) listLedgerGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	groups, err := h.ledgerService.ListLedgerGroups(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "listLedgerGroups", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *ledgerHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "createLedger", err)
		return
	}
	logger.Info("Ledger created", slog.String("ledger_id", ledger.LedgerID), slog.String("name", ledger.Name))
	c.JSON(http.StatusCreated, ledger)
}

func (h *ledgerHandler) updateLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	ledgerID := c.Param("ledger_id")

	var req dto.UpdateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.UpdateLedger(c.Request.Context(), companyID, ledgerID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "updateLedger", err)
		return
	}
	c.JSON(http.StatusOK, ledger)
}

func (h *ledgerHandler) deleteLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	ledgerID := c.Param("ledger_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteLedger(c.Request.Context(), companyID, ledgerID, userID); err != nil {
		respondWithServiceError(c, logger, "deleteLedger", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	ledgerID := c.Param("ledger_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.GetLedgerByID(c.Request.Context(), companyID, ledgerID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "getLedger", err)
		return
	}
	c.JSON(http.StatusOK, ledger)
}

func (h *ledgerHandler) listLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	ledgers, err := h.ledgerService.ListLedgers(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "listLedgers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ledgers": ledgers})
}

// registerLedgerRoutes registers chart-of-accounts routes under a company.
func registerLedgerRoutes(companyGroup *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	groups := companyGroup.Group("/ledger-groups")
	{
		groups.POST("", h.createLedgerGroup)
		groups.GET("", h.listLedgerGroups)
		groups.GET("/:group_id", h.getLedgerGroup)
		groups.PUT("/:group_id", h.updateLedgerGroup)
		groups.DELETE("/:group_id", h.deleteLedgerGroup)
	}

	ledgers := companyGroup.Group("/ledgers")
	{
		ledgers.POST("", h.createLedger)
		ledgers.GET("", h.listLedgers)
		ledgers.GET("/:ledger_id", h.getLedger)
		ledgers.PUT("/:ledger_id", h.updateLedger)
		ledgers.DELETE("/:ledger_id", h.deleteLedger)
	}
}
