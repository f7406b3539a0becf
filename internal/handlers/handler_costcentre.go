package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
	"github.com/startupbooks/startup_books_app/internal/middleware"
)

// costCentreHandler handles the cost dimension and budget routes.
type costCentreHandler struct {
	costCentreService portssvc.CostCentreSvcFacade
}

func newCostCentreHandler(costCentreService portssvc.CostCentreSvcFacade) *costCentreHandler {
	return &costCentreHandler{costCentreService: costCentreService}
}

func (h *costCentreHandler) createCostCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateCostCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCostCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	category, err := h.costCentreService.CreateCostCategory(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "createCostCategory", err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *costCentreHandler) listCostCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	categories, err := h.costCentreService.ListCostCategories(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "listCostCategories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *costCentreHandler) createCostCentre(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateCostCentreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCostCentre", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	centre, err := h.costCentreService.CreateCostCentre(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "createCostCentre", err)
		return
	}
	c.JSON(http.StatusCreated, centre)
}

func (h *costCentreHandler) listCostCentres(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	centres, err := h.costCentreService.ListCostCentres(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "listCostCentres", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cost_centres": centres})
}

func (h *costCentreHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	budget, err := h.costCentreService.CreateBudget(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "createBudget", err)
		return
	}
	c.JSON(http.StatusCreated, budget)
}

func (h *costCentreHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	budgets, err := h.costCentreService.ListBudgets(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "listBudgets", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

func (h *costCentreHandler) budgetVariance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rows, err := h.costCentreService.BudgetVariance(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "budgetVariance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": rows})
}

func (h *costCentreHandler) costCentreSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	from, ok := parseRequiredDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rows, err := h.costCentreService.CostCentreSummary(c.Request.Context(), companyID, from, to, userID)
	if err != nil {
		respondWithServiceError(c, logger, "costCentreSummary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cost_centres": rows})
}

// registerCostCentreRoutes registers cost dimension, budget and variance routes.
func registerCostCentreRoutes(companyGroup *gin.RouterGroup, costCentreService portssvc.CostCentreSvcFacade) {
	h := newCostCentreHandler(costCentreService)

	companyGroup.POST("/cost-categories", h.createCostCategory)
	companyGroup.GET("/cost-categories", h.listCostCategories)
	companyGroup.POST("/cost-centres", h.createCostCentre)
	companyGroup.GET("/cost-centres", h.listCostCentres)
	companyGroup.POST("/budgets", h.createBudget)
	companyGroup.GET("/budgets", h.listBudgets)

	reports := companyGroup.Group("/reports")
	{
		reports.GET("/budget-variance", h.budgetVariance)
		reports.GET("/cost-centres", h.costCentreSummary)
	}
}
