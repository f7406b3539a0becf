package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
	"github.com/startupbooks/startup_books_app/internal/middleware"
)

// gstHandler handles GST configuration and tax preview requests.
type gstHandler struct {
	gstService portssvc.GstSvcFacade
}

func newGstHandler(gstService portssvc.GstSvcFacade) *gstHandler {
	return &gstHandler{gstService: gstService}
}

func (h *gstHandler) saveRegistration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateGstRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for saveRegistration", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	reg, err := h.gstService.SaveRegistration(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "saveRegistration", err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

func (h *gstHandler) getRegistration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	reg, err := h.gstService.GetRegistration(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "getRegistration", err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

func (h *gstHandler) createTaxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTaxRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rate, err := h.gstService.CreateTaxRate(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "createTaxRate", err)
		return
	}
	c.JSON(http.StatusCreated, rate)
}

func (h *gstHandler) listTaxRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rates, err := h.gstService.ListTaxRates(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "listTaxRates", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

func (h *gstHandler) saveLedgerMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateGstLedgerMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for saveLedgerMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	mapping, err := h.gstService.SaveLedgerMapping(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "saveLedgerMapping", err)
		return
	}
	c.JSON(http.StatusOK, mapping)
}

// computeTax previews the tax split for a document without posting anything.
func (h *gstHandler) computeTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.ComputeTaxDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for computeTax", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if _, ok := requireUserID(c, logger); !ok {
		return
	}

	lines := make([]domain.InventoryLine, len(req.Lines))
	for i, l := range req.Lines {
		rate := l.GstRate
		lines[i] = domain.InventoryLine{
			Quantity: decimal.NewFromInt(1),
			Rate:     l.TaxableValue,
			Amount:   l.TaxableValue,
			GstRate:  &rate,
		}
	}

	taxLines, totals, err := h.gstService.ComputeDocument(c.Request.Context(), companyID, lines, time.Now().UTC(), req.PlaceOfSupply)
	if err != nil {
		respondWithServiceError(c, logger, "computeTax", err)
		return
	}

	c.JSON(http.StatusOK, dto.TaxComputationResponse{
		Interstate: !totals.IGST.IsZero(),
		Lines:      taxLines,
		Totals:     totals,
	})
}

// registerGstRoutes registers GST configuration routes under a company.
func registerGstRoutes(companyGroup *gin.RouterGroup, gstService portssvc.GstSvcFacade) {
	h := newGstHandler(gstService)

	gst := companyGroup.Group("/gst")
	{
		gst.PUT("/registration", h.saveRegistration)
		gst.GET("/registration", h.getRegistration)
		gst.POST("/rates", h.createTaxRate)
		gst.GET("/rates", h.listTaxRates)
		gst.PUT("/mappings", h.saveLedgerMapping)
		gst.POST("/compute", h.computeTax)
	}
}
