package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
	"github.com/startupbooks/startup_books_app/internal/middleware"
)

// billHandler handles bill tracking and settlement requests.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

func newBillHandler(billService portssvc.BillSvcFacade) *billHandler {
	return &billHandler{billService: billService}
}

// billTypeQuery parses the ?type= parameter, defaulting to RECEIVABLE.
func billTypeQuery(c *gin.Context) (domain.BillType, bool) {
	raw := c.DefaultQuery("type", string(domain.BillReceivable))
	bt := domain.BillType(raw)
	if bt != domain.BillReceivable && bt != domain.BillPayable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be RECEIVABLE or PAYABLE"})
		return "", false
	}
	return bt, true
}

func (h *billHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "createBill", err)
		return
	}

	logger.Info("Bill created", slog.String("bill_id", bill.BillID), slog.String("number", bill.Number))
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

func (h *billHandler) getBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	billID := c.Param("bill_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	bill, err := h.billService.GetBillByID(c.Request.Context(), companyID, billID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "getBill", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

func (h *billHandler) listOpenBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	billType, ok := billTypeQuery(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	bills, err := h.billService.ListOpenBills(c.Request.Context(), companyID, billType, userID)
	if err != nil {
		respondWithServiceError(c, logger, "listOpenBills", err)
		return
	}

	responses := make([]dto.BillResponse, len(bills))
	for i := range bills {
		responses[i] = dto.ToBillResponse(&bills[i])
	}
	c.JSON(http.StatusOK, gin.H{"bills": responses})
}

func (h *billHandler) settleBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	billID := c.Param("bill_id")

	var req dto.SettleBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for settleBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	bill, err := h.billService.SettleBill(c.Request.Context(), companyID, billID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "settleBill", err)
		return
	}

	logger.Info("Bill settled",
		slog.String("bill_id", bill.BillID),
		slog.String("status", string(bill.Status)),
		slog.String("outstanding", bill.OutstandingAmount.String()))
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

func (h *billHandler) cancelBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	billID := c.Param("bill_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.billService.CancelBill(c.Request.Context(), companyID, billID, userID); err != nil {
		respondWithServiceError(c, logger, "cancelBill", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *billHandler) listSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	billID := c.Param("bill_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	settlements, err := h.billService.ListSettlements(c.Request.Context(), companyID, billID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "listSettlements", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settlements": settlements})
}

func (h *billHandler) agingReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	billType, ok := billTypeQuery(c)
	if !ok {
		return
	}
	asOf, ok := parseDateQuery(c, "asOf")
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	report, err := h.billService.AgingReport(c.Request.Context(), companyID, billType, asOf, userID)
	if err != nil {
		respondWithServiceError(c, logger, "agingReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *billHandler) outstandingReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	billType, ok := billTypeQuery(c)
	if !ok {
		return
	}
	asOf, ok := parseDateQuery(c, "asOf")
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	report, err := h.billService.OutstandingReport(c.Request.Context(), companyID, billType, asOf, userID)
	if err != nil {
		respondWithServiceError(c, logger, "outstandingReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// registerBillRoutes registers bill lifecycle and aging report routes.
func registerBillRoutes(companyGroup *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := newBillHandler(billService)

	bills := companyGroup.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listOpenBills)
		bills.GET("/:bill_id", h.getBill)
		bills.POST("/:bill_id/settle", h.settleBill)
		bills.POST("/:bill_id/cancel", h.cancelBill)
		bills.GET("/:bill_id/settlements", h.listSettlements)
	}

	reports := companyGroup.Group("/reports/bills")
	{
		reports.GET("/aging", h.agingReport)
		reports.GET("/outstanding", h.outstandingReport)
	}
}
