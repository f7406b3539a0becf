package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/dto"
	"github.com/startupbooks/startup_books_app/internal/middleware"
)

// voucherHandler handles HTTP requests for voucher types and the voucher
// draft/post/cancel lifecycle.
type voucherHandler struct {
	voucherService   portssvc.VoucherSvcFacade
	inventoryService portssvc.InventorySvcFacade
}

func newVoucherHandler(voucherService portssvc.VoucherSvcFacade, inventoryService portssvc.InventorySvcFacade) *voucherHandler {
	return &voucherHandler{
		voucherService:   voucherService,
		inventoryService: inventoryService,
	}
}

func (h *voucherHandler) createVoucherType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateVoucherTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createVoucherType", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	vt, err := h.voucherService.CreateVoucherType(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "createVoucherType", err)
		return
	}
	c.JSON(http.StatusCreated, vt)
}

func (h *voucherHandler) listVoucherTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	types, err := h.voucherService.ListVoucherTypes(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "listVoucherTypes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voucherTypes": types})
}

func (h *voucherHandler) createDraftVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDraftVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CreateDraftVoucher(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, "createDraftVoucher", err)
		return
	}

	logger.Info("Draft voucher created", slog.String("voucher_id", voucher.VoucherID), slog.String("number", voucher.Number))
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	voucherID := c.Param("voucher_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), companyID, voucherID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "getVoucher", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listVouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	page, err := h.voucherService.ListVouchers(c.Request.Context(), companyID, userID, params)
	if err != nil {
		respondWithServiceError(c, logger, "listVouchers", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *voucherHandler) postVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	voucherID := c.Param("voucher_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	result, err := h.voucherService.PostVoucher(c.Request.Context(), companyID, voucherID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "postVoucher", err)
		return
	}

	logger.Info("Voucher posted",
		slog.String("voucher_id", result.VoucherID),
		slog.Int("entries_created", result.EntriesCreated),
		slog.Bool("gst_posted", result.GstPosted))
	c.JSON(http.StatusOK, result)
}

func (h *voucherHandler) cancelVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	voucherID := c.Param("voucher_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	result, err := h.voucherService.CancelVoucher(c.Request.Context(), companyID, voucherID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "cancelVoucher", err)
		return
	}

	if result.ReversingVoucherID != nil {
		logger.Info("Voucher reversed",
			slog.String("voucher_id", result.VoucherID),
			slog.String("reversing_voucher_id", *result.ReversingVoucherID))
	} else {
		logger.Info("Draft voucher cancelled", slog.String("voucher_id", result.VoucherID))
	}
	c.JSON(http.StatusOK, result)
}

func (h *voucherHandler) getStockBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	itemName := c.Query("item")
	warehouseName := c.Query("warehouse")
	if itemName == "" || warehouseName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item and warehouse query parameters are required"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	balance, err := h.inventoryService.GetStockBalance(c.Request.Context(), companyID, itemName, warehouseName, userID)
	if err != nil {
		respondWithServiceError(c, logger, "getStockBalance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"itemName": itemName, "warehouseName": warehouseName, "quantity": balance})
}

func (h *voucherHandler) getStockSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	summary, err := h.inventoryService.GetStockSummary(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithServiceError(c, logger, "getStockSummary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": summary})
}

// registerVoucherRoutes registers voucher lifecycle and derived stock routes.
func registerVoucherRoutes(companyGroup *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade, inventoryService portssvc.InventorySvcFacade) {
	h := newVoucherHandler(voucherService, inventoryService)

	types := companyGroup.Group("/voucher-types")
	{
		types.POST("", h.createVoucherType)
		types.GET("", h.listVoucherTypes)
	}

	vouchers := companyGroup.Group("/vouchers")
	{
		vouchers.POST("", h.createDraftVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucher_id", h.getVoucher)
		vouchers.POST("/:voucher_id/post", h.postVoucher)
		vouchers.POST("/:voucher_id/cancel", h.cancelVoucher)
	}

	stock := companyGroup.Group("/stock")
	{
		stock.GET("", h.getStockSummary)
		stock.GET("/balance", h.getStockBalance)
	}
}
