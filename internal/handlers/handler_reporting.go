package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/middleware"
)

// reportingHandler serves the financial statements and book projections.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

var registerCategories = map[domain.VoucherCategory]bool{
	domain.CategoryPayment:      true,
	domain.CategoryReceipt:      true,
	domain.CategoryContra:       true,
	domain.CategoryJournal:      true,
	domain.CategorySalesVoucher: true,
	domain.CategoryPurchaseVch:  true,
	domain.CategoryCreditNote:   true,
	domain.CategoryDebitNote:    true,
	domain.CategoryDeliveryNote: true,
	domain.CategoryReceiptNote:  true,
	domain.CategoryStockJournal: true,
	domain.CategoryMemo:         true,
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	asOf, ok := parseDateQuery(c, "asOf")
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		respondWithServiceError(c, logger, "trialBalance", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) profitAndLoss(c *gin.Context) {
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

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), companyID, from, to, userID)
	if err != nil {
		respondWithServiceError(c, logger, "profitAndLoss", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	asOf, ok := parseDateQuery(c, "asOf")
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		respondWithServiceError(c, logger, "balanceSheet", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) cashFlow(c *gin.Context) {
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

	report, err := h.reportingService.CashFlow(c.Request.Context(), companyID, from, to, userID)
	if err != nil {
		respondWithServiceError(c, logger, "cashFlow", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) ratios(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	asOf, ok := parseDateQuery(c, "asOf")
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.Ratios(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		respondWithServiceError(c, logger, "ratios", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) ledgerBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	ledgerName := c.Query("name")
	if ledgerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}
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

	report, err := h.reportingService.LedgerBook(c.Request.Context(), companyID, ledgerName, from, to, userID)
	if err != nil {
		respondWithServiceError(c, logger, "ledgerBook", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) cashBook(c *gin.Context) {
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

	report, err := h.reportingService.CashBook(c.Request.Context(), companyID, from, to, userID)
	if err != nil {
		respondWithServiceError(c, logger, "cashBook", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) bankBook(c *gin.Context) {
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

	report, err := h.reportingService.BankBook(c.Request.Context(), companyID, from, to, userID)
	if err != nil {
		respondWithServiceError(c, logger, "bankBook", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) dayBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rows, err := h.reportingService.DayBook(c.Request.Context(), companyID, date, userID)
	if err != nil {
		respondWithServiceError(c, logger, "dayBook", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": rows})
}

func (h *reportingHandler) voucherRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	category := domain.VoucherCategory(c.Query("category"))
	if !registerCategories[category] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown voucher category"})
		return
	}
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

	rows, err := h.reportingService.Register(c.Request.Context(), companyID, category, from, to, userID)
	if err != nil {
		respondWithServiceError(c, logger, "voucherRegister", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": rows})
}

// registerReportingRoutes registers the statement and book routes.
func registerReportingRoutes(companyGroup *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := companyGroup.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/cash-flow", h.cashFlow)
		reports.GET("/ratios", h.ratios)
	}

	books := companyGroup.Group("/books")
	{
		books.GET("/ledger", h.ledgerBook)
		books.GET("/cash", h.cashBook)
		books.GET("/bank", h.bankBook)
		books.GET("/day", h.dayBook)
		books.GET("/register", h.voucherRegister)
	}
}
