package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/startupbooks/startup_books_app/internal/core/ports/services"
	"github.com/startupbooks/startup_books_app/internal/middleware"
	"github.com/startupbooks/startup_books_app/pkg/config"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware and rate limiting to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), newRateLimiter(cfg))

	registerCompanyRoutes(v1, services.Company)

	// Everything below is scoped to one company
	companyGroup := v1.Group("/companies/:company_id")
	registerLedgerRoutes(companyGroup, services.Ledger)
	registerVoucherRoutes(companyGroup, services.Voucher, services.Inventory)
	registerGstRoutes(companyGroup, services.Gst)
	registerBillRoutes(companyGroup, services.Bill)
	registerReportingRoutes(companyGroup, services.Reporting)
	registerCostCentreRoutes(companyGroup, services.CostCentre)
}

// newRateLimiter builds an in-memory per-IP limiter from the configured rate.
func newRateLimiter(cfg *config.Config) gin.HandlerFunc {
	format := cfg.RateLimitFormat
	if format == "" {
		format = "300-M"
	}
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("300-M")
	}
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}
