package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printdesk/daybook-api/internal/config"
	"github.com/printdesk/daybook-api/internal/presentation/http/handler"
	"github.com/printdesk/daybook-api/internal/presentation/http/middleware"
	"github.com/printdesk/daybook-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Ledger   *handler.LedgerHandler
	Report   *handler.ReportHandler
	DaySheet *handler.DaySheetHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)

	// Service catalog
	services := protected.Group("/services")
	{
		services.GET("", h.Catalog.List)
		services.POST("", h.Catalog.Create)
		services.GET("/:id", h.Catalog.Get)
		services.PUT("/:id", h.Catalog.Update)
		services.DELETE("/:id", h.Catalog.Delete)
	}

	// Day-book transactions
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Ledger.List)
		transactions.POST("", h.Ledger.Create)
		transactions.POST("/multi", h.Ledger.CreateMulti)
		transactions.GET("/today", h.Ledger.Today)
		transactions.DELETE("/:id", h.Ledger.Delete)
	}

	// Revenue reports
	reports := protected.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/monthly", h.Report.Monthly)
		reports.GET("/daily/export", h.Report.ExportDaily)
		reports.GET("/monthly/export", h.Report.ExportMonthly)
	}

	// Day sheet and printer
	protected.GET("/daysheet", h.DaySheet.Get)
	protected.POST("/daysheet/print", h.DaySheet.Print)
	protected.GET("/printer/status", h.DaySheet.PrinterStatus)
}
