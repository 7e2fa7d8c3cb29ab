package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "taxmitra/docs"
	"taxmitra/internal/config"
	"taxmitra/internal/domain"
	"taxmitra/internal/handler"
	"taxmitra/internal/middleware"
	"taxmitra/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	slabH *handler.SlabHandler,
	entryH *handler.EntryHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	tax := v1.Group("/tax")
	tax.Use(middleware.AuthMiddleware(authSvc))

	// Slab registry routes
	slabs := tax.Group("/slabs")
	slabs.GET("", slabH.List)
	slabs.POST("", slabH.Create)
	slabs.POST("/bulk-create", middleware.RequireRole(domain.RoleAdmin), slabH.BulkSeed)
	slabs.GET("/active/list", slabH.ListActive)
	slabs.GET("/default/get", slabH.GetDefault)
	slabs.GET("/:id", slabH.GetByID)
	slabs.PUT("/:id", slabH.Update)
	slabs.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), slabH.Delete)
	slabs.PATCH("/:id/toggle-status", slabH.ToggleStatus)

	// Tax entry routes
	entries := tax.Group("/entries")
	entries.GET("", entryH.List)
	entries.POST("", entryH.Create)
	entries.GET("/export", entryH.ExportCSV)
	entries.GET("/:id", entryH.GetByID)
	entries.PUT("/:id", entryH.Update)
	entries.DELETE("/:id", entryH.Delete)
	entries.PATCH("/:id/status", entryH.UpdateStatus)

	// Return generation and summary routes
	reports := tax.Group("/reports")
	reports.POST("/gstr1", reportH.GenerateGSTR1)
	reports.POST("/gstr2", reportH.GenerateGSTR2)
	reports.POST("/gstr1/export", reportH.ExportGSTR1)

	tax.GET("/summary", reportH.Summary)

	return r
}
