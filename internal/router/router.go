package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstinvoice/internal/handler"
	"gstinvoice/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health  *handler.HealthHandler
	Entity  *handler.EntityHandler
	Import  *handler.ImportHandler
	Invoice *handler.InvoiceHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, corsOrigins []string, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Stateless calculation
	v1.POST("/invoices/preview", h.Invoice.Preview)

	entities := v1.Group("/entities")
	entities.POST("", h.Entity.Create)
	entities.GET("", h.Entity.List)
	entities.GET("/:id", h.Entity.GetByID)
	entities.PUT("/:id", h.Entity.Update)
	entities.DELETE("/:id", h.Entity.Delete)

	// Storefront imports
	entity := entities.Group("/:id")
	entity.POST("/imports/orders", h.Import.ImportOrders)
	entity.POST("/imports/products", h.Import.ImportProducts)
	entity.GET("/orders", h.Import.ListOrders)
	entity.GET("/products", h.Import.ListProducts)
	entity.POST("/orders/:order_id/invoice", h.Invoice.CreateFromOrder)

	// Invoices
	invoices := entity.Group("/invoices")
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/export", h.Invoice.Export)
	invoices.GET("/:invoice_id", h.Invoice.GetByID)
	invoices.PUT("/:invoice_id", h.Invoice.Update)
	invoices.POST("/:invoice_id/finalize", h.Invoice.Finalize)
	invoices.GET("/:invoice_id/html", h.Invoice.HTML)
	invoices.GET("/:invoice_id/pdf", h.Invoice.PDF)
	invoices.GET("/:invoice_id/download", h.Invoice.Download)

	return r
}
