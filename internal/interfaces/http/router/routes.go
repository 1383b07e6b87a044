package router

import (
	"github.com/ims/backend/internal/interfaces/http/handler"
	"github.com/ims/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the HTTP handlers mounted by the API router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Stock    *handler.StockHandler
	Alert    *handler.AlertHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Supplier *handler.SupplierHandler
	User     *handler.UserHandler
	Report   *handler.ReportHandler
	System   *handler.SystemHandler
}

// RegisterAPIRoutes wires every domain route group into the router.
func RegisterAPIRoutes(r *Router, h Handlers) {
	authRoutes := NewGroup("auth", "/auth")
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/refresh", h.Auth.Refresh)
	authRoutes.GET("/me", h.Auth.Me)
	authRoutes.POST("/change-password", h.Auth.ChangePassword)
	r.Register(authRoutes)

	stockRoutes := NewGroup("stock", "/stock")
	stockRoutes.POST("/in", h.Stock.RecordIn)
	stockRoutes.POST("/out", h.Stock.RecordOut)
	stockRoutes.POST("/adjust", h.Stock.RecordAdjustment)
	stockRoutes.GET("/movements", h.Stock.ListMovements)
	stockRoutes.GET("/movements/:id", h.Stock.GetMovement)
	r.Register(stockRoutes)

	alertRoutes := NewGroup("alerts", "/alerts")
	alertRoutes.GET("", h.Alert.ListActive)
	alertRoutes.GET("/:id", h.Alert.Get)
	alertRoutes.POST("/:id/acknowledge", h.Alert.Acknowledge)
	alertRoutes.POST("/:id/resolve", h.Alert.Resolve)
	r.Register(alertRoutes)

	productRoutes := NewGroup("products", "/products")
	productRoutes.POST("", h.Product.Create)
	productRoutes.GET("", h.Product.List)
	productRoutes.GET("/low-stock", h.Product.ListLowStock)
	productRoutes.GET("/code/:code", h.Product.GetByCode)
	productRoutes.GET("/:id", h.Product.Get)
	productRoutes.GET("/:id/quantity", h.Product.GetQuantity)
	productRoutes.PUT("/:id", h.Product.Update)
	productRoutes.PATCH("/:id/reorder-level", h.Product.SetReorderLevel)
	productRoutes.POST("/:id/activate", h.Product.Activate)
	productRoutes.POST("/:id/deactivate", h.Product.Deactivate)
	productRoutes.POST("/:id/discontinue", h.Product.Discontinue)
	productRoutes.GET("/:id/alerts", h.Alert.ListByProduct)
	productRoutes.DELETE("/:id", h.Product.Delete)
	r.Register(productRoutes)

	categoryRoutes := NewGroup("categories", "/categories")
	categoryRoutes.POST("", h.Category.Create)
	categoryRoutes.GET("", h.Category.List)
	categoryRoutes.GET("/:id", h.Category.Get)
	categoryRoutes.PUT("/:id", h.Category.Update)
	categoryRoutes.DELETE("/:id", h.Category.Delete)
	r.Register(categoryRoutes)

	supplierRoutes := NewGroup("suppliers", "/suppliers")
	supplierRoutes.POST("", h.Supplier.Create)
	supplierRoutes.GET("", h.Supplier.List)
	supplierRoutes.GET("/:id", h.Supplier.Get)
	supplierRoutes.PUT("/:id", h.Supplier.Update)
	supplierRoutes.POST("/:id/activate", h.Supplier.Activate)
	supplierRoutes.POST("/:id/deactivate", h.Supplier.Deactivate)
	supplierRoutes.DELETE("/:id", h.Supplier.Delete)
	r.Register(supplierRoutes)

	userRoutes := NewGroup("users", "/users")
	userRoutes.Use(middleware.AdminOnly())
	userRoutes.POST("", h.User.Create)
	userRoutes.GET("", h.User.List)
	userRoutes.GET("/:id", h.User.Get)
	userRoutes.PUT("/:id", h.User.Update)
	userRoutes.POST("/:id/reset-password", h.User.ResetPassword)
	userRoutes.POST("/:id/unlock", h.User.Unlock)
	userRoutes.POST("/:id/activate", h.User.Activate)
	userRoutes.POST("/:id/deactivate", h.User.Deactivate)
	userRoutes.DELETE("/:id", h.User.Delete)
	r.Register(userRoutes)

	reportRoutes := NewGroup("reports", "/reports")
	reportRoutes.GET("/dashboard", h.Report.Dashboard)
	reportRoutes.GET("/stock-summary", h.Report.StockSummary)
	reportRoutes.GET("/movement-summary", h.Report.MovementSummary)
	reportRoutes.GET("/movement-trend", h.Report.DailyMovementTrend)
	reportRoutes.GET("/top-outbound", h.Report.TopOutboundProducts)
	reportRoutes.GET("/stock-value-by-category", h.Report.StockValueByCategory)
	reportRoutes.GET("/low-stock", h.Report.LowStock)
	r.Register(reportRoutes)

	systemRoutes := NewGroup("system", "/system")
	systemRoutes.GET("/health", h.System.Health)
	systemRoutes.GET("/info", h.System.GetSystemInfo)
	r.Register(systemRoutes)
}
