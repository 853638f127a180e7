package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/handlers"
)

type Deps struct {
	DB *gorm.DB

	AuthHandler            *handlers.AuthHandler
	CategoryHandler        *handlers.CategoryHandler
	LaboratoryHandler      *handlers.LaboratoryHandler
	SupplierHandler        *handlers.SupplierHandler
	ProductHandler         *handlers.ProductHandler
	ExpiringProductHandler *handlers.ExpiringProductHandler
	InvoiceHandler         *handlers.InvoiceHandler
	InvoiceLineHandler     *handlers.InvoiceLineHandler
	PurchaseHandler        *handlers.PurchaseHandler
	PurchaseLineHandler    *handlers.PurchaseLineHandler
	InventoryHandler       *handlers.InventoryHandler
	UserHandler            *handlers.UserHandler
	ReportsHandler         *handlers.ReportsHandler
	DashboardHandler       *handlers.DashboardHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/recover-pin", d.AuthHandler.RecoverPin)

	categories := v1.Group("/categories")
	categories.GET("", d.CategoryHandler.GetCategories)
	categories.GET("/:id", d.CategoryHandler.GetCategory)
	categories.GET("/name/:name", d.CategoryHandler.GetCategoriesByName)
	categories.POST("", d.CategoryHandler.CreateCategory)
	categories.PUT("/:id", d.CategoryHandler.PutCategory)
	categories.DELETE("/:id", d.CategoryHandler.DeleteCategory)

	laboratories := v1.Group("/laboratories")
	laboratories.GET("", d.LaboratoryHandler.GetLaboratories)
	laboratories.GET("/:id", d.LaboratoryHandler.GetLaboratory)
	laboratories.GET("/name/:name", d.LaboratoryHandler.GetLaboratoriesByName)
	laboratories.POST("", d.LaboratoryHandler.CreateLaboratory)
	laboratories.PUT("/:id", d.LaboratoryHandler.PutLaboratory)
	laboratories.DELETE("/:id", d.LaboratoryHandler.DeleteLaboratory)

	suppliers := v1.Group("/suppliers")
	suppliers.GET("", d.SupplierHandler.GetSuppliers)
	suppliers.GET("/search", d.SupplierHandler.SearchSuppliers)
	suppliers.GET("/:id", d.SupplierHandler.GetSupplier)
	suppliers.POST("", d.SupplierHandler.CreateSupplier)
	suppliers.PUT("/:id", d.SupplierHandler.PutSupplier)
	suppliers.DELETE("/:id", d.SupplierHandler.DeleteSupplier)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/low-stock", d.ProductHandler.GetLowStockProducts)
	products.GET("/expiring-soon", d.ProductHandler.GetExpiringSoonProducts)
	products.GET("/name/:name", d.ProductHandler.GetProductsByName)
	products.GET("/category/:id", d.ProductHandler.GetProductsByCategory)
	products.GET("/category/:id/name/:name", d.ProductHandler.GetProductsByCategoryAndName)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PUT("/:id", d.ProductHandler.PutProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)

	expiring := v1.Group("/expiring-products")
	expiring.GET("", d.ExpiringProductHandler.GetExpiringProducts)
	expiring.GET("/:id", d.ExpiringProductHandler.GetExpiringProduct)
	expiring.POST("", d.ExpiringProductHandler.CreateExpiringProduct)
	expiring.PUT("/:id", d.ExpiringProductHandler.PutExpiringProduct)
	expiring.DELETE("/:id", d.ExpiringProductHandler.DeleteExpiringProduct)

	invoices := v1.Group("/invoices")
	invoices.GET("", d.InvoiceHandler.GetInvoices)
	invoices.GET("/range", d.InvoiceHandler.GetInvoicesByRange)
	invoices.GET("/:id", d.InvoiceHandler.GetInvoice)
	invoices.POST("", d.InvoiceHandler.CreateInvoice)
	invoices.PUT("/:id", d.InvoiceHandler.PutInvoice)
	invoices.DELETE("/:id", d.InvoiceHandler.DeleteInvoice)

	invoiceLines := v1.Group("/invoice-lines")
	invoiceLines.GET("", d.InvoiceLineHandler.GetInvoiceLines)
	invoiceLines.GET("/invoice/:id", d.InvoiceLineHandler.GetInvoiceLinesByInvoice)
	invoiceLines.GET("/:id", d.InvoiceLineHandler.GetInvoiceLine)
	invoiceLines.POST("", d.InvoiceLineHandler.CreateInvoiceLine)
	invoiceLines.PUT("/:id", d.InvoiceLineHandler.PutInvoiceLine)
	invoiceLines.DELETE("/:id", d.InvoiceLineHandler.DeleteInvoiceLine)

	purchases := v1.Group("/purchases")
	purchases.GET("", d.PurchaseHandler.GetPurchases)
	purchases.GET("/supplier/:id", d.PurchaseHandler.GetPurchasesBySupplier)
	purchases.GET("/:id", d.PurchaseHandler.GetPurchase)
	purchases.POST("", d.PurchaseHandler.CreatePurchase)
	purchases.PUT("/:id", d.PurchaseHandler.PutPurchase)
	purchases.DELETE("/:id", d.PurchaseHandler.DeletePurchase)

	purchaseLines := v1.Group("/purchase-lines")
	purchaseLines.GET("", d.PurchaseLineHandler.GetPurchaseLines)
	purchaseLines.GET("/purchase/:id", d.PurchaseLineHandler.GetPurchaseLinesByPurchase)
	purchaseLines.GET("/:id", d.PurchaseLineHandler.GetPurchaseLine)
	purchaseLines.POST("", d.PurchaseLineHandler.CreatePurchaseLine)
	purchaseLines.PUT("/:id", d.PurchaseLineHandler.PutPurchaseLine)
	purchaseLines.DELETE("/:id", d.PurchaseLineHandler.DeletePurchaseLine)

	inventory := v1.Group("/inventory")
	inventory.GET("", d.InventoryHandler.GetMovements)
	inventory.GET("/product/:id", d.InventoryHandler.GetMovementsByProduct)
	inventory.GET("/:id", d.InventoryHandler.GetMovement)
	inventory.POST("", d.InventoryHandler.CreateMovement)
	inventory.PUT("/:id", d.InventoryHandler.PutMovement)
	inventory.DELETE("/:id", d.InventoryHandler.DeleteMovement)

	users := v1.Group("/users")
	users.GET("", d.UserHandler.GetUsers)
	users.GET("/search", d.UserHandler.SearchUsers)
	users.GET("/:id", d.UserHandler.GetUser)
	users.POST("", d.UserHandler.CreateUser)
	users.PUT("/:id", d.UserHandler.PutUser)
	users.DELETE("/:id", d.UserHandler.DeleteUser)

	reports := v1.Group("/reports")
	reports.GET("/monthly-revenue", d.ReportsHandler.GetMonthlyRevenue)
	reports.GET("/top-laboratories", d.ReportsHandler.GetTopLaboratories)
	reports.GET("/top-categories", d.ReportsHandler.GetTopCategories)
	reports.GET("/top-products", d.ReportsHandler.GetTopProducts)
	reports.GET("/dashboard", d.DashboardHandler.GetDashboard)
}
