package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/sufra/internal/config"
	"github.com/example/sufra/internal/handlers"
	"github.com/example/sufra/internal/middleware"
	"github.com/example/sufra/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	orderService := services.NewOrderService(db, telegramService)

	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	branchHandler := handlers.NewBranchHandler(db)
	productHandler := handlers.NewProductHandler(db)
	orderHandler := handlers.NewOrderHandler(db, orderService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public catalog reads
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/categories/:id", catalogHandler.GetCategory)
	api.Get("/branches", branchHandler.ListBranches)
	api.Get("/branches/:id", branchHandler.GetBranch)
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)

	// Order placement: guests allowed, token used when present
	api.Post("/orders", middleware.OptionalAuthMiddleware(cfg), orderHandler.CreateOrder)

	// Customer order history
	protected := api.Group("", middleware.AuthMiddleware(cfg))
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	// Staff-only catalog management and order lifecycle
	staff := api.Group("", middleware.AuthMiddleware(cfg), middleware.RequireStaff(db))
	staff.Post("/categories", catalogHandler.CreateCategory)
	staff.Put("/categories/:id", catalogHandler.UpdateCategory)
	staff.Delete("/categories/:id", catalogHandler.DeleteCategory)
	staff.Post("/branches", branchHandler.CreateBranch)
	staff.Put("/branches/:id", branchHandler.UpdateBranch)
	staff.Delete("/branches/:id", branchHandler.DeleteBranch)
	staff.Post("/products", productHandler.CreateProduct)
	staff.Put("/products/:id", productHandler.UpdateProduct)
	staff.Delete("/products/:id", productHandler.DeleteProduct)
	staff.Patch("/orders/:id/status", orderHandler.UpdateStatus)
}
