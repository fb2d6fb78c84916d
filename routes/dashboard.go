package routes

import (
	handlers "formu.link/handlers/dashboard"
	"formu.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları tanımlar.
// Sadece admin rolü erişebilir.
func registerDashboardRoutes(app *fiber.App) {
	homeHandler := handlers.NewHomeHandler()
	userHandler := handlers.NewUserHandler()
	formHandler := handlers.NewFormHandler()
	categoryHandler := handlers.NewCategoryHandler()
	auditHandler := handlers.NewAuditHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.StatusMiddleware,
		middlewares.RequireAdmin(),
	)

	dashboardGroup.Get("/home", homeHandler.HomePage)

	// Kullanıcı yönetimi.
	dashboardGroup.Get("/users", userHandler.ListUsers)
	dashboardGroup.Get("/users/create", userHandler.ShowCreateUser)
	dashboardGroup.Post("/users/create", userHandler.CreateUser)
	dashboardGroup.Post("/users/active/:id", userHandler.SetUserActive)

	// Form yönetimi (tüm formlar).
	dashboardGroup.Get("/forms", formHandler.ListForms)
	dashboardGroup.Post("/forms/delete/:id", formHandler.DeleteForm)
	dashboardGroup.Delete("/forms/delete/:id", formHandler.DeleteForm)

	// Kategori yönetimi.
	dashboardGroup.Get("/categories", categoryHandler.ListCategories)
	dashboardGroup.Post("/categories/create", categoryHandler.CreateCategory)
	dashboardGroup.Post("/categories/update/:id", categoryHandler.UpdateCategory)
	dashboardGroup.Post("/categories/delete/:id", categoryHandler.DeleteCategory)
	dashboardGroup.Delete("/categories/delete/:id", categoryHandler.DeleteCategory)

	// İşlem kayıtları.
	dashboardGroup.Get("/audit", auditHandler.ListLogs)
}
