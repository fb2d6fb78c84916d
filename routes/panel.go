package routes

import (
	panel_handlers "formu.link/handlers/panel"
	"formu.link/middlewares"
	"formu.link/models"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları tanımlar.
// Editor ve admin rollerinin erişimine izin verilir.
func registerPanelRoutes(app *fiber.App) {
	panelHomeHandler := panel_handlers.NewPanelHomeHandler()
	formHandler := panel_handlers.NewPanelFormHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.StatusMiddleware,
		middlewares.RequireRole(models.RoleAdmin, models.RoleEditor),
	)

	panelGroup.Get("/home", panelHomeHandler.PanelHomeHandler)

	// Kullanıcının kendi formları ve builder sayfası.
	panelGroup.Get("/forms", formHandler.ListForms)
	panelGroup.Get("/forms/builder", formHandler.ShowBuilder)
	panelGroup.Get("/forms/builder/:id", formHandler.ShowBuilder)
	panelGroup.Post("/forms/delete/:id", formHandler.DeleteForm)
	panelGroup.Delete("/forms/delete/:id", formHandler.DeleteForm)
	panelGroup.Get("/forms/:id/submissions", formHandler.ListSubmissions)
}
