package routes

import (
	api_handlers "formu.link/handlers/api"
	"formu.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes /api altındaki REST uçlarını tanımlar.
// Kimlik doğrulama bearer token iledir; viewer rolü sadece GET yapabilir.
func registerAPIRoutes(app *fiber.App) {
	authHandler := api_handlers.NewAuthHandler()
	formHandler := api_handlers.NewFormHandler()
	draftHandler := api_handlers.NewDraftHandler()
	versionHandler := api_handlers.NewVersionHandler()

	apiGroup := app.Group("/api")

	apiGroup.Post("/auth/login", authHandler.Login)

	protected := apiGroup.Group("")
	protected.Use(middlewares.APIAuthMiddleware)

	// Okuma uçları (tüm roller).
	// check-title, /:id rotasından önce tanımlanmalı.
	protected.Get("/forms/check-title", formHandler.CheckTitle)
	protected.Get("/forms/:id", formHandler.GetForm)
	protected.Get("/forms/:id/drafts", draftHandler.ListDrafts)
	protected.Get("/forms/:id/versions", versionHandler.ListVersions)

	// Yazma uçları (editor ve admin).
	editor := protected.Group("")
	editor.Use(middlewares.APIRequireEditor)
	editor.Post("/forms", formHandler.SaveForm)
	editor.Delete("/forms/:id", formHandler.DeleteForm)
	editor.Post("/forms/:id/fields/reorder", formHandler.ReorderFields)
	editor.Post("/drafts", draftHandler.SaveDraft)
	editor.Post("/forms/:id/versions", versionHandler.CreateVersion)
	editor.Post("/versions/:id/publish", versionHandler.PublishVersion)
	editor.Post("/versions/:id/rollback", versionHandler.RollbackVersion)
}
