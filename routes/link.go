package routes

import (
	handlers "formu.link/handlers"

	"github.com/gofiber/fiber/v2"
)

// registerPublicFormRoutes yayınlanmış formların public uçlarını tanımlar.
// /f öneki, form anahtarlarının diğer rotalarla çakışmasını engeller.
func registerPublicFormRoutes(app *fiber.App) {
	publicHandler := handlers.NewPublicFormHandler()

	app.Get("/f/:key", publicHandler.ShowForm)
	app.Post("/f/:key", publicHandler.SubmitForm)
}
