package handlers

import (
	"github.com/alessandrolsdev/clutch/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	app.Post("/users", authService.Register)
	app.Post("/login", authService.Login)
}
