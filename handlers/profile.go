package handlers

import (
	"github.com/alessandrolsdev/clutch/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, profileService *services.ProfileService) {
	app.Get("/profiles/:username", profileService.GetProfile)
	app.Patch("/profiles/:username", profileService.PatchProfile)
}
