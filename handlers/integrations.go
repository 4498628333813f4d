package handlers

import (
	"github.com/alessandrolsdev/clutch/services"

	"github.com/gofiber/fiber/v2"
)

func SetupIntegrationRoutes(app *fiber.App, integrationService *services.IntegrationService, steamService *services.SteamService) {
	app.Post("/integrations", integrationService.LinkPlatform)
	app.Post("/integrations/steam/sync", steamService.SyncSteam)
	app.Post("/integrations/steam/game-details", steamService.GameDetails)
}
