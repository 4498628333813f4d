package handlers

import (
	"github.com/alessandrolsdev/clutch/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboardService *services.LeaderboardService) {
	app.Get("/leaderboard", leaderboardService.GetLeaderboard)
}
