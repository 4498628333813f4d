package handlers

import (
	"github.com/alessandrolsdev/clutch/services"

	"github.com/gofiber/fiber/v2"
)

func SetupFeedRoutes(app *fiber.App, feedService *services.FeedService, imageService *services.ImageService) {
	app.Post("/posts", feedService.CreatePost)
	app.Get("/posts", feedService.ListPosts)
	app.Post("/posts/upload-achievement-image", imageService.UploadAchievementImage)
	app.Post("/posts/:id/respect", feedService.ToggleRespect)
	app.Post("/posts/:id/comments", feedService.CreateComment)
	app.Get("/posts/:id/comments", feedService.ListComments)
}
