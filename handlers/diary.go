package handlers

import (
	"github.com/alessandrolsdev/clutch/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDiaryRoutes(app *fiber.App, diaryService *services.DiaryService) {
	app.Post("/diary", diaryService.RecordCompletion)
	app.Get("/diary/:username", diaryService.ListDiary)
}
