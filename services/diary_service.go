package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alessandrolsdev/clutch/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// emotionEmojis maps diary emotions to the icon rendered on the
// synthesized feed post. Unmapped emotions fall back to 🎮.
var emotionEmojis = map[string]string{
	"EPIC":  "🔥",
	"SAD":   "😭",
	"RAGE":  "😡",
	"CHILL": "☕",
	"SCARY": "💀",
}

const reviewPlaceholder = "Sem palavras para descrever."

type DiaryService struct {
	DB *gorm.DB
}

func NewDiaryService(db *gorm.DB) *DiaryService {
	return &DiaryService{DB: db}
}

// diaryPostContent formats the human-readable feed post for a
// completed game.
func diaryPostContent(log *models.GameLog) string {
	emoji, ok := emotionEmojis[log.Emotion]
	if !ok {
		emoji = "🎮"
	}
	review := reviewPlaceholder
	if log.Review != nil && *log.Review != "" {
		review = *log.Review
	}
	hours := strconv.FormatFloat(log.HoursPlayed, 'f', -1, 64)
	return fmt.Sprintf("Acabei de zerar **%s**! %s\n\n⏳ Tempo: %sh | ⭐ Nota: %d/5\n%q",
		log.GameTitle, emoji, hours, log.Rating, review)
}

// RecordCompletion registers a finished game. One transaction, three
// effects: the GameLog row, the synthesized ACHIEVEMENT feed post and
// the 50 XP grant. All-or-nothing.
// POST /diary
func (s *DiaryService) RecordCompletion(c *fiber.Ctx) error {
	var input struct {
		UserID      string  `json:"userId"`
		GameTitle   string  `json:"gameTitle"`
		Platform    string  `json:"platform"`
		HoursPlayed float64 `json:"hoursPlayed"`
		Rating      int     `json:"rating"`
		Emotion     string  `json:"emotion"`
		Review      *string `json:"review"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}
	if _, err := uuid.Parse(input.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "userId inválido."})
	}
	if input.GameTitle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "gameTitle é obrigatório."})
	}
	if !models.Contains(models.ValidPlatforms, input.Platform) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Plataforma inválida."})
	}
	if input.HoursPlayed < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "hoursPlayed não pode ser negativo."})
	}
	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Nota deve ser entre 1 e 5."})
	}
	if !models.Contains(models.ValidEmotions, input.Emotion) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Emoção inválida."})
	}

	log := &models.GameLog{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		GameTitle:   input.GameTitle,
		Platform:    input.Platform,
		HoursPlayed: input.HoursPlayed,
		Rating:      input.Rating,
		Emotion:     input.Emotion,
		Review:      input.Review,
		FinishedAt:  time.Now(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Post{
			ID:          uuid.NewString(),
			UserID:      input.UserID,
			ContentText: diaryPostContent(log),
			Type:        models.PostTypeAchievement,
		}).Error; err != nil {
			return err
		}
		return GrantXP(tx, input.UserID, ActionGameCompleted, XPGameCompleted)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno ao registrar zeramento."})
	}

	return c.Status(fiber.StatusCreated).JSON(log)
}

// ListDiary returns a user's completed games, newest-finished-first.
// GET /diary/:username
func (s *DiaryService) ListDiary(c *fiber.Ctx) error {
	username := c.Params("username")

	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno."})
	}

	var logs []models.GameLog
	err := s.DB.Where("user_id = ?", user.ID).
		Order("finished_at DESC").
		Find(&logs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao buscar diário."})
	}
	return c.JSON(logs)
}
