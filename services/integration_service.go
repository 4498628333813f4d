package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/alessandrolsdev/clutch/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntegrationService struct {
	DB *gorm.DB
}

func NewIntegrationService(db *gorm.DB) *IntegrationService {
	return &IntegrationService{DB: db}
}

// LinkPlatform links (or re-links) an external platform identity.
// The anti-smurf check rejects an externalId already claimed by a
// different user under the same provider. The 20 XP reward is granted
// only when the (user, provider) link is first created, not on every
// update.
// POST /integrations
func (s *IntegrationService) LinkPlatform(c *fiber.Ctx) error {
	var input struct {
		UserID     string `json:"userId"`
		Provider   string `json:"provider"`
		ExternalID string `json:"externalId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}
	if _, err := uuid.Parse(input.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "userId inválido."})
	}
	if !models.Contains(models.ValidProviders, input.Provider) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Provedor inválido."})
	}
	if len(input.ExternalID) < 3 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "externalId muito curto."})
	}

	// Anti-smurf: same external identity cannot back two accounts.
	var taken models.PlatformIntegration
	err := s.DB.Where("provider = ? AND external_id = ? AND user_id <> ?",
		input.Provider, input.ExternalID, input.UserID).
		First(&taken).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": fmt.Sprintf("Este ID da %s já está vinculado a outra conta.", input.Provider),
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno."})
	}

	now := time.Now()

	var integration models.PlatformIntegration
	err = s.DB.Where("user_id = ? AND provider = ?", input.UserID, input.Provider).
		First(&integration).Error
	switch {
	case err == nil:
		// Re-link: refresh the external id and sync stamp, no XP.
		integration.ExternalID = input.ExternalID
		integration.LastSyncedAt = now
		if err := s.DB.Save(&integration).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno ao vincular."})
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		integration = models.PlatformIntegration{
			ID:           uuid.NewString(),
			UserID:       input.UserID,
			Provider:     input.Provider,
			ExternalID:   input.ExternalID,
			LastSyncedAt: now,
		}
		txErr := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&integration).Error; err != nil {
				return err
			}
			return GrantXP(tx, input.UserID, ActionPlatformLinked, XPPlatformLinked)
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno ao vincular."})
		}
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno."})
	}

	return c.Status(fiber.StatusCreated).JSON(integration)
}
