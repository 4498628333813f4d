package services

import (
	"errors"

	"github.com/alessandrolsdev/clutch/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultBio = "Um mistério a ser desvendado."

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// GetProfile returns the merged Profile+UserStats view.
// GET /profiles/:username
func (s *ProfileService) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	var user models.User
	err := s.DB.Preload("Profile").Preload("Stats").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Gamer não encontrado."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno."})
	}

	view := fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"bio":      defaultBio,
		"level":    1,
		"energy":   100,
		"xp":       int64(0),
	}
	if user.Profile != nil {
		view["displayName"] = user.Profile.DisplayName
		view["avatarUrl"] = user.Profile.AvatarURL
		view["bannerUrl"] = user.Profile.BannerURL
		if user.Profile.Bio != "" {
			view["bio"] = user.Profile.Bio
		}
	}
	if user.Stats != nil {
		view["level"] = user.Stats.Level
		view["energy"] = user.Stats.SocialEnergy
		view["xp"] = user.Stats.CurrentXP
	}

	return c.JSON(view)
}

// PatchProfile partially updates display fields. Absent fields are
// left untouched.
// PATCH /profiles/:username
func (s *ProfileService) PatchProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	var input struct {
		DisplayName *string `json:"displayName"`
		Bio         *string `json:"bio"`
		AvatarURL   *string `json:"avatarUrl"`
		BannerURL   *string `json:"bannerUrl"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}
	if input.Bio != nil && len(*input.Bio) > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Bio muito longa (máx. 500)."})
	}

	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Usuário não existe."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno."})
	}

	updates := map[string]interface{}{}
	if input.DisplayName != nil {
		updates["display_name"] = *input.DisplayName
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}
	if input.BannerURL != nil {
		updates["banner_url"] = *input.BannerURL
	}

	var profile models.Profile
	if err := s.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno ao atualizar banco."})
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&profile).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno ao atualizar banco."})
		}
	}

	return c.JSON(profile)
}
