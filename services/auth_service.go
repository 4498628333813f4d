package services

import (
	"strings"

	"github.com/alessandrolsdev/clutch/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Register creates User + Profile + UserStats atomically.
// POST /users
func (s *AuthService) Register(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if len(input.Username) < 3 || !strings.Contains(input.Email, "@") || len(input.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Dados de cadastro inválidos."})
	}

	var existing models.User
	err := s.DB.Where("email = ? OR username = ?", input.Email, input.Username).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Usuário ou Email já cadastrado."})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno ao criar conta."})
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Profile{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			DisplayName: user.Username,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserStats{
			ID:           uuid.NewString(),
			UserID:       user.ID,
			Level:        1,
			CurrentXP:    0,
			SocialEnergy: 100,
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro interno ao criar conta."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID, "username": user.Username})
}

// Login verifies the claimed identity. No session is issued: every
// subsequent request re-supplies the userId.
// POST /login
func (s *AuthService) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}

	var user models.User
	if err := s.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Credenciais inválidas."})
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Credenciais inválidas."})
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"message":  "Acesso Autorizado.",
	})
}
