package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/alessandrolsdev/clutch/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedLegend struct {
	Username string
	Email    string
	Bio      string
	Posts    []string
	XP       int64
}

var seedLegends = []seedLegend{
	{
		Username: "FakerGod",
		Email:    "faker@t1.gg",
		Bio:      "3x World Champion. O Rei Demônio Imortal.",
		Posts:    []string{"Apenas mais um dia no escritório. #T1Fighting", "Ryze está forte nesse patch."},
		XP:       1500,
	},
	{
		Username: "GeraltOfRivia",
		Email:    "geralt@witcher.com",
		Bio:      "Caçador de Monstros. Odeio portais.",
		Posts:    []string{"O vento está uivando...", "Alguém viu a Ciri?", "Gwent > Salvar o mundo."},
		XP:       850,
	},
	{
		Username: "JinxChaos",
		Email:    "jinx@zaun.net",
		Bio:      "Eu sou a própria desgraça!",
		Posts:    []string{"Explodir coisas é tão divertido!", "Cadê a Vi?"},
		XP:       1200,
	},
	{
		Username: "MarioPlumber",
		Email:    "mario@nintendo.jp",
		Bio:      "It is me! Salvando princesas desde 85.",
		Posts:    []string{"Mamma Mia!", "O castelo estava vazio... de novo."},
		XP:       500,
	},
	{
		Username: "SatoruGojo",
		Email:    "gojo@jjk.jp",
		Bio:      "O mais forte. Simples assim.",
		Posts:    []string{"Vazio Roxo 🟣", "Ensinar é cansativo, talvez eu compre doces."},
		XP:       5000,
	},
}

// SeedDemoData creates the demo "legends" with their posts and XP.
// Idempotent: existing emails are skipped.
func SeedDemoData(db *gorm.DB) error {
	log.Println("🌱 Seeding demo legends...")

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, legend := range seedLegends {
		var existing models.User
		err := db.Where("email = ?", legend.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		legend := legend
		err = db.Transaction(func(tx *gorm.DB) error {
			user := &models.User{
				ID:           uuid.NewString(),
				Username:     legend.Username,
				Email:        legend.Email,
				PasswordHash: string(hash),
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.Profile{
				ID:          uuid.NewString(),
				UserID:      user.ID,
				DisplayName: legend.Username,
				Bio:         legend.Bio,
				AvatarURL:   fmt.Sprintf("https://api.dicebear.com/9.x/avataaars/svg?seed=%s", legend.Username),
			}).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.UserStats{
				ID:           uuid.NewString(),
				UserID:       user.ID,
				Level:        LevelForXP(legend.XP),
				CurrentXP:    legend.XP,
				SocialEnergy: 100,
			}).Error; err != nil {
				return err
			}
			for _, content := range legend.Posts {
				if err := tx.Create(&models.Post{
					ID:          uuid.NewString(),
					UserID:      user.ID,
					ContentText: content,
					Type:        models.PostTypeText,
				}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("✅ Lenda criada: %s", legend.Username)
	}

	return nil
}
