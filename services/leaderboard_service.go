package services

import (
	"github.com/alessandrolsdev/clutch/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const leaderboardSize = 10

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// LeaderboardEntry is one ranked row. Rank is the 1-based position in
// the XP-descending order; ties keep the underlying query order.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	Level       int    `json:"level"`
	XP          int64  `json:"xp"`
}

// GetLeaderboard returns the top 10 players by XP. Read-only.
// GET /leaderboard
func (s *LeaderboardService) GetLeaderboard(c *fiber.Ctx) error {
	var stats []models.UserStats
	err := s.DB.Preload("User.Profile").
		Order("current_xp DESC").
		Limit(leaderboardSize).
		Find(&stats).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao buscar ranking."})
	}

	entries := make([]LeaderboardEntry, 0, len(stats))
	for i, stat := range stats {
		entry := LeaderboardEntry{
			Rank:  i + 1,
			Level: stat.Level,
			XP:    stat.CurrentXP,
		}
		if stat.User != nil {
			entry.Username = stat.User.Username
			entry.DisplayName = stat.User.Username
			if stat.User.Profile != nil {
				if stat.User.Profile.DisplayName != "" {
					entry.DisplayName = stat.User.Profile.DisplayName
				}
				entry.AvatarURL = stat.User.Profile.AvatarURL
			}
		}
		entries = append(entries, entry)
	}

	return c.JSON(entries)
}
