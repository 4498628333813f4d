package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/alessandrolsdev/clutch/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrIntegrationMissing means the user never linked a Steam account.
var ErrIntegrationMissing = errors.New("steam integration not found")

type SteamService struct {
	DB     *gorm.DB
	Client *SteamClient
}

func NewSteamService(db *gorm.DB, client *SteamClient) *SteamService {
	return &SteamService{DB: db, Client: client}
}

// syncAccount runs the three-call fan-out (summary, library, top-3
// achievements), aggregates the result and persists it as typed
// metadata on the integration row.
func (s *SteamService) syncAccount(ctx context.Context, userID, steamID string) (*models.SteamMetadata, error) {
	var integration models.PlatformIntegration
	err := s.DB.Where("user_id = ? AND provider = ?", userID, "STEAM").First(&integration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntegrationMissing
		}
		return nil, err
	}

	summary, err := s.Client.GetPlayerSummary(ctx, steamID)
	if err != nil {
		return nil, err
	}

	owned, err := s.Client.GetOwnedGames(ctx, steamID)
	if err != nil {
		return nil, err
	}
	if len(owned.Games) == 0 {
		return nil, ErrPrivateProfile
	}

	totalMinutes := 0
	for _, game := range owned.Games {
		totalMinutes += game.PlaytimeForever
	}

	topGames := s.Client.fetchTopGames(ctx, steamID, owned.Games)

	metadata := &models.SteamMetadata{
		RealName:      summary.RealName,
		AvatarFull:    summary.AvatarFull,
		Country:       summary.CountryCode,
		Status:        summary.PersonaState,
		GameExtraInfo: summary.GameExtraInfo,
		GameCount:     owned.GameCount,
		TotalHours:    totalMinutes / 60,
		TopGames:      make([]models.SteamTopGame, 0, len(topGames)),
		Raw:           "Full Sync Level 3",
	}
	for _, game := range topGames {
		top := models.SteamTopGame{
			AppID: game.AppID,
			Name:  game.Name,
			Hours: game.Hours,
			Icon:  game.Icon,
		}
		if game.Achieved != nil {
			top.Achievements = &models.SteamAchievementSummary{
				Achieved: game.Achieved.Achieved,
				Total:    game.Achieved.Total,
				Percent:  game.Achieved.Percent,
			}
		}
		metadata.TopGames = append(metadata.TopGames, top)
	}

	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&integration).Updates(map[string]interface{}{
		"last_synced_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"metadata":       raw,
	}).Error
	if err != nil {
		return nil, err
	}

	return metadata, nil
}

// SyncSteam aggregates the linked account's library and achievement
// completion and stores it on the integration row.
// POST /integrations/steam/sync
func (s *SteamService) SyncSteam(c *fiber.Ctx) error {
	var input struct {
		UserID  string `json:"userId"`
		SteamID string `json:"steamId"`
	}
	if err := c.BodyParser(&input); err != nil || input.UserID == "" || input.SteamID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}

	metadata, err := s.syncAccount(c.Context(), input.UserID, input.SteamID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPrivateProfile):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Perfil privado ou inválido."})
		case errors.Is(err, ErrIntegrationMissing):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Integração Steam não encontrada."})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao comunicar com a Steam."})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Sincronizado!",
		"stats": fiber.Map{
			"gameCount":  metadata.GameCount,
			"totalHours": metadata.TotalHours,
		},
	})
}

// GameDetails merges a game's achievement schema with the player's
// unlock state, unlocked achievements first.
// POST /integrations/steam/game-details
func (s *SteamService) GameDetails(c *fiber.Ctx) error {
	var input struct {
		SteamID string `json:"steamId"`
		AppID   int    `json:"appId"`
	}
	if err := c.BodyParser(&input); err != nil || input.SteamID == "" || input.AppID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}

	ctx := c.Context()

	schema, schemaErr := s.Client.GetSchemaForGame(ctx, input.AppID)
	player, playerErr := s.Client.GetPlayerAchievements(ctx, input.SteamID, input.AppID)
	if schemaErr != nil || playerErr != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Dados de conquista indisponíveis."})
	}

	unlocked := make(map[string]steamPlayerAchievement, len(player.Achievements))
	for _, a := range player.Achievements {
		unlocked[a.APIName] = a
	}

	type richAchievement struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		IconGray    string `json:"iconGray"`
		Achieved    bool   `json:"achieved"`
		UnlockTime  int64  `json:"unlockTime"`
	}

	achievements := make([]richAchievement, 0, len(schema.AvailableGameStats.Achievements))
	for _, schemaAch := range schema.AvailableGameStats.Achievements {
		rich := richAchievement{
			Name:        schemaAch.DisplayName,
			Description: schemaAch.Description,
			Icon:        schemaAch.Icon,
			IconGray:    schemaAch.IconGray,
		}
		if playerAch, ok := unlocked[schemaAch.Name]; ok {
			rich.Achieved = playerAch.Achieved == 1
			rich.UnlockTime = playerAch.UnlockTime
		}
		achievements = append(achievements, rich)
	}

	// Unlocked first, schema order within each group.
	sort.SliceStable(achievements, func(i, j int) bool {
		return achievements[i].Achieved && !achievements[j].Achieved
	})

	return c.JSON(fiber.Map{
		"gameName":     schema.GameName,
		"achievements": achievements,
	})
}
