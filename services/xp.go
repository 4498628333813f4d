package services

import (
	"fmt"

	"github.com/alessandrolsdev/clutch/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// XP amounts per action. Single rule, three call sites.
const (
	XPPostCreated    int64 = 10
	XPGameCompleted  int64 = 50
	XPPlatformLinked int64 = 20
)

// Action tags written to the XpLog audit trail.
const (
	ActionPostCreated    = "POST_CREATED"
	ActionGameCompleted  = "GAME_COMPLETED"
	ActionPlatformLinked = "PLATFORM_LINKED"
)

// LevelForXP derives the level tier from accumulated XP. Level is a
// stateless function of XP, recomputed on every grant so the stored
// field can never drift: level = floor(xp/100), minimum 1.
func LevelForXP(xp int64) int {
	level := int(xp / 100)
	if level < 1 {
		level = 1
	}
	return level
}

// GrantXP increments the user's XP, recomputes the level and appends
// one audit row. It must run inside the same transaction as the
// triggering write so a rollback takes the grant with it.
func GrantXP(tx *gorm.DB, userID, action string, amount int64) error {
	var stats models.UserStats
	if err := tx.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return fmt.Errorf("stats record not found for %s: %w", userID, err)
	}

	stats.CurrentXP += amount
	stats.Level = LevelForXP(stats.CurrentXP)
	if err := tx.Save(&stats).Error; err != nil {
		return err
	}

	return tx.Create(&models.XpLog{
		ID:         uuid.NewString(),
		UserID:     userID,
		ActionType: action,
		XpAmount:   amount,
	}).Error
}
