package models

import (
	"time"
)

// Timestamps adds GORM auto-times to every entity.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Post types
const (
	PostTypeText        = "TEXT"
	PostTypeImage       = "IMAGE"
	PostTypeVideo       = "VIDEO"
	PostTypeAchievement = "ACHIEVEMENT"
)

// Interaction types ("respect" = GG)
const (
	InteractionGG = "GG"
)

// Gaming platforms for diary entries
var ValidPlatforms = []string{"PC", "PS5", "XBOX", "SWITCH", "MOBILE"}

// Emotions for diary entries
var ValidEmotions = []string{"EPIC", "SAD", "RAGE", "CHILL", "SCARY"}

// External platform providers
var ValidProviders = []string{"STEAM", "PSN", "XBOX", "RIOT", "NINTENDO"}

func Contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
