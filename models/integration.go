package models

import (
	"encoding/json"
	"time"
)

// PlatformIntegration links a local account to an external gaming
// platform identity. One row per (user, provider); the same external
// id cannot belong to two different users under one provider.
type PlatformIntegration struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string `gorm:"uniqueIndex:idx_integrations_user_provider;not null" json:"userId"`
	Provider   string `gorm:"uniqueIndex:idx_integrations_user_provider;not null" json:"provider"`
	ExternalID string `gorm:"index;not null" json:"externalId"`

	LastSyncedAt time.Time       `json:"lastSyncedAt"`
	Metadata     json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`

	Timestamps
}

// SteamMetadata is the typed shape stored in Metadata for STEAM rows.
// Other providers get their own struct when their sync lands.
type SteamMetadata struct {
	RealName      string         `json:"realName,omitempty"`
	AvatarFull    string         `json:"avatarFull,omitempty"`
	Country       string         `json:"country,omitempty"`
	Status        int            `json:"status"`
	GameExtraInfo string         `json:"gameExtraInfo,omitempty"`
	GameCount     int            `json:"gameCount"`
	TotalHours    int            `json:"totalHours"`
	TopGames      []SteamTopGame `json:"topGames"`
	Raw           string         `json:"raw"`
}

// SteamTopGame is one of the top-3-by-playtime titles. Achievements is
// nil when that game's achievement fetch failed (best-effort).
type SteamTopGame struct {
	AppID        int                      `json:"appid"`
	Name         string                   `json:"name"`
	Hours        int                      `json:"hours"`
	Icon         string                   `json:"icon"`
	Achievements *SteamAchievementSummary `json:"achievements"`
}

type SteamAchievementSummary struct {
	Achieved int `json:"achieved"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}
