package models

// User is the account root. Profile and UserStats are created together
// with it at registration and never deleted.
type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	Profile *Profile   `json:"profile,omitempty"`
	Stats   *UserStats `json:"stats,omitempty"`

	Timestamps
}

// Profile holds the public-facing identity fields.
type Profile struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string `gorm:"uniqueIndex;not null" json:"userId"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
	BannerURL   string `json:"bannerUrl"`

	Timestamps
}

// UserStats is the gamification state. CurrentXP only grows under
// normal operation; Level is recomputed from CurrentXP on every grant.
type UserStats struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string `gorm:"uniqueIndex;not null" json:"userId"`
	Level        int    `gorm:"default:1" json:"level"`
	CurrentXP    int64  `gorm:"column:current_xp;default:0" json:"currentXp"`
	SocialEnergy int    `gorm:"default:100" json:"socialEnergy"`

	User *User `json:"user,omitempty"`

	Timestamps
}

// XpLog is the append-only audit trail: one row per XP grant.
type XpLog struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string `gorm:"index;not null" json:"userId"`
	ActionType string `gorm:"not null" json:"actionType"`
	XpAmount   int64  `gorm:"not null" json:"xpAmount"`

	Timestamps
}
