package models

import "time"

// GameLog is a diary entry for a completed game. Creation is always
// paired with an ACHIEVEMENT feed post and a 50 XP grant in the same
// transaction.
type GameLog struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string  `gorm:"index;not null" json:"userId"`
	GameTitle   string  `gorm:"not null" json:"gameTitle"`
	Platform    string  `gorm:"not null" json:"platform"`
	HoursPlayed float64 `json:"hoursPlayed"`
	Rating      int     `json:"rating"`
	Emotion     string  `gorm:"not null" json:"emotion"`
	Review      *string `json:"review,omitempty"`

	FinishedAt time.Time `gorm:"index" json:"finishedAt"`

	Timestamps
}
