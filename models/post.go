package models

import "time"

// Post is a feed entry. Direct user posts are capped at 280 chars;
// diary-synthesized ACHIEVEMENT posts are exempt.
type Post struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string  `gorm:"index;not null" json:"userId"`
	ContentText string  `gorm:"not null" json:"contentText"`
	Type        string  `gorm:"default:TEXT" json:"type"`
	ImageURL    *string `json:"imageUrl,omitempty"`

	User         *User         `json:"user,omitempty"`
	Comments     []Comment     `json:"comments,omitempty"`
	Interactions []Interaction `json:"interactions,omitempty"`

	Timestamps
}

// Comment on a post, displayed oldest-first (conversation order).
type Comment struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	PostID  string `gorm:"index;not null" json:"postId"`
	UserID  string `gorm:"index;not null" json:"userId"`
	Content string `gorm:"not null" json:"content"`

	User *User `json:"user,omitempty"`

	Timestamps
}

// Interaction is the "respect" toggle: presence of a (user, post, GG)
// row means the user respected the post.
type Interaction struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"uniqueIndex:idx_interactions_user_post_type;not null" json:"userId"`
	PostID string `gorm:"uniqueIndex:idx_interactions_user_post_type;not null" json:"postId"`
	Type   string `gorm:"uniqueIndex:idx_interactions_user_post_type;default:GG" json:"type"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
