package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is the root aggregate of the feed. LikesCount and CommentsCount are
// denormalized columns kept in lockstep with their backing Like and Comment
// rows; every mutation adjusts them inside the same transaction that touches
// the rows.
type Post struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Content       string `gorm:"not null" json:"content"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PhotoURL      string `json:"photo_url"`
	PhotoPublicID string `json:"-"`
	LikesCount    int    `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int    `gorm:"not null;default:0" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"-" json:"liked"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Likes     []Like         `gorm:"foreignKey:PostID" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
