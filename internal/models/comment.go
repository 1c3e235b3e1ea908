package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. LikesCount is denormalized and
// mirrors the comment-scoped Like rows.
type Comment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Content    string         `gorm:"not null" json:"content"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	PostID     uint           `gorm:"not null;index" json:"post_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LikesCount int            `gorm:"not null;default:0" json:"likes_count"`
	Liked      bool           `gorm:"-" json:"liked"`
	Likes      []Like         `gorm:"foreignKey:CommentID" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
