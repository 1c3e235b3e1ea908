package models

import "time"

// Like is a join fact: one user liking exactly one of a post or a comment.
// Exactly one of PostID and CommentID is set. The unique indexes make a
// duplicate like by the same user on the same target a constraint violation.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post;uniqueIndex:idx_like_user_comment" json:"user_id"`
	PostID    *uint     `gorm:"uniqueIndex:idx_like_user_post" json:"post_id,omitempty"`
	CommentID *uint     `gorm:"uniqueIndex:idx_like_user_comment" json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TargetKind identifies which aggregate a like (or an optimistic view-state
// slice) refers to.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Valid reports whether the like references exactly one target.
func (l *Like) Valid() bool {
	return (l.PostID != nil) != (l.CommentID != nil)
}
