package repository

import (
	"context"

	"dtwitter/internal/models"

	"gorm.io/gorm"
)

// LikeRepository performs the like/unlike row mutation and the matching
// counter adjustment as one atomic unit. Concurrent like/unlike on the same
// target serialize on the row-level counter update; callers can assume
// atomic increment/decrement.
type LikeRepository interface {
	// LikePost inserts the like row and increments the post's likes_count
	// by exactly one. Fails Conflict when the actor already liked the post.
	LikePost(ctx context.Context, userID, postID uint) error
	// UnlikePost removes the like row and decrements likes_count, clamped
	// at zero. Fails NotFound when no like row exists for the actor.
	UnlikePost(ctx context.Context, userID, postID uint) error
	LikeComment(ctx context.Context, userID, commentID uint) error
	UnlikeComment(ctx context.Context, userID, commentID uint) error
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) LikePost(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// INSERT ... ON CONFLICT DO NOTHING is atomic and avoids duplicate
		// key errors under racing likes.
		result := tx.Exec(
			`INSERT INTO likes (user_id, post_id, created_at)
			 VALUES (?, ?, NOW())
			 ON CONFLICT (user_id, post_id) DO NOTHING`,
			userID, postID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewConflictError("Post is already liked")
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	return wrapTxError(err)
}

func (r *likeRepository) UnlikePost(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Post like was not found")
		}
		// Count never goes below zero.
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("GREATEST(likes_count - 1, 0)")).Error
	})
	return wrapTxError(err)
}

func (r *likeRepository) LikeComment(ctx context.Context, userID, commentID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(
			`INSERT INTO likes (user_id, comment_id, created_at)
			 VALUES (?, ?, NOW())
			 ON CONFLICT (user_id, comment_id) DO NOTHING`,
			userID, commentID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewConflictError("Comment is already liked")
		}
		return tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	return wrapTxError(err)
}

func (r *likeRepository) UnlikeComment(ctx context.Context, userID, commentID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Comment like was not found")
		}
		return tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("likes_count", gorm.Expr("GREATEST(likes_count - 1, 0)")).Error
	})
	return wrapTxError(err)
}
