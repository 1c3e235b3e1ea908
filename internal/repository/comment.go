package repository

import (
	"context"
	"errors"

	"dtwitter/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Create and DeleteCascade keep the parent post's comments_count in lockstep
// with the comment rows inside a single transaction.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	// DeleteCascade removes the comment and its likes and decrements the
	// parent post's comments_count by exactly one, atomically.
	DeleteCascade(ctx context.Context, commentID, postID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
	if err != nil {
		return models.NewServerError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment was not found")
		}
		return nil, models.NewServerError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return comments, nil
}

func (r *commentRepository) DeleteCascade(ctx context.Context, commentID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		// The comment is known to exist, so the count is >= 1 before the
		// decrement.
		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("comments_count", gorm.Expr("comments_count - 1")).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
	if err != nil {
		return models.NewServerError(err)
	}
	return nil
}
