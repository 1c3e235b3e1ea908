// Package repository is the aggregate store adapter: atomic find, update,
// and delete-with-children operations over posts, comments, likes, and
// friendships, with their denormalized counters adjusted in the same
// transaction that touches the rows.
package repository

import (
	"context"
	"errors"

	"dtwitter/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	// GetWithChildren eager-loads the comment and like collections needed
	// for a cascade delete.
	GetWithChildren(ctx context.Context, id uint) (*models.Post, error)
	ListRecent(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	// DeleteCascade removes the post, its comments, and every like on the
	// post or its comments as one atomic unit. No like or comment may
	// outlive its parent post.
	DeleteCascade(ctx context.Context, postID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewServerError(err)
	}
	return nil
}

// applyLiked adds the per-request liked flag in the same query. Counters are
// persisted columns and come back with posts.* directly.
func (r *postRepository) applyLiked(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select("posts.*, EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked", currentUserID)
	}
	return db.Select("posts.*, false AS liked")
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyLiked(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post was not found")
		}
		return nil, models.NewServerError(err)
	}
	return &post, nil
}

func (r *postRepository) GetWithChildren(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Comments").
		Preload("Comments.Likes").
		Preload("Likes").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post was not found")
		}
		return nil, models.NewServerError(err)
	}
	return &post, nil
}

func (r *postRepository) ListRecent(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyLiked(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyLiked(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return posts, nil
}

func (r *postRepository) DeleteCascade(ctx context.Context, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Likes on the post's comments go first, then the comments, then
		// likes on the post itself, then the post row.
		if err := tx.
			Where("comment_id IN (SELECT id FROM comments WHERE post_id = ?)", postID).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
	if err != nil {
		return models.NewServerError(err)
	}
	return nil
}
