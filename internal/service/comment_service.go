// Package service implements the mutation handlers: each one validates
// authorization before touching anything, mutates the aggregate graph and
// its counters through the repository layer's atomic operations, and emits
// a cache invalidation event only after the mutation has committed.
package service

import (
	"context"

	"dtwitter/internal/cache"
	"dtwitter/internal/models"
	"dtwitter/internal/repository"
)

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	store       cache.Store
	invalidator *cache.Coordinator
}

// CreateCommentInput carries the create-comment command.
type CreateCommentInput struct {
	ActorID uint
	PostID  uint
	Content string
}

// DeleteCommentInput carries the delete-comment command with the acting
// user's identity and role set.
type DeleteCommentInput struct {
	CommentID  uint
	ActorID    uint
	ActorRoles []string
}

// DeleteCommentResult confirms the deletion.
type DeleteCommentResult struct {
	IsDeleted bool `json:"is_deleted"`
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	store cache.Store,
	invalidator *cache.Coordinator,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		store:       store,
		invalidator: invalidator,
	}
}

// CreateComment validates and creates a comment; the parent post's
// comments_count moves with the row inside the repository transaction.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewBadRequestError("Content is required")
	}
	const maxCommentLen = 10000
	if len(in.Content) > maxCommentLen {
		return nil, models.NewBadRequestError("Comment too long (max 10000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  in.ActorID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidator.Apply(ctx, cache.CommentCreated{PostID: post.ID})

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments through the cache.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	var comments []*models.Comment
	err := cache.Aside(ctx, s.store, cache.PostCommentsKey(postID), &comments, cache.PostCommentsTTL, func() error {
		var fetchErr error
		comments, fetchErr = s.commentRepo.ListByPost(ctx, postID)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes a comment, its likes, and one unit of the parent
// post's comments_count as a single atomic operation. Only the comment's
// owner or a moderator may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*DeleteCommentResult, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, comment.PostID, 0)
	if err != nil {
		return nil, err
	}

	isOwner := comment.UserID == in.ActorID
	if !isOwner && !hasRole(in.ActorRoles, models.RoleModerator) {
		return nil, models.NewUnauthorizedError("User not authorized to delete comment")
	}

	if err := s.commentRepo.DeleteCascade(ctx, comment.ID, post.ID); err != nil {
		return nil, err
	}

	s.invalidator.Apply(ctx, cache.CommentDeleted{PostID: post.ID})

	return &DeleteCommentResult{IsDeleted: true}, nil
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
