package service

import (
	"context"

	"dtwitter/internal/cache"
	"dtwitter/internal/repository"
)

// LikeService provides like/unlike business logic for posts and comments.
// The repository does the counter arithmetic atomically with the like row;
// the service's job is target existence, surfacing the right error code,
// and invalidating caches only after the adjustment committed.
type LikeService struct {
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	invalidator *cache.Coordinator
}

// LikeResult confirms a like.
type LikeResult struct {
	Liked bool `json:"liked"`
}

// UnlikeResult confirms an unlike.
type UnlikeResult struct {
	Unliked bool `json:"unliked"`
}

// NewLikeService returns a new LikeService.
func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	invalidator *cache.Coordinator,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		invalidator: invalidator,
	}
}

// LikePost records a like on a post and increments its likes_count by
// exactly one. A second like from the same user fails Conflict and moves
// nothing.
func (s *LikeService) LikePost(ctx context.Context, actorID, postID uint) (*LikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	if err := s.likeRepo.LikePost(ctx, actorID, postID); err != nil {
		return nil, err
	}

	s.invalidator.Apply(ctx, cache.PostLikeChanged{PostID: postID})

	return &LikeResult{Liked: true}, nil
}

// UnlikePost removes the actor's like and decrements likes_count, clamped
// at zero. Unliking a post the actor never liked fails NotFound.
func (s *LikeService) UnlikePost(ctx context.Context, actorID, postID uint) (*UnlikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	if err := s.likeRepo.UnlikePost(ctx, actorID, postID); err != nil {
		return nil, err
	}

	s.invalidator.Apply(ctx, cache.PostLikeChanged{PostID: postID})

	return &UnlikeResult{Unliked: true}, nil
}

// LikeComment records a like on a comment.
func (s *LikeService) LikeComment(ctx context.Context, actorID, commentID uint) (*LikeResult, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.likeRepo.LikeComment(ctx, actorID, commentID); err != nil {
		return nil, err
	}

	s.invalidator.Apply(ctx, cache.CommentLikeChanged{PostID: comment.PostID})

	return &LikeResult{Liked: true}, nil
}

// UnlikeComment removes the actor's like from a comment.
func (s *LikeService) UnlikeComment(ctx context.Context, actorID, commentID uint) (*UnlikeResult, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.likeRepo.UnlikeComment(ctx, actorID, commentID); err != nil {
		return nil, err
	}

	s.invalidator.Apply(ctx, cache.CommentLikeChanged{PostID: comment.PostID})

	return &UnlikeResult{Unliked: true}, nil
}
