package service

import (
	"context"

	"dtwitter/internal/cache"
	"dtwitter/internal/media"
	"dtwitter/internal/models"
	"dtwitter/internal/repository"
)

// PostService provides post business logic.
type PostService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	photos      media.PhotoStore
	store       cache.Store
	invalidator *cache.Coordinator
}

// CreatePostInput carries the create-post command.
type CreatePostInput struct {
	ActorID       uint
	Content       string
	PhotoURL      string
	PhotoPublicID string
}

// DeletePostInput carries the delete-post command with the acting user's
// identity and role set.
type DeletePostInput struct {
	PostID     uint
	ActorID    uint
	ActorRoles []string
}

// DeletePostResult confirms the deletion.
type DeletePostResult struct {
	IsDeleted bool `json:"is_deleted"`
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	photos media.PhotoStore,
	store cache.Store,
	invalidator *cache.Coordinator,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		photos:      photos,
		store:       store,
		invalidator: invalidator,
	}
}

// CreatePost validates and creates a post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" && in.PhotoURL == "" {
		return nil, models.NewBadRequestError("Post must have content or a photo")
	}

	post := &models.Post{
		Content:       in.Content,
		UserID:        in.ActorID,
		PhotoURL:      in.PhotoURL,
		PhotoPublicID: in.PhotoPublicID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.invalidator.Apply(ctx, cache.PostCreated{OwnerID: in.ActorID})

	return s.postRepo.GetByID(ctx, post.ID, in.ActorID)
}

// GetPost returns a single post. Anonymous reads flow through the cache;
// authenticated reads always hit the database so the Liked flag is correct
// for the requesting user.
func (s *PostService) GetPost(ctx context.Context, postID uint, currentUserID uint) (*models.Post, error) {
	if currentUserID != 0 {
		return s.postRepo.GetByID(ctx, postID, currentUserID)
	}

	var post *models.Post
	err := cache.Aside(ctx, s.store, cache.PostKey(postID), &post, cache.PostTTL, func() error {
		var fetchErr error
		post, fetchErr = s.postRepo.GetByID(ctx, postID, 0)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListRecent returns the newest posts. Only the first anonymous page is
// cached; it is the page every visitor lands on.
func (s *PostService) ListRecent(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if currentUserID != 0 || offset != 0 {
		return s.postRepo.ListRecent(ctx, limit, offset, currentUserID)
	}

	var posts []*models.Post
	err := cache.Aside(ctx, s.store, cache.PostsRecentKey(), &posts, cache.PostsRecentTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.postRepo.ListRecent(ctx, limit, 0, 0)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByUser returns a user's posts, cached for anonymous first-page reads.
func (s *PostService) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if currentUserID != 0 || offset != 0 {
		return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
	}

	var posts []*models.Post
	err := cache.Aside(ctx, s.store, cache.UserPostsKey(userID), &posts, cache.UserPostsTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.postRepo.GetByUserID(ctx, userID, limit, 0, 0)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost removes a post and everything hanging off it. The order is
// deliberate: external media first, so a media failure aborts the whole
// operation before any row is touched, then the cascade in one transaction,
// then cache invalidation. A post is never left behind without its photo,
// and no counter or cache entry is touched for a mutation that did not
// commit.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) (*DeletePostResult, error) {
	actor, err := s.userRepo.GetByID(ctx, in.ActorID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewNotFoundError("Authorized user not found")
		}
		return nil, err
	}

	post, err := s.postRepo.GetWithChildren(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	isOwner := post.UserID == in.ActorID
	if !isOwner && !hasRole(in.ActorRoles, models.RoleModerator) {
		return nil, models.NewUnauthorizedError("User not authorized to delete post")
	}

	mediaRemoved := false
	if post.PhotoPublicID != "" {
		if err := s.photos.DeletePhoto(ctx, post.PhotoPublicID); err != nil {
			return nil, models.NewServerError(err)
		}
		mediaRemoved = true
	}

	if err := s.postRepo.DeleteCascade(ctx, post.ID); err != nil {
		return nil, err
	}

	ownerUsername := actor.Username
	if !isOwner {
		if owner, ownerErr := s.userRepo.GetByID(ctx, post.UserID); ownerErr == nil {
			ownerUsername = owner.Username
		}
	}
	s.invalidator.Apply(ctx, cache.PostDeleted{
		PostID:        post.ID,
		OwnerID:       post.UserID,
		OwnerUsername: ownerUsername,
		MediaRemoved:  mediaRemoved,
	})

	return &DeletePostResult{IsDeleted: true}, nil
}
