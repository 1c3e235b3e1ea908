package service

import (
	"context"

	"dtwitter/internal/cache"
	"dtwitter/internal/models"
	"dtwitter/internal/repository"
)

// UserService provides user profile business logic.
type UserService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	store       cache.Store
	invalidator *cache.Coordinator
}

// ClearFieldInput carries the moderation command to blank a profile field.
type ClearFieldInput struct {
	Username   string
	Field      string
	ActorRoles []string
}

// Profile fields a moderator is allowed to clear.
const (
	FieldBio            = "bio"
	FieldFullName       = "full_name"
	FieldProfilePicture = "profile_picture_url"
)

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	store cache.Store,
	invalidator *cache.Coordinator,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		store:       store,
		invalidator: invalidator,
	}
}

// GetProfile returns a user's profile through the cache.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	var user *models.User
	err := cache.Aside(ctx, s.store, cache.UserKey(username), &user, cache.UserTTL, func() error {
		var fetchErr error
		user, fetchErr = s.userRepo.GetByUsername(ctx, username)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetPhotos returns the photo URLs of a user's posts through the cache.
func (s *UserService) GetPhotos(ctx context.Context, username string) ([]string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var photos []string
	err = cache.Aside(ctx, s.store, cache.UserPhotosKey(username), &photos, cache.UserPhotosTTL, func() error {
		posts, fetchErr := s.postRepo.GetByUserID(ctx, user.ID, 100, 0, 0)
		if fetchErr != nil {
			return fetchErr
		}
		photos = make([]string, 0, len(posts))
		for _, post := range posts {
			if post.PhotoURL != "" {
				photos = append(photos, post.PhotoURL)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// ClearProfileField blanks one profile field on another user's account.
// Moderator only.
func (s *UserService) ClearProfileField(ctx context.Context, in ClearFieldInput) (*models.User, error) {
	if !hasRole(in.ActorRoles, models.RoleModerator) {
		return nil, models.NewUnauthorizedError("User not authorized to moderate profiles")
	}

	user, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	switch in.Field {
	case FieldBio:
		user.Bio = ""
	case FieldFullName:
		user.FullName = ""
	case FieldProfilePicture:
		user.ProfilePictureURL = ""
	default:
		return nil, models.NewBadRequestError("Field cannot be cleared")
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidator.Apply(ctx, cache.ProfileFieldCleared{Username: user.Username})

	return user, nil
}
