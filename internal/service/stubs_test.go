package service

import (
	"context"

	"dtwitter/internal/models"
)

// Hand-rolled repository stubs. Each method delegates to its function field
// when set and falls back to a zero result otherwise, so a test only wires
// the calls it cares about.

type stubPostRepo struct {
	createFn          func(ctx context.Context, post *models.Post) error
	getByIDFn         func(ctx context.Context, id, currentUserID uint) (*models.Post, error)
	getWithChildrenFn func(ctx context.Context, id uint) (*models.Post, error)
	listRecentFn      func(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	getByUserIDFn     func(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	deleteCascadeFn   func(ctx context.Context, postID uint) error
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, post)
	}
	return nil
}

func (s *stubPostRepo) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id, currentUserID)
	}
	return &models.Post{ID: id}, nil
}

func (s *stubPostRepo) GetWithChildren(ctx context.Context, id uint) (*models.Post, error) {
	if s.getWithChildrenFn != nil {
		return s.getWithChildrenFn(ctx, id)
	}
	return &models.Post{ID: id}, nil
}

func (s *stubPostRepo) ListRecent(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if s.listRecentFn != nil {
		return s.listRecentFn(ctx, limit, offset, currentUserID)
	}
	return nil, nil
}

func (s *stubPostRepo) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if s.getByUserIDFn != nil {
		return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
	}
	return nil, nil
}

func (s *stubPostRepo) DeleteCascade(ctx context.Context, postID uint) error {
	if s.deleteCascadeFn != nil {
		return s.deleteCascadeFn(ctx, postID)
	}
	return nil
}

type stubCommentRepo struct {
	createFn        func(ctx context.Context, comment *models.Comment) error
	getByIDFn       func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFn    func(ctx context.Context, postID uint) ([]*models.Comment, error)
	deleteCascadeFn func(ctx context.Context, commentID, postID uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.Comment{ID: id}, nil
}

func (s *stubCommentRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if s.listByPostFn != nil {
		return s.listByPostFn(ctx, postID)
	}
	return nil, nil
}

func (s *stubCommentRepo) DeleteCascade(ctx context.Context, commentID, postID uint) error {
	if s.deleteCascadeFn != nil {
		return s.deleteCascadeFn(ctx, commentID, postID)
	}
	return nil
}

type stubLikeRepo struct {
	likePostFn      func(ctx context.Context, userID, postID uint) error
	unlikePostFn    func(ctx context.Context, userID, postID uint) error
	likeCommentFn   func(ctx context.Context, userID, commentID uint) error
	unlikeCommentFn func(ctx context.Context, userID, commentID uint) error
}

func (s *stubLikeRepo) LikePost(ctx context.Context, userID, postID uint) error {
	if s.likePostFn != nil {
		return s.likePostFn(ctx, userID, postID)
	}
	return nil
}

func (s *stubLikeRepo) UnlikePost(ctx context.Context, userID, postID uint) error {
	if s.unlikePostFn != nil {
		return s.unlikePostFn(ctx, userID, postID)
	}
	return nil
}

func (s *stubLikeRepo) LikeComment(ctx context.Context, userID, commentID uint) error {
	if s.likeCommentFn != nil {
		return s.likeCommentFn(ctx, userID, commentID)
	}
	return nil
}

func (s *stubLikeRepo) UnlikeComment(ctx context.Context, userID, commentID uint) error {
	if s.unlikeCommentFn != nil {
		return s.unlikeCommentFn(ctx, userID, commentID)
	}
	return nil
}

type stubUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	updateFn        func(ctx context.Context, user *models.User) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.User{ID: id}, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return &models.User{Username: username}, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

type stubFriendRepo struct {
	createRequestFn        func(ctx context.Context, request *models.FriendRequest) error
	getRequestByIDFn       func(ctx context.Context, id uint) (*models.FriendRequest, error)
	getPendingRequestsFn   func(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	friendshipExistsFn     func(ctx context.Context, userID1, userID2 uint) (bool, error)
	acceptFn               func(ctx context.Context, request *models.FriendRequest) error
	declineFn              func(ctx context.Context, request *models.FriendRequest) error
	getFriendsFn           func(ctx context.Context, userID uint) ([]models.User, error)
	getFriendshipBetweenFn func(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
}

func (s *stubFriendRepo) CreateRequest(ctx context.Context, request *models.FriendRequest) error {
	if s.createRequestFn != nil {
		return s.createRequestFn(ctx, request)
	}
	return nil
}

func (s *stubFriendRepo) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	if s.getRequestByIDFn != nil {
		return s.getRequestByIDFn(ctx, id)
	}
	return &models.FriendRequest{ID: id, Status: models.FriendRequestPending}, nil
}

func (s *stubFriendRepo) GetPendingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	if s.getPendingRequestsFn != nil {
		return s.getPendingRequestsFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubFriendRepo) FriendshipExists(ctx context.Context, userID1, userID2 uint) (bool, error) {
	if s.friendshipExistsFn != nil {
		return s.friendshipExistsFn(ctx, userID1, userID2)
	}
	return false, nil
}

func (s *stubFriendRepo) Accept(ctx context.Context, request *models.FriendRequest) error {
	if s.acceptFn != nil {
		return s.acceptFn(ctx, request)
	}
	request.Status = models.FriendRequestAccepted
	return nil
}

func (s *stubFriendRepo) Decline(ctx context.Context, request *models.FriendRequest) error {
	if s.declineFn != nil {
		return s.declineFn(ctx, request)
	}
	request.Status = models.FriendRequestDeclined
	return nil
}

func (s *stubFriendRepo) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	if s.getFriendsFn != nil {
		return s.getFriendsFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubFriendRepo) GetFriendshipBetween(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	if s.getFriendshipBetweenFn != nil {
		return s.getFriendshipBetweenFn(ctx, userID1, userID2)
	}
	return nil, nil
}

type stubPhotoStore struct {
	deletePhotoFn func(ctx context.Context, publicID string) error
	deleted       []string
}

func (s *stubPhotoStore) DeletePhoto(ctx context.Context, publicID string) error {
	if s.deletePhotoFn != nil {
		if err := s.deletePhotoFn(ctx, publicID); err != nil {
			return err
		}
	}
	s.deleted = append(s.deleted, publicID)
	return nil
}
