package repository

import (
	"context"
	"errors"

	"dtwitter/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend-request and friendship
// data operations. Accept persists the status transition and the new
// friendship as one unit.
type FriendRepository interface {
	CreateRequest(ctx context.Context, request *models.FriendRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	GetPendingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	FriendshipExists(ctx context.Context, userID1, userID2 uint) (bool, error)
	// Accept creates the friendship and marks the request accepted in a
	// single transaction. The unique pair index makes a racing second
	// accept fail instead of producing a duplicate friendship.
	Accept(ctx context.Context, request *models.FriendRequest) error
	// Decline marks the request declined.
	Decline(ctx context.Context, request *models.FriendRequest) error
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetFriendshipBetween(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateRequest(ctx context.Context, request *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return models.NewServerError(err)
	}
	return nil
}

func (r *friendRepository) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request not found")
		}
		return nil, models.NewServerError(err)
	}
	return &request, nil
}

func (r *friendRepository) GetPendingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", userID, models.FriendRequestPending).
		Preload("Sender").
		Find(&requests).Error
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return requests, nil
}

func (r *friendRepository) FriendshipExists(ctx context.Context, userID1, userID2 uint) (bool, error) {
	if userID1 > userID2 {
		userID1, userID2 = userID2, userID1
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user1_id = ? AND user2_id = ?", userID1, userID2).
		Count(&count).Error
	if err != nil {
		return false, models.NewServerError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) Accept(ctx context.Context, request *models.FriendRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		friendship := &models.Friendship{
			User1ID: request.SenderID,
			User2ID: request.ReceiverID,
		}
		if err := tx.Create(friendship).Error; err != nil {
			return err
		}
		return tx.Model(&models.FriendRequest{}).
			Where("id = ?", request.ID).
			Update("status", models.FriendRequestAccepted).Error
	})
	if err != nil {
		return wrapTxError(err)
	}
	request.Status = models.FriendRequestAccepted
	return nil
}

func (r *friendRepository) Decline(ctx context.Context, request *models.FriendRequest) error {
	err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ?", request.ID).
		Update("status", models.FriendRequestDeclined).Error
	if err != nil {
		return models.NewServerError(err)
	}
	request.Status = models.FriendRequestDeclined
	return nil
}

func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON (users.id = f.user1_id OR users.id = f.user2_id)").
		Where("(f.user1_id = ? OR f.user2_id = ?) AND users.id != ?", userID, userID, userID).
		Find(&users).Error
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return users, nil
}

func (r *friendRepository) GetFriendshipBetween(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	if userID1 > userID2 {
		userID1, userID2 = userID2, userID1
	}
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", userID1, userID2).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No friendship exists
		}
		return nil, models.NewServerError(err)
	}
	return &friendship, nil
}
