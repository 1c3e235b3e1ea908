package service

import (
	"context"
	"time"

	"dtwitter/internal/cache"
	"dtwitter/internal/models"
	"dtwitter/internal/repository"
)

// FriendService provides friend request and friendship business logic.
type FriendService struct {
	friendRepo  repository.FriendRepository
	userRepo    repository.UserRepository
	store       cache.Store
	invalidator *cache.Coordinator
}

// RespondInput carries the respond-to-friend-request command. Accept true
// accepts the request; false declines it.
type RespondInput struct {
	RequestID uint
	ActorID   uint
	Accept    bool
}

// RespondResult reports the outcome of a response. Friend is populated only
// on accept.
type RespondResult struct {
	RequestID uint                  `json:"request_id"`
	Accepted  bool                  `json:"accepted"`
	Friend    *models.FriendSummary `json:"friend,omitempty"`
}

// FriendshipStatus is the relationship between two users as seen by one of
// them.
type FriendshipStatus struct {
	AreFriends bool      `json:"are_friends"`
	Since      time.Time `json:"since,omitempty"`
}

// NewFriendService returns a new FriendService.
func NewFriendService(
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	store cache.Store,
	invalidator *cache.Coordinator,
) *FriendService {
	return &FriendService{
		friendRepo:  friendRepo,
		userRepo:    userRepo,
		store:       store,
		invalidator: invalidator,
	}
}

// SendFriendRequest creates a pending request from the actor to the named
// receiver.
func (s *FriendService) SendFriendRequest(ctx context.Context, actorID, receiverID uint) (*models.FriendRequest, error) {
	if actorID == receiverID {
		return nil, models.NewBadRequestError("Cannot send a friend request to yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	exists, err := s.friendRepo.FriendshipExists(ctx, actorID, receiverID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewBadRequestError("You are already friends with this user")
	}

	request := &models.FriendRequest{
		SenderID:   actorID,
		ReceiverID: receiverID,
		Status:     models.FriendRequestPending,
	}
	if err := s.friendRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	// Stale pending lists expire on their own.
	_ = s.store.Invalidate(ctx, cache.FriendRequestsKey(actorID), cache.FriendRequestsKey(receiverID))

	return request, nil
}

// RespondToFriendRequest accepts or declines a pending request. Only the
// receiver may respond, and only once: a request that already has a response
// fails BadRequest without touching anything. On accept the friendship row
// and the status update commit in one transaction, and the result carries a
// summary of the new friend.
func (s *FriendService) RespondToFriendRequest(ctx context.Context, in RespondInput) (*RespondResult, error) {
	request, err := s.friendRepo.GetRequestByID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}
	if request.ReceiverID != in.ActorID {
		return nil, models.NewUnauthorizedError("Only the receiver can respond to a friend request")
	}
	if request.Status != models.FriendRequestPending {
		return nil, models.NewBadRequestError("This friend request already has a response")
	}

	exists, err := s.friendRepo.FriendshipExists(ctx, request.SenderID, request.ReceiverID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewBadRequestError("You are already friends with this user")
	}

	if !in.Accept {
		if err := s.friendRepo.Decline(ctx, request); err != nil {
			return nil, err
		}
		s.invalidator.Apply(ctx, cache.FriendRequestResponded{
			SenderID:   request.SenderID,
			ReceiverID: request.ReceiverID,
			Accepted:   false,
		})
		return &RespondResult{RequestID: request.ID, Accepted: false}, nil
	}

	if err := s.friendRepo.Accept(ctx, request); err != nil {
		return nil, err
	}
	s.invalidator.Apply(ctx, cache.FriendRequestResponded{
		SenderID:   request.SenderID,
		ReceiverID: request.ReceiverID,
		Accepted:   true,
	})

	sender, err := s.userRepo.GetByID(ctx, request.SenderID)
	if err != nil {
		return nil, err
	}
	return &RespondResult{
		RequestID: request.ID,
		Accepted:  true,
		Friend: &models.FriendSummary{
			Username:          sender.Username,
			FullName:          sender.FullName,
			ProfilePictureURL: sender.ProfilePictureURL,
			Gender:            sender.Gender,
			DateEstablished:   time.Now().UTC(),
		},
	}, nil
}

// GetPendingRequests returns the actor's incoming pending requests through
// the cache.
func (s *FriendService) GetPendingRequests(ctx context.Context, actorID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := cache.Aside(ctx, s.store, cache.FriendRequestsKey(actorID), &requests, cache.FriendRequestsTTL, func() error {
		var fetchErr error
		requests, fetchErr = s.friendRepo.GetPendingRequests(ctx, actorID)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetFriends returns the actor's friend list through the cache.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var friends []models.User
	err := cache.Aside(ctx, s.store, cache.FriendsKey(userID), &friends, cache.FriendsTTL, func() error {
		var fetchErr error
		friends, fetchErr = s.friendRepo.GetFriends(ctx, userID)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return friends, nil
}

// GetFriendshipStatus reports whether two users are friends.
func (s *FriendService) GetFriendshipStatus(ctx context.Context, userID1, userID2 uint) (*FriendshipStatus, error) {
	var status *FriendshipStatus
	err := cache.Aside(ctx, s.store, cache.FriendshipStatusKey(userID1, userID2), &status, cache.FriendshipStatusTTL, func() error {
		friendship, fetchErr := s.friendRepo.GetFriendshipBetween(ctx, userID1, userID2)
		if fetchErr != nil {
			return fetchErr
		}
		status = &FriendshipStatus{}
		if friendship != nil {
			status.AreFriends = true
			status.Since = friendship.CreatedAt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}
