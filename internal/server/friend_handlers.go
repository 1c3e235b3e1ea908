package server

import (
	"dtwitter/internal/models"
	"dtwitter/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/friends/requests/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	receiverID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	request, err := s.friendService.SendFriendRequest(c.UserContext(), actor.UserID, receiverID)
	if err != nil {
		return fail(c, "send_friend_request", err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetPendingRequests handles GET /api/friends/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}

	requests, err := s.friendService.GetPendingRequests(c.UserContext(), actor.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(requests)
}

// RespondToFriendRequest handles POST /api/friends/requests/:requestId/respond
func (s *Server) RespondToFriendRequest(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	result, err := s.friendService.RespondToFriendRequest(c.UserContext(), service.RespondInput{
		RequestID: requestID,
		ActorID:   actor.UserID,
		Accept:    req.Accept,
	})
	if err != nil {
		return fail(c, "respond_friend_request", err)
	}

	return c.JSON(result)
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}

	friends, err := s.friendService.GetFriends(c.UserContext(), actor.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(friends)
}

// GetFriendshipStatus handles GET /api/friends/status/:userId
func (s *Server) GetFriendshipStatus(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	status, err := s.friendService.GetFriendshipStatus(c.UserContext(), actor.UserID, otherID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(status)
}
