package server

import (
	"dtwitter/internal/models"
	"dtwitter/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid username"))
	}

	user, err := s.userService.GetProfile(c.UserContext(), username)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(user)
}

// GetUserPhotos handles GET /api/users/:username/photos
func (s *Server) GetUserPhotos(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid username"))
	}

	photos, err := s.userService.GetPhotos(c.UserContext(), username)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(photos)
}

// ClearProfileField handles DELETE /api/moderation/users/:username/:field
func (s *Server) ClearProfileField(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	username := c.Params("username")
	field := c.Params("field")
	if username == "" || field == "" {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid username or field"))
	}

	user, err := s.userService.ClearProfileField(c.UserContext(), service.ClearFieldInput{
		Username:   username,
		Field:      field,
		ActorRoles: actor.Roles,
	})
	if err != nil {
		return fail(c, "clear_profile_field", err)
	}

	return c.JSON(user)
}
