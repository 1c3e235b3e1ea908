package server

import (
	"dtwitter/internal/models"
	"dtwitter/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Content       string `json:"content"`
		PhotoURL      string `json:"photo_url,omitempty"`
		PhotoPublicID string `json:"photo_public_id,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		ActorID:       actor.UserID,
		Content:       req.Content,
		PhotoURL:      req.PhotoURL,
		PhotoPublicID: req.PhotoPublicID,
	})
	if err != nil {
		return fail(c, "create_post", err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	userID := s.optionalUserID(c)

	posts, err := s.postService.ListRecent(c.UserContext(), page.Limit, page.Offset, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := s.optionalUserID(c)

	post, err := s.postService.GetPost(c.UserContext(), id, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		PostID:     id,
		ActorID:    actor.UserID,
		ActorRoles: actor.Roles,
	})
	if err != nil {
		return fail(c, "delete_post", err)
	}

	return c.JSON(result)
}
