package server

import (
	"dtwitter/internal/models"
	"dtwitter/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		ActorID: actor.UserID,
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return fail(c, "create_comment", err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		CommentID:  commentID,
		ActorID:    actor.UserID,
		ActorRoles: actor.Roles,
	})
	if err != nil {
		return fail(c, "delete_comment", err)
	}

	return c.JSON(result)
}
