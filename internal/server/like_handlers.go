package server

import (
	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.likeService.LikePost(c.UserContext(), actor.UserID, postID)
	if err != nil {
		return fail(c, "like_post", err)
	}

	return c.JSON(result)
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.likeService.UnlikePost(c.UserContext(), actor.UserID, postID)
	if err != nil {
		return fail(c, "unlike_post", err)
	}

	return c.JSON(result)
}

// LikeComment handles POST /api/comments/:id/like
func (s *Server) LikeComment(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.likeService.LikeComment(c.UserContext(), actor.UserID, commentID)
	if err != nil {
		return fail(c, "like_comment", err)
	}

	return c.JSON(result)
}

// UnlikeComment handles DELETE /api/comments/:id/like
func (s *Server) UnlikeComment(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.likeService.UnlikeComment(c.UserContext(), actor.UserID, commentID)
	if err != nil {
		return fail(c, "unlike_comment", err)
	}

	return c.JSON(result)
}
