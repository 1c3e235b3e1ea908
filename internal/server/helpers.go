package server

import (
	"errors"

	"dtwitter/internal/middleware"
	"dtwitter/internal/models"
	"dtwitter/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) so
// Fiber's ErrorHandler does not overwrite the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given
// default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}

// parseID extracts a route parameter by name as a positive uint. On failure
// it writes a 400 JSON response and returns errResponseWritten; callers
// should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewBadRequestError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// actor returns the authenticated actor stored by the auth middleware. On a
// route missing AuthRequired it writes a 403 and returns errResponseWritten.
func (s *Server) actor(c *fiber.Ctx) (middleware.Actor, error) {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		_ = models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
		return middleware.Actor{}, errResponseWritten
	}
	return actor, nil
}

// optionalUserID returns the authenticated user's ID on routes where
// authentication is optional, or zero when anonymous.
func (s *Server) optionalUserID(c *fiber.Ctx) uint {
	if actor, ok := middleware.ActorFromCtx(c); ok {
		return actor.UserID
	}
	return 0
}

// fail records the failure against the handler's metric and writes the
// mapped error response.
func fail(c *fiber.Ctx, handler string, err error) error {
	code := models.CodeServerError
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	observability.MutationFailures.WithLabelValues(handler, code).Inc()
	return models.RespondWithError(c, err)
}
