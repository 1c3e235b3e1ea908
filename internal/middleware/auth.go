package middleware

import (
	"strconv"
	"strings"

	"dtwitter/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// Actor is the already-validated identity every mutation handler trusts:
// the acting user's ID plus the role set attached to the token.
type Actor struct {
	UserID uint
	Roles  []string
}

// HasRole reports whether the actor carries the given role.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ActorFromCtx returns the actor stored by AuthRequired, or false if the
// route was not authenticated.
func ActorFromCtx(c *fiber.Ctx) (Actor, bool) {
	actor, ok := c.Locals("actor").(Actor)
	return actor, ok
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// On success it stores the Actor (user ID + roles) in Fiber locals.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token claims",
		})
	}

	// User ID comes from the "sub" claim (RFC 7519 subject).
	subStr, ok := claims["sub"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token structure - missing subject",
		})
	}
	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID in token",
		})
	}

	actor := Actor{UserID: uint(userIDVal)}
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				actor.Roles = append(actor.Roles, role)
			}
		}
	}

	c.Locals("actor", actor)
	c.Locals("user_id", actor.UserID)

	return c.Next()
}
