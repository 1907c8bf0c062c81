package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/greencity/place-service/internal/pkg/errors"
	"github.com/greencity/place-service/internal/pkg/utils"
)

// Locals keys set by the auth middleware.
const (
	PrincipalKey = "principal"
	RoleKey      = "role"
)

// Auth validates the HMAC bearer token and exposes the principal name
// (the email claim) and role to downstream handlers.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		email, _ := claims["email"].(string)
		if email == "" {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		c.Locals(PrincipalKey, email)
		if role, ok := claims["role"].(string); ok {
			c.Locals(RoleKey, role)
		}

		return c.Next()
	}
}

// RequireModerator gates moderation routes on the role claim.
func RequireModerator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(RoleKey).(string)
		if role != "MODERATOR" && role != "ADMIN" {
			return utils.SendError(c, apperrors.ErrForbidden)
		}
		return c.Next()
	}
}

// Principal returns the authenticated principal name.
func Principal(c *fiber.Ctx) string {
	principal, _ := c.Locals(PrincipalKey).(string)
	return principal
}
