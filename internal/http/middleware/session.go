package middleware

import (
	"github.com/gofiber/fiber/v2"

	"examcracker/internal/auth"
)

const (
	// SessionLocalKey is the key under which the parsed session claims are
	// stored in Fiber's context locals. Nil when the request is anonymous.
	SessionLocalKey = "session"
)

// Session parses the session cookie and stores the claims in context locals.
// Missing or invalid tokens leave the request anonymous; route handlers and
// RequireAdmin decide whether that is acceptable.
func Session(issuer *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(auth.SessionCookie)
		if token != "" {
			if claims, err := issuer.Parse(token); err == nil {
				c.Locals(SessionLocalKey, claims)
			}
		}
		return c.Next()
	}
}

// SessionFromCtx returns the session claims stored by Session, or nil for an
// anonymous request.
func SessionFromCtx(c *fiber.Ctx) *auth.SessionClaims {
	if v := c.Locals(SessionLocalKey); v != nil {
		if claims, ok := v.(*auth.SessionClaims); ok {
			return claims
		}
	}
	return nil
}

// RequireAdmin gates mutating routes behind the admin flag on the active
// session. Anonymous and regular sessions receive an authorization error,
// not a generic failure.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := SessionFromCtx(c)
		if claims == nil || !claims.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}
