package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"examcracker/internal/auth"
	"examcracker/internal/http/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a credential pair and issues the session cookie.
func Login(gate *auth.Gate, issuer *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}

		identity, err := gate.Authenticate(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrMissingCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "Please enter username and password")
			}
			return writeError(c, fiber.StatusInternalServerError, "internal server error")
		}

		token, err := issuer.Issue(identity)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to create session")
		}

		c.Cookie(&fiber.Cookie{
			Name:     auth.SessionCookie,
			Value:    token,
			Expires:  time.Now().Add(issuer.TTL()),
			HTTPOnly: true,
			SameSite: "Lax",
		})

		return c.JSON(fiber.Map{
			"success":  true,
			"is_admin": identity.IsAdmin,
			"username": identity.Username,
		})
	}
}

// Logout invalidates the session by expiring the cookie.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     auth.SessionCookie,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
		})
		return c.JSON(fiber.Map{"success": true})
	}
}

// CheckAuth reports the identity and admin flag of the active session.
func CheckAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.SessionFromCtx(c)
		if claims == nil {
			return c.JSON(fiber.Map{"authenticated": false})
		}
		return c.JSON(fiber.Map{
			"authenticated": true,
			"username":      claims.Username,
			"is_admin":      claims.IsAdmin,
		})
	}
}
