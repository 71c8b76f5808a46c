package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/chainsearch/chainsearch/internal/apperr"
	"github.com/chainsearch/chainsearch/internal/identity"
)

const userLocal = "user"

// RequireAuth rejects requests without a valid access token.
func RequireAuth(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "Authentication credentials were not provided.")
		}
		user, err := svc.Verify(c.UserContext(), token)
		if err != nil {
			return apperr.Fiber(err)
		}
		c.Locals(userLocal, user)
		return c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and lets
// anonymous requests through. A present but invalid token is still rejected.
func OptionalAuth(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}
		user, err := svc.Verify(c.UserContext(), token)
		if err != nil {
			return apperr.Fiber(err)
		}
		c.Locals(userLocal, user)
		return c.Next()
	}
}

// UserFrom returns the user attached by RequireAuth or OptionalAuth.
func UserFrom(c *fiber.Ctx) (identity.User, bool) {
	user, ok := c.Locals(userLocal).(identity.User)
	return user, ok
}

// bearerToken accepts both "Bearer <jwt>" and the "Token <jwt>" scheme.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "bearer", "token":
	default:
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
