package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chainsearch/chainsearch/internal/auth"
)

// RegisterAuthRoutes wires authentication endpoints. Logout needs a valid token.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, requireAuth fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/register/", h.Register)
	group.Post("/login/", h.Login)
	group.Post("/refresh/", h.Refresh)
	group.Post("/logout/", requireAuth, h.Logout)
}
