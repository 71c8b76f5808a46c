package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chainsearch/chainsearch/internal/addresses"
)

// RegisterAddressRoutes wires the caller's address registry and balances under /my.
func RegisterAddressRoutes(r fiber.Router, h *addresses.Handler) {
	r.Get("/addresses/", h.List)
	r.Post("/addresses/", h.Create)
	r.Delete("/addresses/:address/", h.Delete)
	r.Get("/balance/", h.Balance)
}
