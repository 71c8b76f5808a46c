package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chainsearch/chainsearch/internal/search"
	"github.com/chainsearch/chainsearch/internal/searchlog"
)

// RegisterHistoryRoutes wires the caller's search history under /searches.
func RegisterHistoryRoutes(r fiber.Router, h *searchlog.Handler) {
	r.Get("/addresses/", h.AddressSearches)
	r.Get("/transactions/", h.TransactionSearches)
}

// RegisterLookupRoutes wires the public lookups. optionalAuth attaches the
// caller so successful lookups land in their history.
func RegisterLookupRoutes(r fiber.Router, h *search.Handler, optionalAuth fiber.Handler) {
	r.Get("/:crypto/addresses/:address/transactions/", optionalAuth, h.AddressTransactions)
	r.Get("/:crypto/transactions/:tx/", optionalAuth, h.Transaction)
}
