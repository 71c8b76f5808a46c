package searchlog

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/chainsearch/chainsearch/internal/apperr"
	"github.com/chainsearch/chainsearch/internal/auth"
)

// Handler serves the caller's search history.
type Handler struct {
	service *Service
}

// NewHandler builds a history HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AddressSearches handles GET /searches/addresses/?page=N.
func (h *Handler) AddressSearches(c *fiber.Ctx) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	page, err := PageParam(c)
	if err != nil {
		return err
	}
	out, err := h.service.ListAddressSearches(c.UserContext(), user.ID, page)
	if err != nil {
		return apperr.Fiber(err)
	}
	return c.Status(http.StatusOK).JSON(out)
}

// TransactionSearches handles GET /searches/transactions/?page=N.
func (h *Handler) TransactionSearches(c *fiber.Ctx) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	page, err := PageParam(c)
	if err != nil {
		return err
	}
	out, err := h.service.ListTransactionSearches(c.UserContext(), user.ID, page)
	if err != nil {
		return apperr.Fiber(err)
	}
	return c.Status(http.StatusOK).JSON(out)
}

// PageParam reads ?page=, defaulting to 0. Non-integers are rejected with 400.
func PageParam(c *fiber.Ctx) (int, error) {
	raw := c.Query("page")
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "'page' must be an integer")
	}
	return page, nil
}
