package addresses

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/chainsearch/chainsearch/internal/apperr"
	"github.com/chainsearch/chainsearch/internal/auth"
)

// Handler exposes the caller's address registry over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds an address HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Crypto  string `json:"crypto" form:"crypto"`
	Address string `json:"address" form:"address"`
}

type addressResponse struct {
	ID      string `json:"id"`
	Crypto  string `json:"crypto"`
	Address string `json:"address"`
}

func toResponse(a Address) addressResponse {
	return addressResponse{ID: a.ID, Crypto: a.Crypto, Address: a.Address}
}

// List returns the caller's addresses.
func (h *Handler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	addrs, err := h.service.List(c.UserContext(), user.ID)
	if err != nil {
		return apperr.Fiber(err)
	}
	out := make([]addressResponse, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, toResponse(a))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Create registers an address for the caller.
func (h *Handler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	addr, err := h.service.Create(c.UserContext(), CreateInput{OwnerID: user.ID, Crypto: req.Crypto, Address: req.Address})
	if err != nil {
		return apperr.Fiber(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(addr))
}

// Delete removes one of the caller's addresses; the currency comes from ?crypto=.
func (h *Handler) Delete(c *fiber.Ctx) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	if err := h.service.Delete(c.UserContext(), user.ID, utils.CopyString(c.Query("crypto")), utils.CopyString(c.Params("address"))); err != nil {
		return apperr.Fiber(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Balance returns the balance of every address the caller owns.
func (h *Handler) Balance(c *fiber.Ctx) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	balances, err := h.service.Balances(c.UserContext(), user.ID)
	if err != nil {
		return apperr.Fiber(err)
	}
	return c.Status(http.StatusOK).JSON(balances)
}
