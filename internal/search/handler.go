package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/chainsearch/chainsearch/internal/apperr"
	"github.com/chainsearch/chainsearch/internal/auth"
	"github.com/chainsearch/chainsearch/internal/blockchain"
	"github.com/chainsearch/chainsearch/internal/searchlog"
)

// PageSize is locked for address transaction lookups.
const PageSize = 50

// Lookup fetches normalized data from the explorers.
type Lookup interface {
	TransactionsForAddress(ctx context.Context, crypto, address string, page, size int) (blockchain.Transactions, error)
	Transaction(ctx context.Context, crypto, tx string) (blockchain.Transaction, error)
}

// Recorder appends successful lookups to the caller's history.
type Recorder interface {
	LogAddressSearch(ctx context.Context, creatorID, crypto, address string, page, size int) (searchlog.AddressSearch, error)
	LogTransactionSearch(ctx context.Context, creatorID, crypto, tx string) (searchlog.TransactionSearch, error)
}

// Handler serves the public lookup endpoints.
type Handler struct {
	lookup   Lookup
	recorder Recorder
	logger   *slog.Logger
}

// NewHandler builds a lookup handler.
func NewHandler(lookup Lookup, recorder Recorder, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{lookup: lookup, recorder: recorder, logger: logger}
}

// AddressTransactions handles GET /:crypto/addresses/:address/transactions/.
func (h *Handler) AddressTransactions(c *fiber.Ctx) error {
	page, err := searchlog.PageParam(c)
	if err != nil {
		return err
	}
	crypto, address := utils.CopyString(c.Params("crypto")), utils.CopyString(c.Params("address"))

	txs, err := h.lookup.TransactionsForAddress(c.UserContext(), crypto, address, page, PageSize)
	if err != nil {
		return apperr.Fiber(err)
	}
	if user, ok := auth.UserFrom(c); ok {
		if _, err := h.recorder.LogAddressSearch(c.UserContext(), user.ID, crypto, address, page, PageSize); err != nil {
			h.logger.Error("record address search", "user_id", user.ID, "error", err)
			return apperr.Fiber(err)
		}
	}
	return c.Status(http.StatusOK).JSON(txs)
}

// Transaction handles GET /:crypto/transactions/:tx/.
func (h *Handler) Transaction(c *fiber.Ctx) error {
	crypto, hash := utils.CopyString(c.Params("crypto")), utils.CopyString(c.Params("tx"))

	tx, err := h.lookup.Transaction(c.UserContext(), crypto, hash)
	if err != nil {
		return apperr.Fiber(err)
	}
	if user, ok := auth.UserFrom(c); ok {
		if _, err := h.recorder.LogTransactionSearch(c.UserContext(), user.ID, crypto, hash); err != nil {
			h.logger.Error("record transaction search", "user_id", user.ID, "error", err)
			return apperr.Fiber(err)
		}
	}
	return c.Status(http.StatusOK).JSON(tx)
}
