package blockchain

import (
	"context"
	"net/http"
	"time"

	"github.com/chainsearch/chainsearch/internal/apperr"
)

// DefaultTimeout bounds the single outbound call of each operation.
const DefaultTimeout = 15 * time.Second

// Handler is the capability every currency variant implements.
type Handler interface {
	TransactionsByAddress(ctx context.Context, address string, page, size int) (Transactions, error)
	Transaction(ctx context.Context, tx string) (Transaction, error)
	AddressBalance(ctx context.Context, address string) (Balance, error)
}

// Client dispatches lookups to the handler registered for a currency code.
// The registry is fixed at construction.
type Client struct {
	handlers map[Currency]Handler
}

// NewClient wires the BTC, ETH and BCH handlers against the public explorer.
// A nil httpClient gets one with DefaultTimeout.
func NewClient(httpClient *http.Client) *Client {
	return NewClientWithBaseURL(httpClient, DefaultBaseURL)
}

// NewClientWithBaseURL is NewClient rooted at a different explorer host.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return NewClientWithHandlers(map[Currency]Handler{
		BTC: NewBTCHandler(httpClient, baseURL),
		ETH: NewETHHandler(httpClient, baseURL),
		BCH: NewBCHHandler(httpClient, baseURL),
	})
}

// NewClientWithHandlers builds a dispatcher over an explicit registry.
func NewClientWithHandlers(handlers map[Currency]Handler) *Client {
	registry := make(map[Currency]Handler, len(handlers))
	for c, h := range handlers {
		registry[c] = h
	}
	return &Client{handlers: registry}
}

// TransactionsForAddress returns one page of an address's transactions.
func (c *Client) TransactionsForAddress(ctx context.Context, crypto, address string, page, size int) (Transactions, error) {
	if page < 0 {
		return Transactions{}, apperr.New(apperr.ErrInvalidArgument, "'page' cannot be negative")
	}
	h, err := c.handler(crypto)
	if err != nil {
		return Transactions{}, err
	}
	return h.TransactionsByAddress(ctx, address, page, size)
}

// Transaction returns a single normalized transaction.
func (c *Client) Transaction(ctx context.Context, crypto, tx string) (Transaction, error) {
	h, err := c.handler(crypto)
	if err != nil {
		return Transaction{}, err
	}
	return h.Transaction(ctx, tx)
}

// AddressBalance returns the confirmed balance of an address.
func (c *Client) AddressBalance(ctx context.Context, crypto, address string) (Balance, error) {
	h, err := c.handler(crypto)
	if err != nil {
		return Balance{}, err
	}
	return h.AddressBalance(ctx, address)
}

func (c *Client) handler(crypto string) (Handler, error) {
	h, ok := c.handlers[Currency(crypto)]
	if !ok {
		return nil, unsupported(crypto)
	}
	return h, nil
}
