package blockchain

import (
	"context"
	"math/big"
	"net/http"
	"net/url"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
)

// utxoEntry already matches the common input/output shape.
type utxoEntry struct {
	Address *string         `json:"address"`
	Value   *btcutil.Amount `json:"value"`
}

type utxoTransaction struct {
	Inputs  []utxoEntry `json:"inputs"`
	Outputs []utxoEntry `json:"outputs"`
	Time    *int64      `json:"time"`
}

type utxoBalance struct {
	Address   string          `json:"address"`
	Confirmed *btcutil.Amount `json:"confirmed"`
}

// UTXOHandler talks to the haskoin-store explorer. BTC and BCH share the API
// and differ only in the chain path segment.
type UTXOHandler struct {
	upstream upstream
	base     string
	currency Currency
}

// NewBTCHandler builds the BTC variant rooted at baseURL.
func NewBTCHandler(httpClient *http.Client, baseURL string) *UTXOHandler {
	return newUTXOHandler(httpClient, baseURL, BTC)
}

// NewBCHHandler builds the BCH variant rooted at baseURL.
func NewBCHHandler(httpClient *http.Client, baseURL string) *UTXOHandler {
	return newUTXOHandler(httpClient, baseURL, BCH)
}

func newUTXOHandler(httpClient *http.Client, baseURL string, currency Currency) *UTXOHandler {
	return &UTXOHandler{
		upstream: upstream{httpClient: httpClient},
		base:     join(baseURL, "haskoin-store", string(currency)),
		currency: currency,
	}
}

// TransactionsByAddress lists full transactions using limit/offset paging.
func (h *UTXOHandler) TransactionsByAddress(ctx context.Context, address string, page, size int) (Transactions, error) {
	endpoint := join(h.base, "address", address, "transactions", "full")
	params := url.Values{}
	params.Set("limit", strconv.Itoa(size))
	params.Set("offset", strconv.Itoa(PageToOffset(page, size)))

	var body []utxoTransaction
	if err := h.upstream.getJSON(ctx, endpoint, params, addressTransactionsResource(address), &body); err != nil {
		return Transactions{}, err
	}
	if body == nil {
		return Transactions{}, schemaError("transactions: expected a list")
	}

	out := Transactions{Transactions: make([]Transaction, 0, len(body))}
	for i, raw := range body {
		tx, err := transformUTXOTransaction(raw)
		if err != nil {
			return Transactions{}, schemaError("transactions[%d].%v", i, err)
		}
		out.Transactions = append(out.Transactions, tx)
	}
	if err := validateTransactions(out); err != nil {
		return Transactions{}, err
	}
	return out, nil
}

// Transaction fetches a single transaction by id.
func (h *UTXOHandler) Transaction(ctx context.Context, tx string) (Transaction, error) {
	endpoint := join(h.base, "transaction", tx)

	var body utxoTransaction
	if err := h.upstream.getJSON(ctx, endpoint, nil, transactionResource(tx), &body); err != nil {
		return Transaction{}, err
	}
	out, err := transformUTXOTransaction(body)
	if err != nil {
		return Transaction{}, schemaError("%v", err)
	}
	if err := validateTransaction(out); err != nil {
		return Transaction{}, err
	}
	return out, nil
}

// AddressBalance reports the confirmed balance in satoshis.
func (h *UTXOHandler) AddressBalance(ctx context.Context, address string) (Balance, error) {
	endpoint := join(h.base, "address", address, "balance")

	var body utxoBalance
	if err := h.upstream.getJSON(ctx, endpoint, nil, balanceResource(address), &body); err != nil {
		return Balance{}, err
	}
	out := Balance{Crypto: h.currency, Address: body.Address}
	if body.Confirmed != nil {
		out.Balance = big.NewInt(int64(*body.Confirmed))
	}
	if err := validateBalance(out); err != nil {
		return Balance{}, err
	}
	return out, nil
}

func transformUTXOTransaction(raw utxoTransaction) (Transaction, error) {
	if raw.Time == nil {
		return Transaction{}, fieldError("timestamp: this field is required")
	}
	return Transaction{
		Inputs:    convertEntries(raw.Inputs),
		Outputs:   convertEntries(raw.Outputs),
		Timestamp: unixUTC(*raw.Time),
	}, nil
}

// convertEntries keeps a missing list nil so validation can tell it apart from an empty one.
func convertEntries(raw []utxoEntry) []Entry {
	if raw == nil {
		return nil
	}
	out := make([]Entry, 0, len(raw))
	for _, e := range raw {
		entry := Entry{Address: e.Address}
		if e.Value != nil {
			entry.Value = big.NewInt(int64(*e.Value))
		}
		out = append(out, entry)
	}
	return out
}
