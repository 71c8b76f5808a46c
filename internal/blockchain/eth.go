package blockchain

import (
	"context"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
)

// ethTransaction is the account-chain explorer's transaction record.
type ethTransaction struct {
	From      *string `json:"from"`
	To        *string `json:"to"`
	Value     numeric `json:"value"`
	Timestamp numeric `json:"timestamp"`
}

type ethTransactionPage struct {
	Transactions *[]ethTransaction `json:"transactions"`
}

type ethAccount struct {
	Balance numeric `json:"balance"`
}

// ETHHandler talks to the account-chain explorer.
type ETHHandler struct {
	upstream upstream
	base     string
}

// NewETHHandler builds the ETH variant rooted at baseURL.
func NewETHHandler(httpClient *http.Client, baseURL string) *ETHHandler {
	return &ETHHandler{upstream: upstream{httpClient: httpClient}, base: baseURL}
}

// TransactionsByAddress lists an account's transactions; the explorer pages natively.
func (h *ETHHandler) TransactionsByAddress(ctx context.Context, address string, page, size int) (Transactions, error) {
	endpoint := join(h.base, "v2", "eth", "data", "account", address, "transactions")
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	var body ethTransactionPage
	if err := h.upstream.getJSON(ctx, endpoint, params, addressTransactionsResource(address), &body); err != nil {
		return Transactions{}, err
	}
	if body.Transactions == nil {
		return Transactions{}, schemaError("transactions: this field is required")
	}

	out := Transactions{Transactions: make([]Transaction, 0, len(*body.Transactions))}
	for i, raw := range *body.Transactions {
		tx, err := transformETHTransaction(raw)
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

// Transaction fetches a single transaction by hash.
func (h *ETHHandler) Transaction(ctx context.Context, tx string) (Transaction, error) {
	endpoint := join(h.base, "v2", "eth", "data", "transaction", tx)

	var body ethTransaction
	if err := h.upstream.getJSON(ctx, endpoint, nil, transactionResource(tx), &body); err != nil {
		return Transaction{}, err
	}
	out, err := transformETHTransaction(body)
	if err != nil {
		return Transaction{}, schemaError("%v", err)
	}
	if err := validateTransaction(out); err != nil {
		return Transaction{}, err
	}
	return out, nil
}

// AddressBalance reads the account balance. The explorer keys the body by address.
func (h *ETHHandler) AddressBalance(ctx context.Context, address string) (Balance, error) {
	endpoint := join(h.base, "eth", "account", address, "balance")

	var body map[string]ethAccount
	if err := h.upstream.getJSON(ctx, endpoint, nil, balanceResource(address), &body); err != nil {
		return Balance{}, err
	}
	key, account, ok := pickAccount(body, address)
	if !ok {
		return Balance{}, schemaError("balance: no entry for address '%s'", address)
	}
	balance, ok := parseWei(account.Balance)
	if !ok {
		return Balance{}, schemaError("balance: '%s' is not a valid integer", account.Balance)
	}

	out := Balance{Crypto: ETH, Address: key, Balance: balance}
	if err := validateBalance(out); err != nil {
		return Balance{}, err
	}
	return out, nil
}

func pickAccount(body map[string]ethAccount, address string) (string, ethAccount, bool) {
	for key, account := range body {
		if strings.EqualFold(key, address) {
			return key, account, true
		}
	}
	if len(body) == 1 {
		for key, account := range body {
			return key, account, true
		}
	}
	return "", ethAccount{}, false
}

type fieldError string

func (e fieldError) Error() string { return string(e) }

func transformETHTransaction(raw ethTransaction) (Transaction, error) {
	value, ok := parseWei(raw.Value)
	if !ok {
		return Transaction{}, fieldError("value: '" + string(raw.Value) + "' is not a valid integer")
	}
	if raw.Timestamp == "" {
		return Transaction{}, fieldError("timestamp: this field is required")
	}
	seconds, err := strconv.ParseInt(string(raw.Timestamp), 10, 64)
	if err != nil {
		return Transaction{}, fieldError("timestamp: '" + string(raw.Timestamp) + "' is not a unix timestamp")
	}

	return Transaction{
		Inputs:    []Entry{{Address: raw.From, Value: value}},
		Outputs:   []Entry{{Address: raw.To, Value: new(big.Int).Set(value)}},
		Timestamp: unixUTC(seconds),
	}, nil
}

// parseWei accepts decimal or 0x-prefixed hex quantities.
func parseWei(n numeric) (*big.Int, bool) {
	if n == "" {
		return nil, false
	}
	return math.ParseBig256(string(n))
}
