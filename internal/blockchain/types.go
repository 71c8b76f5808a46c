package blockchain

import (
	"math/big"
	"time"
)

// Entry is one side of a transfer: who sent or received, and how much in the
// currency's smallest unit. Address is nil for unknown or burned outputs.
type Entry struct {
	Address *string  `json:"address"`
	Value   *big.Int `json:"value"`
}

// Transaction is the common shape every handler produces.
type Transaction struct {
	Inputs    []Entry   `json:"inputs"`
	Outputs   []Entry   `json:"outputs"`
	Timestamp time.Time `json:"timestamp"`
}

// Transactions wraps a page of transactions for an address.
type Transactions struct {
	Transactions []Transaction `json:"transactions"`
}

// Balance is the confirmed balance of a single address.
type Balance struct {
	Crypto  Currency `json:"crypto"`
	Address string   `json:"address"`
	Balance *big.Int `json:"balance"`
}

// PageToOffset converts a page number into the cursor used by the UTXO explorer.
func PageToOffset(page, size int) int {
	return page * size
}

func unixUTC(seconds int64) time.Time {
	return time.Unix(seconds, 0).UTC()
}
