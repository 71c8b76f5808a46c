package searchlog

import "time"

// PageSize is the number of history rows returned per page.
const PageSize = 50

// AddressSearch records a successful address transactions lookup.
type AddressSearch struct {
	ID        string    `json:"id"`
	Crypto    string    `json:"crypto"`
	Address   string    `json:"address"`
	Page      int       `json:"page"`
	Size      int       `json:"size"`
	CreatorID string    `json:"creator"`
	Created   time.Time `json:"created"`
}

// TransactionSearch records a successful single transaction lookup.
type TransactionSearch struct {
	ID          string    `json:"id"`
	Crypto      string    `json:"crypto"`
	Transaction string    `json:"transaction"`
	CreatorID   string    `json:"creator"`
	Created     time.Time `json:"created"`
}

// Page is one page of a user's history, newest first.
type Page[T any] struct {
	Page    int `json:"page"`
	Size    int `json:"size"`
	Results []T `json:"results"`
}
