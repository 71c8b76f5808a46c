package addresses

import "time"

// Address is a cryptocurrency address registered by its owner. The
// (Crypto, Address, OwnerID) triple is unique.
type Address struct {
	ID        string
	Crypto    string
	Address   string
	OwnerID   string
	CreatedAt time.Time
}
