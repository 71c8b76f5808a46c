package addresses

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage []Address
}

// NewMemoryRepository constructs an in-memory repository for tests and development.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Address{}
	for _, a := range r.storage {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryRepository) Create(_ context.Context, addr Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.storage {
		if a.OwnerID == addr.OwnerID && a.Crypto == addr.Crypto && a.Address == addr.Address {
			return ErrDuplicate
		}
	}
	r.storage = append(r.storage, addr)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, ownerID, crypto, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.storage {
		if a.OwnerID == ownerID && a.Crypto == crypto && a.Address == address {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrAddressNotFound
}
