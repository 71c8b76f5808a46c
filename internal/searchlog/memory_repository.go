package searchlog

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu           sync.RWMutex
	addresses    []AddressSearch
	transactions []TransactionSearch
}

// NewMemoryRepository constructs an in-memory history store for tests and development.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) AppendAddressSearch(_ context.Context, s AddressSearch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addresses = append(r.addresses, s)
	return nil
}

func (r *memoryRepository) AppendTransactionSearch(_ context.Context, s TransactionSearch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, s)
	return nil
}

func (r *memoryRepository) ListAddressSearches(_ context.Context, creatorID string, limit, offset int) ([]AddressSearch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newestFirst(r.addresses, func(s AddressSearch) bool { return s.CreatorID == creatorID }, limit, offset), nil
}

func (r *memoryRepository) ListTransactionSearches(_ context.Context, creatorID string, limit, offset int) ([]TransactionSearch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newestFirst(r.transactions, func(s TransactionSearch) bool { return s.CreatorID == creatorID }, limit, offset), nil
}

// newestFirst walks rows from the most recently appended one.
func newestFirst[T any](rows []T, keep func(T) bool, limit, offset int) []T {
	out := []T{}
	skipped := 0
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		if !keep(rows[i]) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, rows[i])
	}
	return out
}
