package addresses

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chainsearch/chainsearch/internal/apperr"
	"github.com/chainsearch/chainsearch/internal/blockchain"
)

const maxAddressLength = 200

var (
	// ErrDuplicate is returned when the owner already registered the address.
	ErrDuplicate = apperr.New(apperr.ErrConflict, "The fields crypto, address, owner must make a unique set.")
	// ErrAddressNotFound is returned when deleting an address the owner does not have.
	ErrAddressNotFound = apperr.New(apperr.ErrNotFound, "Not found.")
)

// BalanceSource looks up the confirmed balance of a single address.
type BalanceSource interface {
	AddressBalance(ctx context.Context, crypto, address string) (blockchain.Balance, error)
}

// Service exposes the address registry scoped to an owner.
type Service struct {
	repo     Repository
	balances BalanceSource
}

// NewService builds an address service instance.
func NewService(repo Repository, balances BalanceSource) *Service {
	return &Service{repo: repo, balances: balances}
}

// CreateInput captures data required to register an address.
type CreateInput struct {
	OwnerID string
	Crypto  string
	Address string
}

// List returns every address the owner registered.
func (s *Service) List(ctx context.Context, ownerID string) ([]Address, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create registers an address for the owner.
func (s *Service) Create(ctx context.Context, input CreateInput) (Address, error) {
	if _, err := blockchain.ParseCurrency(input.Crypto); err != nil {
		return Address{}, err
	}
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return Address{}, apperr.New(apperr.ErrInvalidArgument, "address: this field may not be blank")
	}
	if len(address) > maxAddressLength {
		return Address{}, apperr.New(apperr.ErrInvalidArgument, "address: ensure this field has no more than %d characters", maxAddressLength)
	}

	addr := Address{
		ID:        uuid.New().String(),
		Crypto:    input.Crypto,
		Address:   address,
		OwnerID:   input.OwnerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, addr); err != nil {
		return Address{}, err
	}
	return addr, nil
}

// Delete removes the owner's (crypto, address) registration.
func (s *Service) Delete(ctx context.Context, ownerID, crypto, address string) error {
	return s.repo.Delete(ctx, ownerID, crypto, address)
}

// Balances looks up each registered address in turn. The first failure aborts.
func (s *Service) Balances(ctx context.Context, ownerID string) ([]blockchain.Balance, error) {
	addrs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]blockchain.Balance, 0, len(addrs))
	for _, a := range addrs {
		bal, err := s.balances.AddressBalance(ctx, a.Crypto, a.Address)
		if err != nil {
			return nil, err
		}
		out = append(out, bal)
	}
	return out, nil
}
