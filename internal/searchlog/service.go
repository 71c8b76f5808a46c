package searchlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chainsearch/chainsearch/internal/apperr"
	"github.com/chainsearch/chainsearch/internal/notification"
)

// Service appends and pages through a user's search history.
type Service struct {
	repo     Repository
	notifier notification.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the history store to an event notifier. A nil notifier disables publishing.
func NewService(repo Repository, notifier notification.Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

// LogAddressSearch appends an address search row for creatorID.
func (s *Service) LogAddressSearch(ctx context.Context, creatorID, crypto, address string, page, size int) (AddressSearch, error) {
	row := AddressSearch{
		ID:        uuid.NewString(),
		Crypto:    crypto,
		Address:   address,
		Page:      page,
		Size:      size,
		CreatorID: creatorID,
		Created:   s.now().UTC(),
	}
	if err := s.repo.AppendAddressSearch(ctx, row); err != nil {
		return AddressSearch{}, err
	}
	s.publish(ctx, notification.Event{
		Kind:      notification.KindAddressSearch,
		ID:        row.ID,
		Crypto:    row.Crypto,
		Address:   row.Address,
		Page:      &row.Page,
		Size:      &row.Size,
		CreatorID: row.CreatorID,
		Created:   row.Created,
	})
	return row, nil
}

// LogTransactionSearch appends a transaction search row for creatorID.
func (s *Service) LogTransactionSearch(ctx context.Context, creatorID, crypto, tx string) (TransactionSearch, error) {
	row := TransactionSearch{
		ID:          uuid.NewString(),
		Crypto:      crypto,
		Transaction: tx,
		CreatorID:   creatorID,
		Created:     s.now().UTC(),
	}
	if err := s.repo.AppendTransactionSearch(ctx, row); err != nil {
		return TransactionSearch{}, err
	}
	s.publish(ctx, notification.Event{
		Kind:        notification.KindTransactionSearch,
		ID:          row.ID,
		Crypto:      row.Crypto,
		Transaction: row.Transaction,
		CreatorID:   row.CreatorID,
		Created:     row.Created,
	})
	return row, nil
}

// ListAddressSearches returns one page of the user's address searches, newest first.
func (s *Service) ListAddressSearches(ctx context.Context, creatorID string, page int) (Page[AddressSearch], error) {
	if err := checkPage(page); err != nil {
		return Page[AddressSearch]{}, err
	}
	rows, err := s.repo.ListAddressSearches(ctx, creatorID, PageSize, page*PageSize)
	if err != nil {
		return Page[AddressSearch]{}, err
	}
	return Page[AddressSearch]{Page: page, Size: PageSize, Results: rows}, nil
}

// ListTransactionSearches returns one page of the user's transaction searches, newest first.
func (s *Service) ListTransactionSearches(ctx context.Context, creatorID string, page int) (Page[TransactionSearch], error) {
	if err := checkPage(page); err != nil {
		return Page[TransactionSearch]{}, err
	}
	rows, err := s.repo.ListTransactionSearches(ctx, creatorID, PageSize, page*PageSize)
	if err != nil {
		return Page[TransactionSearch]{}, err
	}
	return Page[TransactionSearch]{Page: page, Size: PageSize, Results: rows}, nil
}

// publish never fails the caller: the row is already stored.
func (s *Service) publish(ctx context.Context, event notification.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, event); err != nil {
		s.logger.Warn("search event not published", "kind", event.Kind, "id", event.ID, "error", err)
	}
}

func checkPage(page int) error {
	if page < 0 {
		return apperr.New(apperr.ErrInvalidArgument, "'page' cannot be negative")
	}
	return nil
}
