package notification

import (
	"context"
	"log/slog"
	"time"
)

const (
	// KindAddressSearch is published after a successful address transactions lookup.
	KindAddressSearch = "address_search"
	// KindTransactionSearch is published after a successful transaction lookup.
	KindTransactionSearch = "transaction_search"
)

// Event describes a search that was appended to a user's history.
type Event struct {
	Kind        string    `json:"kind"`
	ID          string    `json:"id"`
	Crypto      string    `json:"crypto"`
	Address     string    `json:"address,omitempty"`
	Transaction string    `json:"transaction,omitempty"`
	Page        *int      `json:"page,omitempty"`
	Size        *int      `json:"size,omitempty"`
	CreatorID   string    `json:"creator_id"`
	Created     time.Time `json:"created"`
}

// Key identifies the event for partitioning.
func (e Event) Key() string {
	return e.CreatorID
}

// Notifier delivers search events to downstream systems.
type Notifier interface {
	Send(ctx context.Context, event Event) error
}

// LoggerNotifier writes events to the logger. Used when no broker is configured.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the event to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, event Event) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("search event",
		"kind", event.Kind,
		"id", event.ID,
		"crypto", event.Crypto,
		"creator_id", event.CreatorID,
	)
	return nil
}
