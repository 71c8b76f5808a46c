package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultPublishTimeout = 2 * time.Second
	batchTimeout          = 10 * time.Millisecond
)

var errNotifierClosed = errors.New("kafka notifier closed")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes search events as JSON messages keyed by creator.
// The writer runs asynchronously, so Send returns once the message is queued
// and delivery failures are logged from the completion callback.
type KafkaNotifier struct {
	writer  messageWriter
	logger  *slog.Logger
	timeout time.Duration
	closed  atomic.Bool
}

// NewKafkaNotifier creates a notifier writing to topic on the given brokers.
func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) *KafkaNotifier {
	n := newKafkaNotifier(nil, logger)
	n.writer = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           batchTimeout,
		Async:                  true,
		Completion:             n.completed,
	}
	return n
}

func newKafkaNotifier(w messageWriter, logger *slog.Logger) *KafkaNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaNotifier{writer: w, logger: logger, timeout: defaultPublishTimeout}
}

// Send marshals the event and hands it to the writer. The write is bounded by
// its own timeout and outlives a cancelled request context.
func (k *KafkaNotifier) Send(ctx context.Context, event Event) error {
	if k.closed.Load() {
		return errNotifierClosed
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), k.timeout)
	defer cancel()
	if err := k.writer.WriteMessages(writeCtx, kafka.Message{Key: []byte(event.Key()), Value: value}); err != nil {
		return fmt.Errorf("write message to kafka: %w", err)
	}
	k.logger.Debug("search event queued", "kind", event.Kind, "id", event.ID)
	return nil
}

func (k *KafkaNotifier) completed(messages []kafka.Message, err error) {
	if err != nil {
		k.logger.Warn("search events not delivered", "count", len(messages), "error", err)
	}
}

// Close flushes pending writes and releases the writer. Later calls are no-ops.
func (k *KafkaNotifier) Close() error {
	if k.closed.Swap(true) {
		return nil
	}
	return k.writer.Close()
}
