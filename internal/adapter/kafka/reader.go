// Package kafka adapts a kafka-go consumer to the ingest pipeline's
// BatchExtractor contract.
package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/slopewise/avalanche-advisory/internal/config"
	"github.com/slopewise/avalanche-advisory/internal/ingest"
)

// batchDrainTimeout bounds how long ExtractBatch waits for messages beyond
// the first one before returning a partial batch.
const batchDrainTimeout = 100 * time.Millisecond

// Reader consumes raw forecast envelopes from the source topic.
// It implements ingest.BatchExtractor.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a Kafka consumer for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaSourceTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Reader{reader: r, logger: logger}
}

// ExtractBatch blocks for the first message and then drains up to
// batchSize-1 more, returning early once the topic goes quiet. Offsets are
// committed by the pipeline through each event's Commit closure, never here.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]ingest.RawEvent, error) {
	first, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}

	batch := make([]ingest.RawEvent, 0, batchSize)
	batch = append(batch, r.mapMessageToRawEvent(first))

	for len(batch) < batchSize {
		drainCtx, cancel := context.WithTimeout(ctx, batchDrainTimeout)
		msg, err := r.reader.FetchMessage(drainCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				break
			}
			if ctx.Err() != nil {
				// Parent cancelled mid-drain; hand back what we have so the
				// pipeline can finish the cycle.
				break
			}
			return nil, err
		}
		batch = append(batch, r.mapMessageToRawEvent(msg))
	}

	return batch, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessageToRawEvent converts a Kafka message into a pipeline raw event,
// capturing a commit closure bound to that specific message.
func (r *Reader) mapMessageToRawEvent(msg kafkago.Message) ingest.RawEvent {
	return ingest.RawEvent{
		Key:       msg.Key,
		Value:     msg.Value,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Commit: func(ctx context.Context) error {
			return r.reader.CommitMessages(ctx, msg)
		},
	}
}
