// Package ingest runs the batch loop that pulls raw forecast envelopes off
// the broker, validates them, and loads them into the record store.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/slopewise/avalanche-advisory/internal/domain"
	"github.com/slopewise/avalanche-advisory/internal/observability"
)

// RawEvent is one consumed message plus the bookkeeping needed to commit it.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
	Commit    func(ctx context.Context) error
}

// Record is one validated forecast envelope ready for storage.
type Record struct {
	Forecast domain.ForecastRecord
	Weather  *domain.WeatherRecord
}

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]RawEvent, error)
}

// Transformer converts a raw event into a storable record.
type Transformer interface {
	Transform(ctx context.Context, raw RawEvent) (Record, error)
}

// BatchLoader writes multiple records to the store.
type BatchLoader interface {
	LoadBatch(ctx context.Context, records []Record) error
}

// Pipeline orchestrates the extract-validate-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil if the pipeline has loaded at least one record,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not loaded any records yet")
	}
	return nil
}

// Run executes the batch loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("ingest pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("ingest pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processBatch runs one extract-validate-load cycle. Returns false if the
// pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.MessagesConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	*backoff = 200 * time.Millisecond

	loaded, ok := p.transformAndLoad(ctx, rawBatch, backoff, maxBackoff)
	if !ok {
		return false
	}

	if loaded > 0 {
		p.ready.Store(true)
	}
	return true
}

// transformAndLoad validates each envelope in the batch, loads the successes,
// and commits offsets. Rejected envelopes are counted and committed so they
// are not re-consumed. Returns the number of loaded records and false if the
// pipeline should stop.
func (p *Pipeline) transformAndLoad(ctx context.Context, rawBatch []RawEvent, backoff *time.Duration, maxBackoff time.Duration) (int, bool) {
	records := make([]Record, 0, len(rawBatch))
	successfulRaws := make([]RawEvent, 0, len(rawBatch))

	for _, raw := range rawBatch {
		rec, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("envelope rejected, skipping message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.ValidationErrors.Inc()
			p.commitOffset(ctx, raw)
			continue
		}
		records = append(records, rec)
		successfulRaws = append(successfulRaws, raw)
	}

	if len(records) == 0 {
		return 0, true
	}

	if err := p.loader.LoadBatch(ctx, records); err != nil {
		p.logger.Error("load batch failed", "error", err, "batch_size", len(records))
		return 0, p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	p.metrics.RecordsLoaded.Add(float64(len(records)))

	for _, raw := range successfulRaws {
		p.commitOffset(ctx, raw)
	}

	return len(records), true
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the pipeline should
// stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
