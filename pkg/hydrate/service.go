package hydrate

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/williamokano/s3_hydrator/pkg/config"
	"github.com/williamokano/s3_hydrator/pkg/storage"
)

// Service implements the consumer-pull hydration flow: assume a read-only
// role in the producer account, list objects modified since the last run,
// stream each one into the consumer bucket re-encrypted under the
// consumer's KMS key, and track sync state via a marker object.
type Service struct {
	cfg      *config.Config
	broker   CredentialBroker
	consumer storage.ObjectStore
	marker   *MarkerStore
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService creates a Service. The consumer store must be scoped to the
// consumer bucket with the consumer KMS key configured for writes.
func NewService(cfg *config.Config, broker CredentialBroker, consumer storage.ObjectStore, logger zerolog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		broker:   broker,
		consumer: consumer,
		marker:   NewMarkerStore(consumer, cfg.GetMarkerKey()),
		logger:   logger,
		now:      time.Now,
	}
}

// Execute runs a full transfer cycle and returns the aggregate result.
// Role-assumption and listing failures abort the run with a TransferError
// and no result. A failure scoped to a single object is recorded and the
// loop continues; surfacing those failures is the caller's responsibility.
func (s *Service) Execute(ctx context.Context) (*Result, error) {
	producer, err := s.broker.AssumeProducerRole(ctx, s.cfg)
	if err != nil {
		return nil, err
	}
	defer producer.Close()

	lastSync, err := s.marker.LastSync(ctx)
	if err != nil {
		return nil, &TransferError{Phase: PhaseMarker, Err: err}
	}

	lister := NewLister(producer, s.cfg.TransferPrefix)
	candidates, err := lister.ListCandidates(ctx, lastSync)
	if err != nil {
		return nil, err
	}

	listLog := s.logger.Info().Int("candidates", len(candidates))
	if lastSync != nil {
		listLog = listLog.Time("since", *lastSync)
	}
	listLog.Msg("listed candidate objects")

	var result *Result
	if maxConcurrent := s.cfg.GetMaxConcurrentTransfers(); maxConcurrent > 1 {
		result = s.transferParallel(ctx, producer, candidates, maxConcurrent)
	} else {
		result = s.transferSequential(ctx, producer, candidates)
	}

	// The marker only advances when something actually landed, so a retry
	// run re-scans the same window.
	if len(result.Transferred) > 0 {
		if err := s.marker.Write(ctx, s.now()); err != nil {
			return nil, &TransferError{Phase: PhaseMarker, Err: err}
		}
	}

	s.logger.Info().
		Int("transferred", len(result.Transferred)).
		Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failed)).
		Int64("bytes_transferred", result.BytesTransferred).
		Msg("transfer complete")

	return result, nil
}

// transferSequential attempts each candidate in listing order, one fully
// transferred (or failed) before the next begins.
func (s *Service) transferSequential(ctx context.Context, producer storage.ObjectStore, candidates []storage.ObjectInfo) *Result {
	result := &Result{}
	for _, candidate := range candidates {
		outcome := s.attempt(ctx, producer, candidate.Key)
		s.logOutcome(outcome)
		result.Record(outcome)
	}
	return result
}

// attempt runs the skip-check and transfer for a single key. Any error
// during either step is confined to this key's outcome and never aborts
// the run.
func (s *Service) attempt(ctx context.Context, producer storage.ObjectStore, key string) Outcome {
	skip, err := s.shouldSkip(ctx, producer, key)
	if err != nil {
		return Outcome{Key: key, Err: err}
	}
	if skip {
		return Outcome{Key: key, Skipped: true}
	}

	size, err := s.transferObject(ctx, producer, key)
	if err != nil {
		return Outcome{Key: key, Err: err}
	}
	return Outcome{Key: key, Size: size}
}

func (s *Service) logOutcome(o Outcome) {
	switch {
	case o.Err != nil:
		s.logger.Error().Str("key", o.Key).Err(o.Err).Msg("object transfer failed")
	case o.Skipped:
		s.logger.Debug().Str("key", o.Key).Msg("skipped, consumer copy matches")
	default:
		s.logger.Info().Str("key", o.Key).Int64("size_bytes", o.Size).Msg("transferred")
	}
}
