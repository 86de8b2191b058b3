package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"

	"github.com/williamokano/s3_hydrator/pkg/config"
	"github.com/williamokano/s3_hydrator/pkg/hydrate"
	"github.com/williamokano/s3_hydrator/pkg/metrics"
	s3store "github.com/williamokano/s3_hydrator/pkg/storage/s3"
)

// Summary is the structured record returned on a run with zero per-object
// failures.
type Summary struct {
	RequestID        string  `json:"request_id"`
	Transferred      int     `json:"transferred"`
	Skipped          int     `json:"skipped"`
	Failed           int     `json:"failed"`
	BytesTransferred int64   `json:"bytes_transferred"`
	DurationSeconds  float64 `json:"duration_seconds"`
}

// Runner executes one transfer cycle
type Runner interface {
	Execute(ctx context.Context) (*hydrate.Result, error)
}

// RunnerFactory builds a Runner once configuration is loaded
type RunnerFactory func(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Runner, error)

// Handler is the invocation boundary: it loads configuration, runs one
// transfer cycle, publishes metrics, and decides whether the platform sees
// the run as a success or a failure.
type Handler struct {
	loadConfig func() (*config.Config, error)
	newRunner  RunnerFactory
	metrics    *metrics.Publisher
	logger     zerolog.Logger
}

// New creates a Handler backed by real AWS clients
func New(loadConfig func() (*config.Config, error), publisher *metrics.Publisher, logger zerolog.Logger) *Handler {
	return NewWithRunner(loadConfig, newAWSRunner, publisher, logger)
}

// NewWithRunner creates a Handler with an injected runner factory
func NewWithRunner(loadConfig func() (*config.Config, error), newRunner RunnerFactory, publisher *metrics.Publisher, logger zerolog.Logger) *Handler {
	return &Handler{
		loadConfig: loadConfig,
		newRunner:  newRunner,
		metrics:    publisher,
		logger:     logger,
	}
}

// Handle executes one hydration run. It returns the run summary on full
// success. When any object failed, it returns an error carrying the count
// and the failed keys even though every other object was already durably
// transferred: partial success still routes to the platform's failure
// path, so failed keys get another, idempotent attempt on the next run.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) (*Summary, error) {
	requestID := "local"
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}

	logger := h.logger.With().Str("request_id", requestID).Logger()
	logger.Info().Msg("s3 hydration starting")
	start := time.Now()

	cfg, err := h.loadConfig()
	if err != nil {
		logger.Error().Err(err).Msg("configuration error")
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	runner, err := h.newRunner(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transfer service: %w", err)
	}

	result, err := runner.Execute(ctx)
	if err != nil {
		var transferErr *hydrate.TransferError
		if errors.As(err, &transferErr) {
			logger.Error().Err(err).Str("phase", string(transferErr.Phase)).Msg("transfer run failed")
			return nil, err
		}
		// Anything else is unexpected: wrap with context, keep the cause
		logger.Error().Err(err).Msg("unexpected error during transfer")
		return nil, fmt.Errorf("transfer failed: %w", err)
	}

	elapsed := time.Since(start)
	h.metrics.ObjectsTransferred(ctx, len(result.Transferred))
	h.metrics.ObjectsSkipped(ctx, len(result.Skipped))
	h.metrics.ObjectsFailed(ctx, len(result.Failed))
	h.metrics.BytesTransferred(ctx, result.BytesTransferred)
	h.metrics.TransferDuration(ctx, elapsed)

	summary := &Summary{
		RequestID:        requestID,
		Transferred:      len(result.Transferred),
		Skipped:          len(result.Skipped),
		Failed:           len(result.Failed),
		BytesTransferred: result.BytesTransferred,
		DurationSeconds:  elapsed.Seconds(),
	}
	logger.Info().
		Int("transferred", summary.Transferred).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int64("bytes_transferred", summary.BytesTransferred).
		Float64("duration_seconds", summary.DurationSeconds).
		Msg("transfer summary")

	if len(result.Failed) > 0 {
		return nil, fmt.Errorf("%d object(s) failed to transfer: %v", len(result.Failed), result.FailedKeys())
	}

	return summary, nil
}

// newAWSRunner builds the real transfer service: an STS-backed credential
// broker for producer access and a consumer store writing under the
// consumer KMS key.
func newAWSRunner(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Runner, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	broker := hydrate.NewBroker(sts.NewFromConfig(awsCfg), logger)

	consumer, err := s3store.New(ctx, s3store.Config{
		Region:   cfg.Region,
		Bucket:   cfg.ConsumerBucket,
		KMSKeyID: cfg.ConsumerKMSKeyID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer store: %w", err)
	}

	return hydrate.NewService(cfg, broker, consumer, logger), nil
}
