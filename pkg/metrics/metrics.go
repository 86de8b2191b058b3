package metrics

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/rs/zerolog"
)

// Namespace for all hydration metrics
const Namespace = "S3Hydration"

// CloudWatchAPI is the subset of the CloudWatch client used by the publisher
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Publisher emits custom CloudWatch metrics for transfer runs. Publishing
// is fire-and-forget: failures are logged and swallowed so they can never
// mask or replace the real transfer outcome. A nil client disables
// publishing entirely.
type Publisher struct {
	client CloudWatchAPI
	logger zerolog.Logger
}

// NewPublisher creates a Publisher on the given CloudWatch client
func NewPublisher(client CloudWatchAPI, logger zerolog.Logger) *Publisher {
	return &Publisher{client: client, logger: logger}
}

func (p *Publisher) put(ctx context.Context, name string, value float64, unit types.StandardUnit) {
	if p == nil || p.client == nil {
		return
	}

	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(Namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       unit,
			},
		},
	})
	if err != nil {
		p.logger.Warn().Err(err).Str("metric", name).Msg("failed to publish metric")
	}
}

func (p *Publisher) ObjectsTransferred(ctx context.Context, count int) {
	p.put(ctx, "ObjectsTransferred", float64(count), types.StandardUnitCount)
}

func (p *Publisher) ObjectsSkipped(ctx context.Context, count int) {
	p.put(ctx, "ObjectsSkipped", float64(count), types.StandardUnitCount)
}

func (p *Publisher) ObjectsFailed(ctx context.Context, count int) {
	p.put(ctx, "ObjectsFailed", float64(count), types.StandardUnitCount)
}

func (p *Publisher) BytesTransferred(ctx context.Context, totalBytes int64) {
	p.put(ctx, "BytesTransferred", float64(totalBytes), types.StandardUnitBytes)
}

func (p *Publisher) TransferDuration(ctx context.Context, d time.Duration) {
	p.put(ctx, "TransferDurationSeconds", d.Seconds(), types.StandardUnitSeconds)
}
