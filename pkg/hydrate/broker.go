package hydrate

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"

	"github.com/williamokano/s3_hydrator/pkg/config"
	"github.com/williamokano/s3_hydrator/pkg/storage"
	s3store "github.com/williamokano/s3_hydrator/pkg/storage/s3"
)

const (
	roleSessionName = "s3-hydration-consumer"
	// A run is expected to finish within one session; credentials are not refreshed.
	roleSessionSeconds = 3600
)

// AssumeRoleAPI is the subset of the STS client used by the broker
type AssumeRoleAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// CredentialBroker grants producer-scoped storage access for one run
type CredentialBroker interface {
	AssumeProducerRole(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error)
}

// Broker exchanges the cross-account role ARN and external id for temporary
// producer-account credentials and wraps them in a store scoped to the
// producer bucket.
type Broker struct {
	sts    AssumeRoleAPI
	logger zerolog.Logger

	// Endpoint and ForcePathStyle reroute the producer S3 client, for
	// LocalStack-backed tests.
	Endpoint       string
	ForcePathStyle bool
}

// NewBroker creates a Broker on the given STS client
func NewBroker(stsClient AssumeRoleAPI, logger zerolog.Logger) *Broker {
	return &Broker{sts: stsClient, logger: logger}
}

// AssumeProducerRole performs the STS AssumeRole exchange. The external id
// is the trust boundary against confused-deputy use of the role. Any
// broker-side failure is fatal for the whole run.
func (b *Broker) AssumeProducerRole(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	output, err := b.sts.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(cfg.CrossAccountRoleARN),
		RoleSessionName: aws.String(roleSessionName),
		ExternalId:      aws.String(cfg.ExternalID),
		DurationSeconds: aws.Int32(roleSessionSeconds),
	})
	if err != nil {
		return nil, &TransferError{Phase: PhaseRoleAssumption, Err: err}
	}
	if err := validateAssumeRoleOutput(output); err != nil {
		return nil, &TransferError{Phase: PhaseRoleAssumption, Err: err}
	}

	creds := credentials.NewStaticCredentialsProvider(
		aws.ToString(output.Credentials.AccessKeyId),
		aws.ToString(output.Credentials.SecretAccessKey),
		aws.ToString(output.Credentials.SessionToken),
	)

	producer, err := s3store.New(ctx, s3store.Config{
		Region:         cfg.Region,
		Bucket:         cfg.ProducerBucket,
		Credentials:    creds,
		Endpoint:       b.Endpoint,
		ForcePathStyle: b.ForcePathStyle,
	})
	if err != nil {
		return nil, &TransferError{Phase: PhaseRoleAssumption, Err: err}
	}

	b.logger.Debug().
		Str("role_arn", cfg.CrossAccountRoleARN).
		Time("expiration", aws.ToTime(output.Credentials.Expiration)).
		Msg("assumed producer role")

	return producer, nil
}

func validateAssumeRoleOutput(output *sts.AssumeRoleOutput) error {
	if output == nil || output.Credentials == nil {
		return errors.New("assume role output has no credentials")
	}
	c := output.Credentials
	if c.AccessKeyId == nil || c.SecretAccessKey == nil || c.SessionToken == nil {
		return errors.New("assume role credentials are incomplete")
	}
	return nil
}
