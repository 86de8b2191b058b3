package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/rs/zerolog"

	"github.com/williamokano/s3_hydrator/pkg/config"
	"github.com/williamokano/s3_hydrator/pkg/handler"
	"github.com/williamokano/s3_hydrator/pkg/logger"
	"github.com/williamokano/s3_hydrator/pkg/metrics"
)

func main() {
	log := logger.Init(os.Getenv(config.EnvLogLevel), os.Getenv(config.EnvLogFormat))

	// Environment configuration by default; a config file argument switches
	// local runs to the schema-validated file loader.
	loadConfig := config.FromEnv
	if len(os.Args) > 1 {
		configFile := os.Args[1]
		log.Info().Str("config_file", configFile).Msg("loading configuration from file")
		loadConfig = func() (*config.Config, error) {
			return config.ParseFile(configFile)
		}
	}

	ctx := context.Background()
	h := handler.New(loadConfig, newPublisher(ctx, log), log)

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(h.Handle)
		return
	}

	// Local one-shot run
	summary, err := h.Handle(ctx, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("hydration run failed")
	}

	log.Info().
		Int("transferred", summary.Transferred).
		Int("skipped", summary.Skipped).
		Int64("bytes_transferred", summary.BytesTransferred).
		Msg("hydration run completed")
}

// newPublisher builds the CloudWatch publisher. Metrics are best-effort, so
// a client that cannot be constructed only disables publishing.
func newPublisher(ctx context.Context, log zerolog.Logger) *metrics.Publisher {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("metrics disabled, cannot load AWS config")
		return metrics.NewPublisher(nil, log)
	}
	return metrics.NewPublisher(cloudwatch.NewFromConfig(awsCfg), log)
}
