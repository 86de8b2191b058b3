package s3

import "github.com/aws/aws-sdk-go-v2/aws"

// Config holds S3 store configuration
type Config struct {
	Region   string // AWS region
	Bucket   string // S3 bucket name
	KMSKeyID string // SSE-KMS key applied to writes; empty leaves the bucket default

	// Credentials overrides the default provider chain. The producer store
	// sets this to the assumed-role credentials; the consumer store leaves
	// it nil and uses the runtime's own identity.
	Credentials aws.CredentialsProvider

	Endpoint       string // Optional: for LocalStack/MinIO
	ForcePathStyle bool   // For LocalStack/MinIO
}
