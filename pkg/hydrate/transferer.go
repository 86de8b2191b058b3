package hydrate

import (
	"context"

	"github.com/williamokano/s3_hydrator/pkg/storage"
)

// transferObject streams one object from the producer to the consumer
// bucket under the same key, re-encrypting it with the consumer's KMS key
// on write. The returned size is the producer's declared content length.
// No retries happen here; any failure propagates to the caller.
func (s *Service) transferObject(ctx context.Context, producer storage.ObjectStore, key string) (int64, error) {
	obj, err := producer.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	defer obj.Body.Close()

	if err := s.consumer.Put(ctx, key, obj.Body, obj.Info.ContentType); err != nil {
		return 0, err
	}

	return obj.Info.Size, nil
}
