package hydrate

import (
	"context"

	"github.com/williamokano/s3_hydrator/pkg/storage"
)

// shouldSkip reports whether the consumer bucket already holds an
// equivalent copy of key. Equivalence is content length only: a cheap
// idempotency heuristic, not a correctness guarantee. Two distinct
// objects of identical length are indistinguishable here and will be
// skipped; checksums would require reading both objects.
func (s *Service) shouldSkip(ctx context.Context, producer storage.ObjectStore, key string) (bool, error) {
	producerInfo, err := producer.Stat(ctx, key)
	if err != nil {
		return false, err
	}

	consumerInfo, err := s.consumer.Stat(ctx, key)
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return consumerInfo.Size == producerInfo.Size, nil
}
