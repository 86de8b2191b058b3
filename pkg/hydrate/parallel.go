package hydrate

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/williamokano/s3_hydrator/pkg/storage"
)

// transferParallel attempts candidates concurrently with a bounded number
// of in-flight transfers. Per-key attempts are independent given the fixed
// listing snapshot: outcomes are folded back in listing order, so the
// result sets match the sequential loop regardless of completion order,
// and the caller's marker write happens only after every attempt has
// finished.
func (s *Service) transferParallel(ctx context.Context, producer storage.ObjectStore, candidates []storage.ObjectInfo, maxConcurrent int) *Result {
	sem := semaphore.NewWeighted(int64(maxConcurrent))
	g, gCtx := errgroup.WithContext(ctx)

	outcomes := make(chan Outcome, len(candidates))

	for _, candidate := range candidates {
		key := candidate.Key

		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				outcomes <- Outcome{Key: key, Err: err}
				return nil
			}
			defer sem.Release(1)

			outcome := s.attempt(gCtx, producer, key)
			s.logOutcome(outcome)
			outcomes <- outcome

			// Per-object failures never cancel the group
			return nil
		})
	}

	_ = g.Wait()
	close(outcomes)

	byKey := make(map[string]Outcome, len(candidates))
	for outcome := range outcomes {
		byKey[outcome.Key] = outcome
	}

	result := &Result{}
	for _, candidate := range candidates {
		result.Record(byKey[candidate.Key])
	}
	return result
}
