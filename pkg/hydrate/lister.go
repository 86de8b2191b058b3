package hydrate

import (
	"context"
	"strings"
	"time"

	"github.com/williamokano/s3_hydrator/pkg/storage"
)

// Lister enumerates candidate objects in the producer bucket
type Lister struct {
	producer storage.ObjectStore
	prefix   string
}

// NewLister creates a Lister, optionally scoped to a key prefix
func NewLister(producer storage.ObjectStore, prefix string) *Lister {
	return &Lister{producer: producer, prefix: prefix}
}

// ListCandidates returns the keys eligible for transfer, in listing order.
// Keys ending in the path separator are synthetic directory placeholders
// and are excluded unconditionally. With since set, only objects modified
// strictly after it are included: an object modified exactly at the
// watermark was already seen by the previous run.
func (l *Lister) ListCandidates(ctx context.Context, since *time.Time) ([]storage.ObjectInfo, error) {
	var candidates []storage.ObjectInfo

	err := l.producer.Walk(ctx, l.prefix, func(info storage.ObjectInfo) error {
		if strings.HasSuffix(info.Key, "/") {
			return nil
		}
		if since != nil && !info.LastModified.After(*since) {
			return nil
		}
		candidates = append(candidates, info)
		return nil
	})
	if err != nil {
		return nil, &TransferError{Phase: PhaseListing, Err: err}
	}

	return candidates, nil
}
