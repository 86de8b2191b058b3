package hydrate

import (
	"context"
	"strings"
	"time"

	"github.com/williamokano/s3_hydrator/pkg/storage"
)

// MarkerStore tracks the last successful sync time through a marker object
// in the consumer bucket. Production logic only reads the marker's storage
// modification time; the body carries the same instant in RFC-3339 form for
// operators and tests.
type MarkerStore struct {
	consumer storage.ObjectStore
	key      string
}

// NewMarkerStore creates a marker store on the consumer bucket
func NewMarkerStore(consumer storage.ObjectStore, key string) *MarkerStore {
	return &MarkerStore{consumer: consumer, key: key}
}

// LastSync returns the marker's last-modified time, or nil when no marker
// exists yet. Absence means "first run" and is not an error.
func (m *MarkerStore) LastSync(ctx context.Context) (*time.Time, error) {
	info, err := m.consumer.Stat(ctx, m.key)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	t := info.LastModified
	return &t, nil
}

// Write records now as the last successful sync time. Callers invoke this
// only after a run that transferred at least one object; skip-only and
// all-failed runs leave the existing marker untouched so a retry run
// re-scans the same window.
func (m *MarkerStore) Write(ctx context.Context, now time.Time) error {
	body := strings.NewReader(now.UTC().Format(time.RFC3339Nano))
	return m.consumer.Put(ctx, m.key, body, "")
}
