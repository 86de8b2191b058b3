package hydrate_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamokano/s3_hydrator/pkg/config"
	"github.com/williamokano/s3_hydrator/pkg/hydrate"
	"github.com/williamokano/s3_hydrator/pkg/storage"
	"github.com/williamokano/s3_hydrator/pkg/storage/mocks"
)

func TestMarkerStore_LastSync(t *testing.T) {
	ctx := context.Background()

	t.Run("no_marker_means_first_run", func(t *testing.T) {
		consumer := newFakeStore("consumer")
		marker := hydrate.NewMarkerStore(consumer, config.DefaultMarkerKey)

		lastSync, err := marker.LastSync(ctx)
		require.NoError(t, err, "marker absence is not an error")
		assert.Nil(t, lastSync)
	})

	t.Run("returns_marker_modification_time", func(t *testing.T) {
		written := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		consumer := newFakeStore("consumer")
		consumer.putAt(config.DefaultMarkerKey, []byte("2024-01-01T00:00:00+00:00"), written)
		marker := hydrate.NewMarkerStore(consumer, config.DefaultMarkerKey)

		lastSync, err := marker.LastSync(ctx)
		require.NoError(t, err)
		require.NotNil(t, lastSync)
		assert.True(t, lastSync.Equal(written))
	})

	t.Run("unexpected_stat_error_propagates", func(t *testing.T) {
		store := mocks.NewMockObjectStore(t)
		store.On("Stat", ctx, config.DefaultMarkerKey).Return(nil, errSimulated).Once()
		marker := hydrate.NewMarkerStore(store, config.DefaultMarkerKey)

		lastSync, err := marker.LastSync(ctx)
		assert.Nil(t, lastSync)
		assert.ErrorIs(t, err, errSimulated)
	})
}

func TestMarkerStore_Write(t *testing.T) {
	ctx := context.Background()
	consumer := newFakeStore("consumer")
	marker := hydrate.NewMarkerStore(consumer, config.DefaultMarkerKey)

	now := time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)
	require.NoError(t, marker.Write(ctx, now))

	obj, err := consumer.Get(ctx, config.DefaultMarkerKey)
	require.NoError(t, err)
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339Nano, string(body))
	require.NoError(t, err, "marker body must be an RFC-3339 timestamp")
	assert.True(t, parsed.Equal(now))
}

var _ storage.ObjectStore = (*mocks.MockObjectStore)(nil)
