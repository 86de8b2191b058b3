package hydrate_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamokano/s3_hydrator/pkg/config"
)

func TestExecute_Parallel(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("matches_sequential_result_sets", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxConcurrentTransfers = 4

		producer := newFakeStore(cfg.ProducerBucket)
		var wantBytes int64
		for i := 0; i < 20; i++ {
			data := []byte(fmt.Sprintf("payload-%02d", i))
			producer.putAt(fmt.Sprintf("data/obj-%02d.bin", i), data, now)
			wantBytes += int64(len(data))
		}
		producer.getErr["data/obj-07.bin"] = errSimulated
		wantBytes -= int64(len("payload-07"))
		consumer := newFakeStore(cfg.ConsumerBucket)

		service := newTestService(cfg, producer, consumer)
		result, err := service.Execute(ctx)

		require.NoError(t, err)
		assert.Len(t, result.Transferred, 19)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, "data/obj-07.bin", result.Failed[0].Key)
		assert.Equal(t, wantBytes, result.BytesTransferred)

		// Outcomes are folded in listing order, not completion order
		assert.IsIncreasing(t, result.Transferred)
	})

	t.Run("marker_written_after_all_attempts", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxConcurrentTransfers = 8

		producer := newFakeStore(cfg.ProducerBucket)
		for i := 0; i < 8; i++ {
			producer.putAt(fmt.Sprintf("k%d", i), []byte("x"), now)
		}
		consumer := newFakeStore(cfg.ConsumerBucket)

		service := newTestService(cfg, producer, consumer)
		result, err := service.Execute(ctx)

		require.NoError(t, err)
		assert.Len(t, result.Transferred, 8)

		_, err = consumer.Stat(ctx, config.DefaultMarkerKey)
		assert.NoError(t, err)
	})

	t.Run("no_transfers_no_marker", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxConcurrentTransfers = 4

		producer := newFakeStore(cfg.ProducerBucket)
		producer.putAt("same.txt", []byte("identical"), now)
		consumer := newFakeStore(cfg.ConsumerBucket)
		consumer.putAt("same.txt", []byte("identical"), now)

		service := newTestService(cfg, producer, consumer)
		result, err := service.Execute(ctx)

		require.NoError(t, err)
		assert.Empty(t, result.Transferred)
		assert.Equal(t, []string{"same.txt"}, result.Skipped)

		_, err = consumer.Stat(ctx, config.DefaultMarkerKey)
		assert.Error(t, err)
	})
}
