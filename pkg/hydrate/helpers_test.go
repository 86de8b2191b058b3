package hydrate_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/williamokano/s3_hydrator/pkg/config"
	"github.com/williamokano/s3_hydrator/pkg/hydrate"
	"github.com/williamokano/s3_hydrator/pkg/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		ProducerBucket:      "111111111111-producer-data",
		ConsumerBucket:      "222222222222-consumer-data",
		CrossAccountRoleARN: "arn:aws:iam::111111111111:role/S3HydrationCrossAccountReadRole",
		ExternalID:          "s3hydration-test-external-id-12345",
		ConsumerKMSKeyID:    "arn:aws:kms:eu-west-1:222222222222:key/consumer-key-id",
		ProducerKMSKeyARN:   "arn:aws:kms:eu-west-1:111111111111:key/producer-key-id",
	}
}

// fakeObject is one object held by fakeStore
type fakeObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// fakeStore is an in-memory storage.ObjectStore with injectable failures
// and a controllable clock, so tests can place object modification times
// relative to the watermark.
type fakeStore struct {
	bucket string
	clock  func() time.Time

	mu      sync.Mutex
	objects map[string]*fakeObject
	statErr map[string]error
	getErr  map[string]error
	putErr  map[string]error
	walkErr error

	openBodies []*trackingBody
}

func newFakeStore(bucket string) *fakeStore {
	return &fakeStore{
		bucket:  bucket,
		clock:   time.Now,
		objects: make(map[string]*fakeObject),
		statErr: make(map[string]error),
		getErr:  make(map[string]error),
		putErr:  make(map[string]error),
	}
}

func (f *fakeStore) putAt(key string, data []byte, modified time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = &fakeObject{data: data, modified: modified}
}

func (f *fakeStore) Bucket() string { return f.bucket }

func (f *fakeStore) Stat(_ context.Context, key string) (*storage.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.statErr[key]; err != nil {
		return nil, err
	}
	obj, ok := f.objects[key]
	if !ok {
		return nil, storage.WrapError(f.bucket, "stat", storage.ErrNotFound)
	}
	return &storage.ObjectInfo{
		Key:          key,
		Size:         int64(len(obj.data)),
		LastModified: obj.modified,
		ContentType:  obj.contentType,
	}, nil
}

func (f *fakeStore) Walk(_ context.Context, prefix string, fn func(storage.ObjectInfo) error) error {
	f.mu.Lock()
	if f.walkErr != nil {
		f.mu.Unlock()
		return f.walkErr
	}
	var infos []storage.ObjectInfo
	for key, obj := range f.objects {
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			continue
		}
		infos = append(infos, storage.ObjectInfo{
			Key:          key,
			Size:         int64(len(obj.data)),
			LastModified: obj.modified,
			ContentType:  obj.contentType,
		})
	}
	f.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	for _, info := range infos {
		if err := fn(info); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (*storage.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.getErr[key]; err != nil {
		return nil, err
	}
	obj, ok := f.objects[key]
	if !ok {
		return nil, storage.WrapError(f.bucket, "get", storage.ErrNotFound)
	}
	body := &trackingBody{Reader: bytes.NewReader(obj.data)}
	f.openBodies = append(f.openBodies, body)
	return &storage.Object{
		Info: storage.ObjectInfo{
			Key:          key,
			Size:         int64(len(obj.data)),
			LastModified: obj.modified,
			ContentType:  obj.contentType,
		},
		Body: body,
	}, nil
}

func (f *fakeStore) Put(_ context.Context, key string, body io.Reader, contentType string) error {
	f.mu.Lock()
	if err := f.putErr[key]; err != nil {
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = &fakeObject{data: data, contentType: contentType, modified: f.clock()}
	return nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) allBodiesClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, body := range f.openBodies {
		if !body.closed {
			return false
		}
	}
	return true
}

// trackingBody records whether the read stream was released
type trackingBody struct {
	*bytes.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

// fakeBroker hands out a pre-built producer store, or a fatal error
type fakeBroker struct {
	producer storage.ObjectStore
	err      error
}

func (b *fakeBroker) AssumeProducerRole(context.Context, *config.Config) (storage.ObjectStore, error) {
	if b.err != nil {
		return nil, &hydrate.TransferError{Phase: hydrate.PhaseRoleAssumption, Err: b.err}
	}
	return b.producer, nil
}

func newTestService(cfg *config.Config, producer, consumer storage.ObjectStore) *hydrate.Service {
	return hydrate.NewService(cfg, &fakeBroker{producer: producer}, consumer, zerolog.Nop())
}

var errSimulated = errors.New("simulated failure")
