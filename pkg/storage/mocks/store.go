// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/williamokano/s3_hydrator/pkg/storage"
)

// MockObjectStore is a mock implementation of the storage.ObjectStore interface
type MockObjectStore struct {
	mock.Mock
}

// Bucket provides a mock function with given fields:
func (m *MockObjectStore) Bucket() string {
	ret := m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// Stat provides a mock function with given fields: ctx, key
func (m *MockObjectStore) Stat(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	ret := m.Called(ctx, key)

	var r0 *storage.ObjectInfo
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*storage.ObjectInfo, error)); ok {
		return rf(ctx, key)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *storage.ObjectInfo); ok {
		r0 = rf(ctx, key)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*storage.ObjectInfo)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Walk provides a mock function with given fields: ctx, prefix, fn
func (m *MockObjectStore) Walk(ctx context.Context, prefix string, fn func(storage.ObjectInfo) error) error {
	ret := m.Called(ctx, prefix, fn)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, func(storage.ObjectInfo) error) error); ok {
		r0 = rf(ctx, prefix, fn)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Get provides a mock function with given fields: ctx, key
func (m *MockObjectStore) Get(ctx context.Context, key string) (*storage.Object, error) {
	ret := m.Called(ctx, key)

	var r0 *storage.Object
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*storage.Object, error)); ok {
		return rf(ctx, key)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *storage.Object); ok {
		r0 = rf(ctx, key)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*storage.Object)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, key)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Put provides a mock function with given fields: ctx, key, body, contentType
func (m *MockObjectStore) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	ret := m.Called(ctx, key, body, contentType)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, io.Reader, string) error); ok {
		r0 = rf(ctx, key, body, contentType)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Close provides a mock function with given fields:
func (m *MockObjectStore) Close() error {
	ret := m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockObjectStore creates a new instance of MockObjectStore
func NewMockObjectStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockObjectStore {
	mock_1 := &MockObjectStore{}
	mock_1.Mock.Test(t)

	t.Cleanup(func() { mock_1.AssertExpectations(t) })

	return mock_1
}
