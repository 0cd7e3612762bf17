package mocks

import (
	"context"
	"io"

	"convertapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, name string, r io.Reader) (storage.ObjectInfo, error) {
	args := m.Called(ctx, name, r)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader) storage.ObjectInfo); ok {
		return f(ctx, name, r), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Open(name string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockStorage) Path(name string) string {
	args := m.Called(name)
	return args.String(0)
}

func (m *MockStorage) Delete(ctx context.Context, names ...string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}

func (m *MockStorage) Check(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
