package mocks

import (
	"context"
	"io"

	"convertapi/internal/model"
	"convertapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, r io.Reader, filename string) (*model.Conversion, error) {
	args := m.Called(ctx, r, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversion), args.Error(1)
}

func (m *MockConversionService) OpenResult(ctx context.Context, conv *model.Conversion) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, conv)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockConversionService) Cleanup(ctx context.Context, conv *model.Conversion) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversionService) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
