package mocks

import (
	"context"

	"convertapi/internal/converter"

	"github.com/stretchr/testify/mock"
)

type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConverter) Convert(ctx context.Context, pdfPath, docxPath string, opts converter.Options) error {
	args := m.Called(ctx, pdfPath, docxPath, opts)
	return args.Error(0)
}

func (m *MockConverter) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
