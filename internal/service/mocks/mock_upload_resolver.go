package mocks

import (
	"context"

	"examcracker/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockUploadResolver struct {
	mock.Mock
}

func (m *MockUploadResolver) Resolve(ctx context.Context, in service.ResolveInput) (service.ResolvedUpload, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(service.ResolvedUpload), args.Error(1)
}

func (m *MockUploadResolver) CloudEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}
