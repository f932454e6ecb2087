package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockForwarder struct {
	mock.Mock
}

func (m *MockForwarder) Forward(ctx context.Context, payload map[string]string) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
