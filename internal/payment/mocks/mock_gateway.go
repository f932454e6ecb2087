package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"intakeapi/internal/model"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateLink(ctx context.Context, req model.PaymentLinkRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
