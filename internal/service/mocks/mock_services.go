package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"intakeapi/internal/model"
	"intakeapi/internal/service"
)

type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) Process(ctx context.Context, rec model.IntakeRecord) (*service.IntakeResult, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IntakeResult), args.Error(1)
}

func (m *MockIntakeService) Relay(ctx context.Context, rec model.IntakeRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockIntakeService) Archived(ctx context.Context, filename string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}

type MockSignatureService struct {
	mock.Mock
}

func (m *MockSignatureService) Relay(ctx context.Context, p model.SignaturePayload) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
