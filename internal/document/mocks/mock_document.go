package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"intakeapi/internal/model"
)

type MockFiller struct {
	mock.Mock
}

func (m *MockFiller) Fill(rec model.IntakeRecord, flags model.ConsentFlags) ([]byte, error) {
	args := m.Called(rec, flags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, doc []byte) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockProtector struct {
	mock.Mock
}

func (m *MockProtector) Protect(pdf []byte, password string) ([]byte, error) {
	args := m.Called(pdf, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
