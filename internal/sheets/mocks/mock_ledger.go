package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"intakeapi/internal/model"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) CountSessions(ctx context.Context, document, date string) (int, error) {
	args := m.Called(ctx, document, date)
	return args.Int(0), args.Error(1)
}

func (m *MockLedger) Append(ctx context.Context, row model.SpreadsheetRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}
