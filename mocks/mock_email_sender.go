package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taxmitra/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReturnReport(ctx context.Context, mail port.ReturnReportMail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}
