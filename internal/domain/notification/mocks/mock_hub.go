package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/estate-hub/estate-hub/internal/domain/notification"
)

// MockSSEHub is a mock implementation of notification.SSEHub
type MockSSEHub struct {
	mock.Mock
}

func (m *MockSSEHub) Register(client *notification.SSEClient) {
	m.Called(client)
}

func (m *MockSSEHub) Unregister(clientID string) {
	m.Called(clientID)
}

func (m *MockSSEHub) GetClientCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockSSEHub) BroadcastToAll(message *notification.SSEMessage) {
	m.Called(message)
}

func (m *MockSSEHub) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockSSEHub) Stop() {
	m.Called()
}
