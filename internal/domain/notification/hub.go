package notification

import "context"

// SSEHub defines the interface for managing SSE connections
type SSEHub interface {
	Register(client *SSEClient)
	Unregister(clientID string)
	GetClientCount() int

	BroadcastToAll(message *SSEMessage)

	Start(ctx context.Context)
	Stop()
}
