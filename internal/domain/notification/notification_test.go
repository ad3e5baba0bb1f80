package notification

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSSEMessage(t *testing.T) {
	data := json.RawMessage(`{"k":"v"}`)
	msg := NewSSEMessage(string(EventNewSales), data)

	require.NotNil(t, msg)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "NewSales", msg.Event)
	assert.Equal(t, data, msg.Data)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestNewSSEClient(t *testing.T) {
	c := NewSSEClient("client-1")

	assert.Equal(t, "client-1", c.ClientID)
	assert.False(t, c.ConnectedAt.IsZero())
	assert.Equal(t, 100, cap(c.MessageChan))

	c.Close()
	_, ok := <-c.MessageChan
	assert.False(t, ok)
}
