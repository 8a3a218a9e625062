package network

import (
	"io"
	"os"
	"testing"

	"github.com/Elliott-ab/Battlemap-sub000/pkg/api"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWith(io.Discard, "info", "text")
	os.Exit(m.Run())
}

func TestBroadcaster_SendTo(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("session-1")

	require.True(t, b.SendTo("session-1", api.Response{Op: api.OpHello, SessionID: "session-1"}))
	msg := <-ch
	assert.Equal(t, "session-1", msg.SessionID)

	assert.False(t, b.SendTo("session-2", api.Response{Op: api.OpHello}))
}

func TestBroadcaster_Reregister(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("session-1")
	fresh := b.Register("session-1")

	_, open := <-old
	assert.False(t, open, "old channel must be closed")
	assert.Equal(t, 1, b.SubscriberCount())

	require.True(t, b.SendTo("session-1", api.Response{Op: api.OpVisibility}))
	assert.Len(t, fresh, 1)
}

func TestBroadcaster_Unregister(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("session-2")
	b.Register("session-1")

	assert.Equal(t, []string{"session-1", "session-2"}, b.Sessions())

	b.Unregister("session-2")
	_, open := <-ch
	assert.False(t, open)
	assert.False(t, b.HasSubscriber("session-2"))
	assert.True(t, b.HasSubscriber("session-1"))

	// Повторный Unregister безопасен
	b.Unregister("session-2")
	assert.Equal(t, 1, b.SubscriberCount())
}

func TestBroadcaster_FullChannel(t *testing.T) {
	b := NewBroadcaster()
	b.Register("session-1")

	for i := 0; i < SessionBuffer; i++ {
		require.True(t, b.SendTo("session-1", api.Response{Op: api.OpReachability}))
	}
	assert.False(t, b.SendTo("session-1", api.Response{Op: api.OpReachability}))
}
