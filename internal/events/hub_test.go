package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesListenersAndClients(t *testing.T) {
	hub := NewHub()

	var seen []Event
	hub.Subscribe(func(e Event) { seen = append(seen, e) })

	client := &Client{ID: "c1", Channel: make(chan Event, 4)}
	hub.Register(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Publish("room", TypeUpdated, 7)
	hub.Publish("guest", TypeDeleted, 3)

	require.Len(t, seen, 2)
	assert.Equal(t, "room.updated", seen[0].Name())
	assert.Equal(t, uint64(1), seen[0].Seq)
	assert.Equal(t, uint64(2), seen[1].Seq)

	got := <-client.Channel
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, "room", got.Entity)
}

func TestHub_FullClientDoesNotBlock(t *testing.T) {
	hub := NewHub()
	client := &Client{ID: "slow", Channel: make(chan Event, 1)}
	hub.Register(client)

	hub.Publish("payment", TypeCreated, 1)
	hub.Publish("payment", TypeCreated, 2)

	assert.Len(t, client.Channel, 1)
	first := <-client.Channel
	assert.Equal(t, uint(1), first.ID)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	client := &Client{ID: "c", Channel: make(chan Event, 1)}
	hub.Register(client)
	hub.Unregister("c")
	hub.Unregister("c")

	_, ok := <-client.Channel
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())
}
