package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus()

	var got []SessionEvent
	unsubscribe, err := bus.Subscribe(TopicSessionInvalidated, func(ev SessionEvent) {
		got = append(got, ev)
	})
	require.NoError(t, err)

	bus.Publish(TopicSessionInvalidated, SessionEvent{Expired: true, Reason: "Unauthorized"})
	bus.Publish(TopicSessionLogout, SessionEvent{})

	require.Len(t, got, 1)
	assert.True(t, got[0].Expired)
	assert.Equal(t, "Unauthorized", got[0].Reason)

	unsubscribe()
	bus.Publish(TopicSessionInvalidated, SessionEvent{})
	assert.Len(t, got, 1)
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() {
		bus.Publish(TopicSessionLogout, SessionEvent{})
	})
}
