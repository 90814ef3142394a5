package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	N int
}

type otherEvent struct{}

func TestPublishSubscribe(t *testing.T) {
	var got []int
	unsubscribe := Subscribe("test", func(ctx context.Context, event testEvent) error {
		got = append(got, event.N)
		return nil
	})

	called := false
	unsubscribeOther := Subscribe("other", func(ctx context.Context, event otherEvent) error {
		called = true
		return nil
	})
	defer unsubscribeOther()

	Publish(testEvent{N: 1})
	Publish(testEvent{N: 2})
	unsubscribe()
	Publish(testEvent{N: 3})

	assert.Equal(t, []int{1, 2}, got)
	assert.False(t, called)
}

func TestPublishHandlerError(t *testing.T) {
	calls := 0
	defer Subscribe("failing", func(ctx context.Context, event testEvent) error {
		calls++
		return errors.New("failed")
	})()
	defer Subscribe("after", func(ctx context.Context, event testEvent) error {
		calls++
		return nil
	})()

	Publish(testEvent{})

	assert.Equal(t, 2, calls)
}

func TestHub(t *testing.T) {
	hub := NewHub[testEvent]()

	c, unsubscribe := hub.Subscribe()

	require.NoError(t, hub.Broadcast(context.Background(), testEvent{N: 7}))
	assert.Equal(t, testEvent{N: 7}, <-c)

	unsubscribe()
	require.NoError(t, hub.Broadcast(context.Background(), testEvent{N: 8}))
	assert.Empty(t, c)
}

func TestHubBroadcastCanceled(t *testing.T) {
	hub := NewHub[testEvent]()
	_, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	require.NoError(t, hub.Broadcast(context.Background(), testEvent{N: 1}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, hub.Broadcast(ctx, testEvent{N: 2}), context.Canceled)
}

func TestHubUnsubscribeUnblocksBroadcast(t *testing.T) {
	hub := NewHub[testEvent]()
	_, unsubscribe := hub.Subscribe()

	require.NoError(t, hub.Broadcast(context.Background(), testEvent{N: 1}))

	errC := make(chan error, 1)
	go func() { errC <- hub.Broadcast(context.Background(), testEvent{N: 2}) }()

	unsubscribe()
	assert.NoError(t, <-errC)
}
