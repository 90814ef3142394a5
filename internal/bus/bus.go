package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

var _ctx = context.Background()

func SetContext(ctx context.Context) {
	_ctx = ctx
}

type subscriber struct {
	id uint64
	fn func(ctx context.Context, event any)
}

var (
	subsMu sync.RWMutex
	subsID uint64
	subs   = make(map[string][]subscriber)
)

func topic[T any]() string {
	return fmt.Sprintf("%T", *new(T))
}

// Subscribe calls fn for every published event of type T until the returned
// function is called.
func Subscribe[T any](name string, fn func(ctx context.Context, event T) error) func() {
	t := topic[T]()

	subsMu.Lock()
	subsID++
	id := subsID
	subs[t] = append(subs[t], subscriber{
		id: id,
		fn: func(ctx context.Context, event any) {
			if err := fn(ctx, event.(T)); err != nil {
				slog.Error("Failed to handle event", "package", "bus", "name", name, "error", err)
			}
		},
	})
	subsMu.Unlock()

	return func() {
		subsMu.Lock()
		defer subsMu.Unlock()
		for i, sub := range subs[t] {
			if sub.id == id {
				subs[t] = append(subs[t][:i:i], subs[t][i+1:]...)
				return
			}
		}
	}
}

// Publish calls the subscribers of T in the order they subscribed.
func Publish[T any](event T) {
	subsMu.RLock()
	fns := make([]subscriber, len(subs[topic[T]()]))
	copy(fns, subs[topic[T]()])
	subsMu.RUnlock()

	for _, sub := range fns {
		sub.fn(_ctx, event)
	}
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		subs: make(map[*hubSub[T]]struct{}),
	}
}

type hubSub[T any] struct {
	c     chan T
	doneC chan struct{}
}

// Hub fans events out to channel subscribers.
type Hub[T any] struct {
	mu   sync.Mutex
	subs map[*hubSub[T]]struct{}
}

// Broadcast waits until every subscriber received event, unsubscribed, or ctx
// is done.
func (h *Hub[T]) Broadcast(ctx context.Context, event T) error {
	h.mu.Lock()
	subs := make([]*hubSub[T], 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sub.doneC:
		case sub.c <- event:
		}
	}

	return nil
}

// Register subscribes the hub to published events of type T.
func (h *Hub[T]) Register() *Hub[T] {
	Subscribe("bus.Hub", h.Broadcast)
	return h
}

// Subscribe returns a channel of events and a function that must be called
// once the channel is no longer read.
func (h *Hub[T]) Subscribe() (<-chan T, func()) {
	sub := &hubSub[T]{
		c:     make(chan T, 1),
		doneC: make(chan struct{}),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return sub.c, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, sub)
			h.mu.Unlock()
			close(sub.doneC)
		})
	}
}
