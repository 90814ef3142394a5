package app

import (
	"context"
	"errors"
	"sync"

	"github.com/ItsNotGoodName/x-wmstate/internal/probe"
	"github.com/ItsNotGoodName/x-wmstate/internal/wmstate"
	"github.com/ItsNotGoodName/x-wmstate/internal/xwm"
)

var ErrClosed = errors.New("ui loop closed")

type actionReply struct {
	result Result
	err    error
}

// ActionMsg asks the model to run an action and reply on done.
type ActionMsg struct {
	Action Action
	done   chan<- actionReply
}

type snapshotMsg struct {
	done chan<- Snapshot
}

// Snapshot is what the UI loop currently knows about the window.
type Snapshot struct {
	Window     uint32
	State      wmstate.WindowState
	Probe      wmstate.WindowState
	ProbeSeen  bool
	LastAction string
}

// Controller hands work to the UI loop from other goroutines. Work is
// serialized with clicks and key presses.
type Controller struct {
	msgC  chan xwm.Msg
	doneC chan struct{}
	once  sync.Once
}

func NewController() *Controller {
	return &Controller{
		msgC:  make(chan xwm.Msg),
		doneC: make(chan struct{}),
	}
}

// Messages is read by the UI loop.
func (c *Controller) Messages() <-chan xwm.Msg {
	return c.msgC
}

// Stop fails pending and future calls with ErrClosed.
func (c *Controller) Stop() {
	c.once.Do(func() { close(c.doneC) })
}

func (c *Controller) send(ctx context.Context, msg xwm.Msg) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.doneC:
		return ErrClosed
	case c.msgC <- msg:
		return nil
	}
}

// Do runs action on the UI loop and waits for the result.
func (c *Controller) Do(ctx context.Context, action Action) (Result, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return Result{}, err
	}

	replyC := make(chan actionReply, 1)
	if err := c.send(ctx, ActionMsg{Action: action, done: replyC}); err != nil {
		return Result{}, err
	}

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-c.doneC:
		return Result{}, ErrClosed
	case reply := <-replyC:
		return reply.result, reply.err
	}
}

func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	replyC := make(chan Snapshot, 1)
	if err := c.send(ctx, snapshotMsg{done: replyC}); err != nil {
		return Snapshot{}, err
	}

	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case <-c.doneC:
		return Snapshot{}, ErrClosed
	case snapshot := <-replyC:
		return snapshot, nil
	}
}

// Observe forwards a probe observation to the UI loop. It is a bus handler.
func (c *Controller) Observe(ctx context.Context, event probe.StateObserved) error {
	err := c.send(ctx, event)
	if errors.Is(err, ErrClosed) || ctx.Err() != nil {
		return nil
	}
	return err
}
