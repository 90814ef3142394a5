package xwm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jezek/xgb"
)

// ErrorMsg carries an X error reported for an unchecked request.
type ErrorMsg struct {
	Err xgb.Error
}

// ReceiveEvents forwards X events and errors to eventC until the connection
// closes or ctx is done.
func ReceiveEvents(ctx context.Context, conn *xgb.Conn, eventC chan<- any) {
	defer close(eventC)
	slog := slog.With("func", "xwm.ReceiveEvents")

	for {
		// WaitForEvent either returns an event or an error and never both.
		// If both are nil, the connection is closed.
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			slog.Debug("exit: no event or error")
			return
		}

		var msg any = ev
		if err != nil {
			msg = ErrorMsg{Err: err}
		}

		select {
		case <-ctx.Done():
			return
		case eventC <- msg:
		}
	}
}

// Run drives model with the messages from eventC and msgC until a command
// quits or fails, eventC is closed, or ctx is done.
func Run(ctx context.Context, conn *xgb.Conn, model Model, eventC <-chan any, msgC <-chan Msg) error {
	model, cmd := model.Init(ctx, conn)

	for {
		if cmd != nil {
			if err := cmd(ctx, conn); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
		}

		if err := model.Render(ctx, conn); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-eventC:
			if !ok {
				return nil
			}
			model, cmd = model.Update(ctx, conn, ev)
		case msg := <-msgC:
			model, cmd = model.Update(ctx, conn, msg)
		}
	}
}
