// Package xwm is a small toolkit on top of xgb: windows, buttons, text and an
// Elm-style event loop.
package xwm

import (
	"context"
	"errors"

	"github.com/jezek/xgb"
)

var errQuit = errors.New("quit")

// Quit is a Cmd that stops the event loop without an error.
func Quit(ctx context.Context, conn *xgb.Conn) error {
	return errQuit
}

// Error returns a Cmd that stops the event loop with err.
func Error(err error) Cmd {
	return func(ctx context.Context, conn *xgb.Conn) error {
		return err
	}
}

// Msg contain data from the result of a IO operation. Msgs trigger the update
// function and, henceforth, the UI.
type Msg interface{}

// Cmd is an IO operation returned by Update. A non-nil error ends the loop.
type Cmd func(ctx context.Context, conn *xgb.Conn) error

type Model interface {
	// Init is the first function that will be called.
	Init(ctx context.Context, conn *xgb.Conn) (Model, Cmd)

	// Update is called when a message is received. Use it to inspect messages
	// and, in response, update the model and/or return a command.
	Update(ctx context.Context, conn *xgb.Conn, msg Msg) (Model, Cmd)

	// Render is called after every Init and Update.
	Render(ctx context.Context, conn *xgb.Conn) error
}
