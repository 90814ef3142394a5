package app

import (
	"errors"
	"fmt"

	"github.com/ItsNotGoodName/x-wmstate/internal/wmstate"
	"github.com/jezek/xgb/xproto"
)

var ErrUnknownAction = errors.New("unknown action")

type Action string

const (
	ActionMin      Action = "min"
	ActionMax      Action = "max"
	ActionMinStep1 Action = "min-step1"
	ActionMinStep2 Action = "min-step2"
	// ActionRestore is bound to a key only.
	ActionRestore Action = "restore"
)

// Actions in button order.
var Actions = []Action{ActionMin, ActionMax, ActionMinStep1, ActionMinStep2}

func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

func (a Action) Label() string {
	switch a {
	case ActionMin:
		return "Min"
	case ActionMax:
		return "Max"
	case ActionMinStep1:
		return "Min-step1"
	case ActionMinStep2:
		return "Min-step2"
	case ActionRestore:
		return "Restore"
	default:
		return string(a)
	}
}

// KeyAction maps the keys 1 to 4 on the top row to the buttons and r to
// restore.
func KeyAction(detail xproto.Keycode) (Action, bool) {
	switch {
	case detail >= 10 && detail <= 13:
		return Actions[detail-10], true
	case detail == 27: // r
		return ActionRestore, true
	default:
		return "", false
	}
}

// Result is the outcome of an action.
type Result struct {
	ID     string
	Action Action
	State  wmstate.WindowState
}

// Target is the window whose state the toolkit tracks.
type Target interface {
	ShowMinimized() error
	ShowMaximized() error
	ShowNormal() error
	State() wmstate.WindowState
}

// Requester sends raw window-manager requests.
type Requester interface {
	Send(window xproto.Window, reqs ...wmstate.Request) error
}

// Runner performs actions on one window. Min and Max go through the toolkit,
// the step actions send protocol messages directly.
type Runner struct {
	target    Target
	wid       xproto.Window
	requester Requester
}

func NewRunner(target Target, wid xproto.Window, requester Requester) Runner {
	return Runner{
		target:    target,
		wid:       wid,
		requester: requester,
	}
}

// Run returns the state tracked by the toolkit after the action.
func (r Runner) Run(action Action) (wmstate.WindowState, error) {
	var err error
	switch action {
	case ActionMin:
		err = r.target.ShowMinimized()
	case ActionMax:
		err = r.target.ShowMaximized()
	case ActionRestore:
		err = r.target.ShowNormal()
	case ActionMinStep1:
		err = r.requester.Send(r.wid, wmstate.MinimizeStep1()...)
	case ActionMinStep2:
		err = r.requester.Send(r.wid, wmstate.MinimizeStep2()...)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return r.target.State(), err
}
