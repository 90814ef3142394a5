package wmstate

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb/xproto"
)

// Request is a state-change request a client sends to the window manager.
type Request interface {
	fmt.Stringer
	request()
}

// ToggleMaximize sets or unsets both maximized sub-states in one message.
type ToggleMaximize struct {
	Set bool
}

func (ToggleMaximize) request() {}

func (r ToggleMaximize) String() string {
	if r.Set {
		return "maximize"
	}
	return "unmaximize"
}

// RequestIconify asks the window manager to iconify (minimize) the window.
type RequestIconify struct{}

func (RequestIconify) request() {}

func (RequestIconify) String() string {
	return "iconify"
}

// MinimizeStep1 unsets the maximized state.
func MinimizeStep1() []Request {
	return []Request{ToggleMaximize{Set: false}}
}

// MinimizeStep2 iconifies the window and then sets the maximized state again
// so the window comes back maximized when restored.
func MinimizeStep2() []Request {
	return []Request{RequestIconify{}, ToggleMaximize{Set: true}}
}

var ErrUnknownRequest = errors.New("unknown request")

// ParseRequests returns the requests named by a request or a minimize step.
func ParseRequests(name string) ([]Request, error) {
	switch name {
	case "min-step1":
		return MinimizeStep1(), nil
	case "min-step2":
		return MinimizeStep2(), nil
	case "maximize":
		return []Request{ToggleMaximize{Set: true}}, nil
	case "unmaximize":
		return []Request{ToggleMaximize{Set: false}}, nil
	case "iconify":
		return []Request{RequestIconify{}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRequest, name)
	}
}

// Encode translates req into the client message addressed to window.
func Encode(window xproto.Window, req Request, atoms AtomResolver) (xproto.ClientMessageEvent, error) {
	var (
		typeName string
		data     [5]uint32
	)

	switch req := req.(type) {
	case ToggleMaximize:
		sub, err := Atoms(atoms, NetWMStateMaximizedHorz, NetWMStateMaximizedVert)
		if err != nil {
			return xproto.ClientMessageEvent{}, fmt.Errorf("encode %s: %w", req, err)
		}

		typeName = NetWMState
		if req.Set {
			data[0] = 1
		}
		data[1] = uint32(sub[0])
		data[2] = uint32(sub[1])
	case RequestIconify:
		typeName = WMChangeState
		data[0] = IconicState
	default:
		return xproto.ClientMessageEvent{}, fmt.Errorf("encode %T: unknown request", req)
	}

	typ, err := atoms.Atom(typeName)
	if err != nil {
		return xproto.ClientMessageEvent{}, fmt.Errorf("encode %s: %w", req, err)
	}

	return NewClientMessage(window, typ, data), nil
}

// NewClientMessage builds a 32-bit format client message. The sequence number
// is left at 0; the server fills it in.
func NewClientMessage(window xproto.Window, typ xproto.Atom, data [5]uint32) xproto.ClientMessageEvent {
	return xproto.ClientMessageEvent{
		Format:   32,
		Sequence: 0,
		Window:   window,
		Type:     typ,
		Data:     xproto.ClientMessageDataUnionData32New(data[:]),
	}
}
