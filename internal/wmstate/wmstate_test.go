package wmstate

import (
	"errors"

	"github.com/jezek/xgb/xproto"
)

var testAtoms = map[string]xproto.Atom{
	NetWMState:              300,
	NetWMStateMaximizedHorz: 301,
	NetWMStateMaximizedVert: 302,
	NetWMStateHidden:        303,
	WMChangeState:           304,
	WMState:                 305,
}

type fakeResolver struct {
	atoms map[string]xproto.Atom
	fail  map[string]error
	calls map[string]int
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		atoms: testAtoms,
		fail:  map[string]error{},
		calls: map[string]int{},
	}
}

func (f *fakeResolver) Atom(name string) (xproto.Atom, error) {
	f.calls[name]++
	if err, ok := f.fail[name]; ok {
		return xproto.AtomNone, err
	}
	atom, ok := f.atoms[name]
	if !ok {
		return xproto.AtomNone, ErrAtomUnavailable
	}
	return atom, nil
}

type sentEvent struct {
	destination xproto.Window
	mask        uint32
	event       []byte
}

type fakeSender struct {
	sent []sentEvent
	err  error
}

func (f *fakeSender) SendEvent(destination xproto.Window, eventMask uint32, event []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEvent{destination: destination, mask: eventMask, event: event})
	return nil
}

var errDisconnected = errors.New("display disconnected")
