package xwm

import (
	"fmt"

	"github.com/ItsNotGoodName/x-wmstate/internal/wmstate"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Transition is what the toolkit does to move a window between two states.
type Transition struct {
	// Map the window before anything else, it was iconified.
	Map bool
	// Requests sent in order, old state first.
	Requests []wmstate.Request
	// Iconic is the initial state written to WM_HINTS.
	Iconic bool
}

// PlanTransition unsets the old state and then sets the new one. It returns
// false when there is nothing to do. Full screen is left to the window manager.
func PlanTransition(from, to wmstate.WindowState) (Transition, bool) {
	const managed = wmstate.StateMinimized | wmstate.StateMaximized

	from, to = from&managed, to&managed
	if from == to {
		return Transition{}, false
	}

	var t Transition

	// unset old state
	if from.Has(wmstate.StateMinimized) {
		t.Map = true
	}
	if from.Has(wmstate.StateMaximized) {
		t.Requests = append(t.Requests, wmstate.ToggleMaximize{Set: false})
	}

	// set new state
	if to.Has(wmstate.StateMinimized) {
		t.Requests = append(t.Requests, wmstate.RequestIconify{})
		t.Iconic = true
	}
	if to.Has(wmstate.StateMaximized) {
		t.Requests = append(t.Requests, wmstate.ToggleMaximize{Set: true})
	}

	return t, true
}

// State returns the state tracked by the toolkit.
func (w *Window) State() wmstate.WindowState {
	return w.state
}

// ShowMinimized keeps Maximized so the window is restored maximized.
func (w *Window) ShowMinimized() error {
	return w.SetState(minimized(w.state))
}

func minimized(state wmstate.WindowState) wmstate.WindowState {
	return (state &^ wmstate.StateFullScreen) | wmstate.StateMinimized
}

func (w *Window) ShowMaximized() error {
	return w.SetState(wmstate.StateMaximized)
}

func (w *Window) ShowNormal() error {
	return w.SetState(0)
}

func (w *Window) SetState(state wmstate.WindowState) error {
	t, ok := PlanTransition(w.state, state)
	if !ok {
		return nil
	}

	if t.Map {
		if err := xproto.MapWindowChecked(w.conn, w.WID).Check(); err != nil {
			return fmt.Errorf("map window: %w", err)
		}
	}

	if len(t.Requests) > 0 {
		if err := w.client.Send(w.WID, t.Requests...); err != nil {
			return err
		}
	}

	if err := w.setInitialState(t.Iconic); err != nil {
		return err
	}

	w.state = state
	return nil
}

// setInitialState updates WM_HINTS when the window has them.
func (w *Window) setInitialState(iconic bool) error {
	reply, err := xproto.GetProperty(w.conn, false, w.WID,
		xproto.AtomWmHints, xproto.AtomWmHints, 0, hintsLength).Reply()
	if err != nil {
		return fmt.Errorf("get WM_HINTS: %w", err)
	}
	if reply == nil || reply.Format != 32 || len(reply.Value) == 0 {
		return nil
	}

	hints := make([]uint32, hintsLength)
	for i := 0; i < hintsLength && (i+1)*4 <= len(reply.Value); i++ {
		hints[i] = xgb.Get32(reply.Value[i*4:])
	}

	hints[hintsFlags] |= hintState
	if iconic {
		hints[hintsInitialState] = wmstate.IconicState
	} else {
		hints[hintsInitialState] = wmstate.NormalState
	}

	return changeProperty(w.conn, w.WID, xproto.AtomWmHints, xproto.AtomWmHints, 32, words(hints...))
}

// IsStateProperty reports whether atom holds window-manager state.
func (w *Window) IsStateProperty(atom xproto.Atom) bool {
	names, err := wmstate.Atoms(w.client.Atoms(), wmstate.WMState, wmstate.NetWMState)
	if err != nil {
		return false
	}
	return atom == names[0] || atom == names[1]
}

// Refresh replaces the tracked state with the state reported by the window
// manager and returns it.
func (w *Window) Refresh() (wmstate.WindowState, error) {
	state, err := ReadState(w.conn, w.client.Atoms(), w.WID)
	if err != nil {
		return w.state, err
	}

	w.state = state
	return state, nil
}

var knownNetStates = []string{
	wmstate.NetWMStateMaximizedHorz,
	wmstate.NetWMStateMaximizedVert,
	wmstate.NetWMStateHidden,
	wmstate.NetWMStateFullscreen,
}

// ReadState reads WM_STATE and _NET_WM_STATE of wid.
func ReadState(conn *xgb.Conn, atoms wmstate.AtomResolver, wid xproto.Window) (wmstate.WindowState, error) {
	wmState, err := atoms.Atom(wmstate.WMState)
	if err != nil {
		return 0, err
	}

	netWMState, err := atoms.Atom(wmstate.NetWMState)
	if err != nil {
		return 0, err
	}

	icccm := uint32(wmstate.WithdrawnState)
	reply, err := xproto.GetProperty(conn, false, wid, wmState, xproto.GetPropertyTypeAny, 0, 2).Reply()
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", wmstate.WMState, err)
	}
	if reply != nil && reply.Format == 32 && len(reply.Value) >= 4 {
		icccm = xgb.Get32(reply.Value)
	}

	reply, err = xproto.GetProperty(conn, false, wid, netWMState, xproto.AtomAtom, 0, 64).Reply()
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", wmstate.NetWMState, err)
	}

	byAtom := make(map[xproto.Atom]string, len(knownNetStates))
	for _, name := range knownNetStates {
		atom, err := atoms.Atom(name)
		if err != nil {
			return 0, err
		}
		byAtom[atom] = name
	}

	var names []string
	if reply != nil && reply.Format == 32 {
		for i := 0; i+4 <= len(reply.Value); i += 4 {
			if name, ok := byAtom[xproto.Atom(xgb.Get32(reply.Value[i:]))]; ok {
				names = append(names, name)
			}
		}
	}

	return wmstate.Decode(names, icccm), nil
}
