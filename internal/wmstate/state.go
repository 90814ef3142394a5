package wmstate

import "strings"

// ICCCM WM_STATE values.
const (
	WithdrawnState = 0
	NormalState    = 1
	IconicState    = 3
)

// EWMH atom names.
const (
	NetWMState              = "_NET_WM_STATE"
	NetWMStateMaximizedHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	NetWMStateMaximizedVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	NetWMStateHidden        = "_NET_WM_STATE_HIDDEN"
	NetWMStateFullscreen    = "_NET_WM_STATE_FULLSCREEN"
)

// ICCCM atom names.
const (
	WMState       = "WM_STATE"
	WMChangeState = "WM_CHANGE_STATE"
)

// WindowState is the set of window-manager states a window can be in.
// The zero value is the normal state.
type WindowState uint8

const (
	StateMinimized WindowState = 1 << iota
	StateMaximized
	StateFullScreen
)

func (s WindowState) Has(flag WindowState) bool {
	return s&flag == flag
}

func (s WindowState) String() string {
	if s == 0 {
		return "NoState"
	}

	var parts []string
	if s.Has(StateMinimized) {
		parts = append(parts, "Minimized")
	}
	if s.Has(StateMaximized) {
		parts = append(parts, "Maximized")
	}
	if s.Has(StateFullScreen) {
		parts = append(parts, "FullScreen")
	}
	return strings.Join(parts, "|")
}

// Decode builds a WindowState from the atom names in _NET_WM_STATE and the
// first word of WM_STATE.
//
// A window counts as maximized only when both sub-states are present.
func Decode(netStates []string, icccmState uint32) WindowState {
	var (
		s          WindowState
		horz, vert bool
	)
	for _, name := range netStates {
		switch name {
		case NetWMStateMaximizedHorz:
			horz = true
		case NetWMStateMaximizedVert:
			vert = true
		case NetWMStateHidden:
			s |= StateMinimized
		case NetWMStateFullscreen:
			s |= StateFullScreen
		}
	}
	if horz && vert {
		s |= StateMaximized
	}
	if icccmState == IconicState {
		s |= StateMinimized
	}
	return s
}
