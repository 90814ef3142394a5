// Package probe observes the state the window manager reports for a window
// over its own X connection.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/ItsNotGoodName/x-wmstate/internal/wmstate"
)

var ErrWindowNotFound = errors.New("window not found")

type Probe struct {
	xu *xgbutil.XUtil
}

// New connects to display, or $DISPLAY when display is empty.
func New(display string) (*Probe, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("probe connect: %w", err)
	}

	return &Probe{xu: xu}, nil
}

func (p *Probe) Close() {
	p.xu.Conn().Close()
}

// State returns the state reported for window. Missing state properties
// count as empty.
func (p *Probe) State(window uint32) (wmstate.WindowState, error) {
	win := xproto.Window(window)

	if _, err := xproto.GetWindowAttributes(p.xu.Conn(), win).Reply(); err != nil {
		return 0, fmt.Errorf("window %#x: %w", window, err)
	}

	netStates, err := ewmh.WmStateGet(p.xu, win)
	if err != nil {
		netStates = nil
	}

	wmState, err := icccm.WmStateGet(p.xu, win)
	if err != nil {
		wmState = nil
	}

	return Convert(netStates, wmState), nil
}

// Convert builds a WindowState from the properties as read by xgbutil.
func Convert(netStates []string, wmState *icccm.WmState) wmstate.WindowState {
	icccmState := uint32(wmstate.WithdrawnState)
	if wmState != nil {
		icccmState = uint32(wmState.State)
	}
	return wmstate.Decode(netStates, icccmState)
}

// FindByName returns the first managed client whose _NET_WM_NAME is name.
func (p *Probe) FindByName(name string) (uint32, error) {
	clients, err := ewmh.ClientListGet(p.xu)
	if err != nil {
		return 0, fmt.Errorf("get client list: %w", err)
	}

	for _, w := range clients {
		n, err := ewmh.WmNameGet(p.xu, w)
		if err != nil {
			n, _ = icccm.WmNameGet(p.xu, w)
		}
		if n == name {
			return uint32(w), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrWindowNotFound, name)
}

// Watch calls fn with the state of window once and then every time it changes.
func (p *Probe) Watch(ctx context.Context, window uint32, interval time.Duration, fn func(wmstate.WindowState)) error {
	return watch(ctx, interval, func() (wmstate.WindowState, error) { return p.State(window) }, fn)
}

func watch(ctx context.Context, interval time.Duration, read func() (wmstate.WindowState, error), fn func(wmstate.WindowState)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		last  wmstate.WindowState
		first = true
	)
	for {
		state, err := read()
		if err != nil {
			return err
		}
		if first || state != last {
			first = false
			last = state
			fn(state)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// StateObserved is published when the probe sees a new state.
type StateObserved struct {
	Window uint32
	State  wmstate.WindowState
}

// Service watches one window and publishes StateObserved through publish.
type Service struct {
	probe    *Probe
	window   uint32
	interval time.Duration
	publish  func(StateObserved)
}

func NewService(probe *Probe, window uint32, interval time.Duration, publish func(StateObserved)) Service {
	return Service{
		probe:    probe,
		window:   window,
		interval: interval,
		publish:  publish,
	}
}

func (s Service) String() string {
	return fmt.Sprintf("probe.Service(window=%#x)", s.window)
}

func (s Service) Serve(ctx context.Context) error {
	slog.Debug("Watching window", "window", s.window, "interval", s.interval)
	return s.probe.Watch(ctx, s.window, s.interval, func(state wmstate.WindowState) {
		s.publish(StateObserved{Window: s.window, State: state})
	})
}
