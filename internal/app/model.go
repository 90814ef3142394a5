package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/x-wmstate/internal/config"
	"github.com/ItsNotGoodName/x-wmstate/internal/probe"
	"github.com/ItsNotGoodName/x-wmstate/internal/wmstate"
	"github.com/ItsNotGoodName/x-wmstate/internal/xwm"
	"github.com/google/uuid"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Window is the toolkit window driven by the model.
type Window interface {
	Target
	Refresh() (wmstate.WindowState, error)
	IsStateProperty(atom xproto.Atom) bool
	IsDeleteMessage(ev xproto.ClientMessageEvent) bool
	Resize(width, height uint16)
	Destroy() error
}

type Model struct {
	Config config.Config
	Client *wmstate.Client
	// OnCreate is called with the window id once the window is mapped.
	OnCreate func(window xproto.Window)

	wid     xproto.Window
	window  Window
	painter *xwm.Painter
	runner  Runner
	buttons []ModelButton

	probe      wmstate.WindowState
	probeSeen  bool
	lastAction string
}

type ModelButton struct {
	xwm.Button
	Action Action
}

// Window returns the demonstrator window id once Init has run.
func (m Model) Window() xproto.Window {
	return m.wid
}

func (m Model) Init(ctx context.Context, conn *xgb.Conn) (xwm.Model, xwm.Cmd) {
	window, err := xwm.CreateWindow(conn, m.Client, xwm.WindowOptions{
		Title:  m.Config.Title,
		Class:  m.Config.Class,
		Width:  m.Config.Width,
		Height: m.Config.Height,
	})
	if err != nil {
		return m, xwm.Error(fmt.Errorf("create window: %w", err))
	}
	m.wid = window.WID
	m.window = window
	m.runner = NewRunner(window, window.WID, m.Client)

	painter, err := xwm.NewPainter(conn, window, m.Config.Font)
	if err != nil {
		return m, xwm.Error(err)
	}
	m.painter = painter

	for i, rect := range Layout(window.Width) {
		action := Actions[i]
		button, err := xwm.CreateButton(conn, window, action.Label(), rect.X, rect.Y, rect.W, rect.H)
		if err != nil {
			return m, xwm.Error(fmt.Errorf("create button %s: %w", action.Label(), err))
		}
		m.buttons = append(m.buttons, ModelButton{Button: button, Action: action})
	}

	slog.Info("Window created", "window", window.WID)
	if m.OnCreate != nil {
		m.OnCreate(window.WID)
	}

	return m, nil
}

func (m Model) Update(ctx context.Context, conn *xgb.Conn, msg xwm.Msg) (xwm.Model, xwm.Cmd) {
	switch ev := msg.(type) {
	case xproto.ButtonPressEvent:
		if ev.Detail != xproto.ButtonIndex1 {
			return m, nil
		}

		for _, b := range m.buttons {
			if b.WID == ev.Event {
				m, _, _ = m.run(b.Action)
				break
			}
		}

		return m, nil
	case xproto.KeyPressEvent:
		slog.Debug("KeyPressEvent", "detail", ev.Detail)

		if ev.Detail == 24 { // q
			slog.Debug("exit: quit key pressed")
			return m.Close(), xwm.Quit
		}

		if action, ok := KeyAction(ev.Detail); ok {
			m, _, _ = m.run(action)
		}

		return m, nil
	case xproto.PropertyNotifyEvent:
		if ev.Window != m.wid || !m.window.IsStateProperty(ev.Atom) {
			return m, nil
		}

		state, err := m.window.Refresh()
		if err != nil {
			slog.Error("Failed to read window state", "window", ev.Window, "error", err)
			return m, nil
		}
		slog.Info("Window state changed", "window", ev.Window, "state", state)

		return m, nil
	case xproto.ConfigureNotifyEvent:
		if ev.Window == m.wid {
			m.window.Resize(ev.Width, ev.Height)
		}

		return m, nil
	case xproto.ExposeEvent:
		return m, nil
	case xproto.ClientMessageEvent:
		if m.window.IsDeleteMessage(ev) {
			slog.Debug("exit: delete window message")
			return m.Close(), xwm.Quit
		}

		return m, nil
	case xproto.DestroyNotifyEvent:
		// Some window managers close the X connection with the window, others
		// keep it open, so the loop also ends here.
		if ev.Window != m.wid {
			return m, nil
		}
		slog.Debug("exit: destroy notify event")

		return m.release(), xwm.Quit
	case xwm.ErrorMsg:
		slog.Error("X request failed", "error", ev.Err)

		return m, nil
	case ActionMsg:
		var reply actionReply
		m, reply.result, reply.err = m.run(ev.Action)
		ev.done <- reply

		return m, nil
	case snapshotMsg:
		ev.done <- m.Snapshot()

		return m, nil
	case probe.StateObserved:
		if ev.Window != uint32(m.wid) {
			return m, nil
		}
		m.probe = ev.State
		m.probeSeen = true

		return m, nil
	default:
		slog.Debug("unknown event", "event", ev)
		return m, nil
	}
}

func (m Model) run(action Action) (Model, Result, error) {
	id := uuid.NewString()
	log := slog.With("action", action, "id", id)

	state, err := m.runner.Run(action)
	if err != nil {
		log.Error("Failed to run action", "error", err)
		m.lastAction = fmt.Sprintf("%s failed: %v", action, err)
		return m, Result{}, err
	}

	log.Info("Action done", "state", state)
	m.lastAction = string(action)

	return m, Result{ID: id, Action: action, State: state}, nil
}

func (m Model) Snapshot() Snapshot {
	s := Snapshot{
		Window:     uint32(m.wid),
		Probe:      m.probe,
		ProbeSeen:  m.probeSeen,
		LastAction: m.lastAction,
	}
	if m.window != nil {
		s.State = m.window.State()
	}
	return s
}

func (m Model) Render(ctx context.Context, conn *xgb.Conn) error {
	for _, b := range m.buttons {
		m.painter.Clear(b.WID, 0, 0, 0, 0)
		m.painter.CenteredText(b.WID, b.W, b.H, b.Label)
	}

	y := StatusY()
	lineHeight := m.painter.Ascent + m.painter.Descent + 2
	m.painter.Clear(m.wid, 0, y, 0, 0)
	for i, line := range StatusLines(m.Snapshot()) {
		m.painter.Text(m.wid, buttonPadding, y+m.painter.Ascent+int16(i)*lineHeight, line)
	}

	return nil
}

// StatusLines describes the window under the buttons.
func StatusLines(s Snapshot) []string {
	reported := "-"
	if s.ProbeSeen {
		reported = s.Probe.String()
	}
	last := "-"
	if s.LastAction != "" {
		last = s.LastAction
	}

	return []string{
		fmt.Sprintf("Window: %#x", s.Window),
		"Toolkit: " + s.State.String(),
		"Reported: " + reported,
		"Last: " + last,
	}
}

// Close destroys the window and releases the drawing resources.
func (m Model) Close() Model {
	if m.window != nil {
		if err := m.window.Destroy(); err != nil {
			slog.Debug("Failed to destroy window", "window", m.wid, "error", err)
		}
	}
	return m.release()
}

// release frees the drawing resources of a window that is already gone.
func (m Model) release() Model {
	if m.painter != nil {
		m.painter.Close()
	}
	m.painter = nil
	return m
}
