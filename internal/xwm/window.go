package xwm

import (
	"fmt"

	"github.com/ItsNotGoodName/x-wmstate/internal/wmstate"
	"github.com/ItsNotGoodName/x-wmstate/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	WMProtocols    = "WM_PROTOCOLS"
	WMDeleteWindow = "WM_DELETE_WINDOW"
	NetWMName      = "_NET_WM_NAME"
	UTF8String     = "UTF8_STRING"
)

// WM_HINTS flags and layout.
const (
	hintInput         = 1 << 0
	hintState         = 1 << 1
	hintsLength       = 9
	hintsFlags        = 0
	hintsInput        = 1
	hintsInitialState = 2
)

type WindowOptions struct {
	Title  string
	Class  string
	Width  uint16
	Height uint16
}

// Window is a top-level window whose window-manager state is tracked by the
// toolkit.
type Window struct {
	conn   *xgb.Conn
	client *wmstate.Client

	WID    xproto.Window
	Width  uint16
	Height uint16
	Screen *xproto.ScreenInfo

	state wmstate.WindowState
}

func CreateWindow(conn *xgb.Conn, client *wmstate.Client, opts WindowOptions) (*Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)

	cursor, err := xcursor.CreateCursor(conn, xcursor.LeftPtr)
	if err != nil {
		return nil, err
	}

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}

	if err := xproto.CreateWindowChecked(conn, screen.RootDepth,
		wid, screen.Root,
		0, 0, opts.Width, opts.Height, 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask|xproto.CwCursor, // 1, 2, 3
		[]uint32{
			screen.WhitePixel, // 1
			xproto.EventMaskExposure |
				xproto.EventMaskStructureNotify |
				xproto.EventMaskKeyPress |
				xproto.EventMaskButtonPress |
				xproto.EventMaskPropertyChange, // 2
			uint32(cursor), // 3
		}).Check(); err != nil {
		return nil, err
	}

	w := &Window{
		conn:   conn,
		client: client,
		WID:    wid,
		Width:  opts.Width,
		Height: opts.Height,
		Screen: screen,
	}

	if err := w.setProperties(opts); err != nil {
		xproto.DestroyWindow(conn, wid)
		return nil, err
	}

	if err := xproto.MapWindowChecked(conn, wid).Check(); err != nil {
		xproto.DestroyWindow(conn, wid)
		return nil, err
	}

	return w, nil
}

func (w *Window) setProperties(opts WindowOptions) error {
	atoms := w.client.Atoms()

	if err := changeProperty(w.conn, w.WID, xproto.AtomWmName, xproto.AtomString, 8, []byte(opts.Title)); err != nil {
		return fmt.Errorf("set WM_NAME: %w", err)
	}

	names, err := wmstate.Atoms(atoms, NetWMName, UTF8String, WMProtocols, WMDeleteWindow)
	if err != nil {
		return err
	}

	if err := changeProperty(w.conn, w.WID, names[0], names[1], 8, []byte(opts.Title)); err != nil {
		return fmt.Errorf("set %s: %w", NetWMName, err)
	}

	class := []byte(opts.Class + "\x00" + opts.Class + "\x00")
	if err := changeProperty(w.conn, w.WID, xproto.AtomWmClass, xproto.AtomString, 8, class); err != nil {
		return fmt.Errorf("set WM_CLASS: %w", err)
	}

	if err := changeProperty(w.conn, w.WID, names[2], xproto.AtomAtom, 32, words(uint32(names[3]))); err != nil {
		return fmt.Errorf("set %s: %w", WMProtocols, err)
	}

	hints := make([]uint32, hintsLength)
	hints[hintsFlags] = hintInput | hintState
	hints[hintsInput] = 1
	hints[hintsInitialState] = wmstate.NormalState
	if err := changeProperty(w.conn, w.WID, xproto.AtomWmHints, xproto.AtomWmHints, 32, words(hints...)); err != nil {
		return fmt.Errorf("set WM_HINTS: %w", err)
	}

	return nil
}

// IsDeleteMessage reports whether ev is the window manager asking the window to close.
func (w *Window) IsDeleteMessage(ev xproto.ClientMessageEvent) bool {
	if ev.Window != w.WID || ev.Format != 32 {
		return false
	}

	names, err := wmstate.Atoms(w.client.Atoms(), WMProtocols, WMDeleteWindow)
	if err != nil {
		return false
	}

	return ev.Type == names[0] && xproto.Atom(ev.Data.Data32[0]) == names[1]
}

func (w *Window) Resize(width, height uint16) {
	w.Width = width
	w.Height = height
}

func (w *Window) Destroy() error {
	return xproto.DestroyWindowChecked(w.conn, w.WID).Check()
}

func changeProperty(conn *xgb.Conn, wid xproto.Window, property, typ xproto.Atom, format byte, data []byte) error {
	return xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, wid,
		property, typ, format,
		uint32(len(data)/int(format/8)), data).Check()
}

func words(values ...uint32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		xgb.Put32(buf[i*4:], v)
	}
	return buf
}
