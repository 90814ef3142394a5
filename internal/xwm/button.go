package xwm

import (
	"github.com/ItsNotGoodName/x-wmstate/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Button is a bordered child window with a text label.
type Button struct {
	WID   xproto.Window
	Label string
	X     int16
	Y     int16
	W     uint16
	H     uint16
}

func CreateButton(conn *xgb.Conn, parent *Window, label string, x, y int16, w, h uint16) (Button, error) {
	cursor, err := xcursor.CreateCursor(conn, xcursor.Hand2)
	if err != nil {
		return Button{}, err
	}

	// Generate X window id
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return Button{}, err
	}

	// Create X window in parent
	if err := xproto.CreateWindowChecked(conn, xproto.WindowClassCopyFromParent,
		wid, parent.WID,
		x, y, w, h, 1,
		xproto.WindowClassInputOutput, xproto.WindowClassCopyFromParent,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwEventMask|xproto.CwCursor,
		[]uint32{
			parent.Screen.WhitePixel,
			parent.Screen.BlackPixel,
			xproto.EventMaskExposure | xproto.EventMaskButtonPress,
			uint32(cursor),
		}).Check(); err != nil {
		return Button{}, err
	}

	// Show X window
	if err := xproto.MapWindowChecked(conn, wid).Check(); err != nil {
		xproto.DestroyWindow(conn, wid)
		return Button{}, err
	}

	return Button{
		WID:   wid,
		Label: label,
		X:     x,
		Y:     y,
		W:     w,
		H:     h,
	}, nil
}
