// Package xcursor creates glyph cursors from the X core "cursor" font.
//
// Forked from https://github.com/BurntSushi/xgbutil/blob/master/xcursor/xcursor.go
package xcursor

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Glyph indexes in the cursor font. The mask glyph is always index+1.
const (
	Arrow   = 2
	Hand2   = 60
	LeftPtr = 68
	Watch   = 150
	XTerm   = 152
)

// CreateCursor creates a white on black cursor.
func CreateCursor(conn *xgb.Conn, glyph uint16) (xproto.Cursor, error) {
	return CreateCursorColor(conn, glyph, Color{0xffff, 0xffff, 0xffff}, Color{})
}

type Color struct {
	Red, Green, Blue uint16
}

func CreateCursorColor(conn *xgb.Conn, glyph uint16, fore, back Color) (xproto.Cursor, error) {
	fontID, err := xproto.NewFontId(conn)
	if err != nil {
		return 0, err
	}

	cursorID, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, err
	}

	if err := xproto.OpenFontChecked(conn, fontID, uint16(len("cursor")), "cursor").Check(); err != nil {
		return 0, fmt.Errorf("open cursor font: %w", err)
	}
	defer xproto.CloseFont(conn, fontID)

	if err := xproto.CreateGlyphCursorChecked(conn, cursorID, fontID, fontID,
		glyph, glyph+1,
		fore.Red, fore.Green, fore.Blue,
		back.Red, back.Green, back.Blue).Check(); err != nil {
		return 0, fmt.Errorf("create glyph cursor %d: %w", glyph, err)
	}

	return cursorID, nil
}
