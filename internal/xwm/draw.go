package xwm

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const DefaultFont = "fixed"

// Painter draws text with a core X font.
type Painter struct {
	conn      *xgb.Conn
	gc        xproto.Gcontext
	font      xproto.Font
	Ascent    int16
	Descent   int16
	// CharWidth is the widest glyph of the font.
	CharWidth int16
}

func NewPainter(conn *xgb.Conn, w *Window, fontName string) (*Painter, error) {
	if fontName == "" {
		fontName = DefaultFont
	}

	font, err := xproto.NewFontId(conn)
	if err != nil {
		return nil, err
	}

	if err := xproto.OpenFontChecked(conn, font, uint16(len(fontName)), fontName).Check(); err != nil {
		return nil, fmt.Errorf("open font %s: %w", fontName, err)
	}

	info, err := xproto.QueryFont(conn, xproto.Fontable(font)).Reply()
	if err != nil {
		xproto.CloseFont(conn, font)
		return nil, fmt.Errorf("query font %s: %w", fontName, err)
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.CloseFont(conn, font)
		return nil, err
	}

	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(w.WID),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont,
		[]uint32{w.Screen.BlackPixel, w.Screen.WhitePixel, uint32(font)}).Check(); err != nil {
		xproto.CloseFont(conn, font)
		return nil, err
	}

	return &Painter{
		conn:      conn,
		gc:        gc,
		font:      font,
		Ascent:    info.FontAscent,
		Descent:   info.FontDescent,
		CharWidth: info.MaxBounds.CharacterWidth,
	}, nil
}

// Text draws text with its baseline at y. Text longer than 255 bytes is cut.
func (p *Painter) Text(wid xproto.Window, x, y int16, text string) {
	if len(text) > 255 {
		text = text[:255]
	}
	xproto.ImageText8(p.conn, byte(len(text)), xproto.Drawable(wid), p.gc, x, y, text)
}

// TextWidth is an upper bound of the drawn width of text.
func (p *Painter) TextWidth(text string) int16 {
	return int16(len(text)) * p.CharWidth
}

// CenteredText draws text centered in a window of size w by h.
func (p *Painter) CenteredText(wid xproto.Window, w, h uint16, text string) {
	x := (int16(w) - p.TextWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	y := (int16(h) + p.Ascent - p.Descent) / 2
	p.Text(wid, x, y, text)
}

func (p *Painter) Clear(wid xproto.Window, x, y int16, w, h uint16) {
	xproto.ClearArea(p.conn, false, wid, x, y, w, h)
}

func (p *Painter) Close() {
	xproto.FreeGC(p.conn, p.gc)
	xproto.CloseFont(p.conn, p.font)
}
