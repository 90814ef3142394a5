package wmstate

import (
	"fmt"
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// DeliveryMask routes a message to the window manager listening on the root
// window.
const DeliveryMask = xproto.EventMaskStructureNotify | xproto.EventMaskSubstructureRedirect

// Sender transmits an encoded event without asking for an acknowledgment.
type Sender interface {
	SendEvent(destination xproto.Window, eventMask uint32, event []byte) error
}

func NewConnSender(conn *xgb.Conn) ConnSender {
	return ConnSender{conn: conn}
}

type ConnSender struct {
	conn *xgb.Conn
}

func (s ConnSender) SendEvent(destination xproto.Window, eventMask uint32, event []byte) error {
	xproto.SendEvent(s.conn, false, destination, eventMask, string(event))
	return nil
}

// Client holds everything needed to request window-manager state changes over
// one connection. Create it once and pass it to callers.
type Client struct {
	sender Sender
	atoms  AtomResolver
	screen *xproto.ScreenInfo
}

// NewClient locates the screen of root on conn. A missing screen is logged and
// every later send fails with ErrScreenNotFound.
func NewClient(conn *xgb.Conn, atoms AtomResolver, root xproto.Window) *Client {
	screen, err := FindScreen(xproto.Setup(conn), root)
	if err != nil {
		slog.Warn("Failed to get screen information", "root", root, "error", err)
	}

	return New(NewConnSender(conn), atoms, screen)
}

func New(sender Sender, atoms AtomResolver, screen *xproto.ScreenInfo) *Client {
	return &Client{
		sender: sender,
		atoms:  atoms,
		screen: screen,
	}
}

func (c *Client) Atoms() AtomResolver {
	return c.atoms
}

// Root returns the root window messages are sent to.
func (c *Client) Root() (xproto.Window, error) {
	if c.screen == nil {
		return 0, ErrScreenNotFound
	}
	return c.screen.Root, nil
}

// SendClientMessage sends a client message about window to the root window.
func (c *Client) SendClientMessage(window xproto.Window, typ xproto.Atom, data [5]uint32) error {
	return c.send(NewClientMessage(window, typ, data))
}

// Send encodes every request and then sends them in order. Nothing is sent if
// any request fails to encode.
func (c *Client) Send(window xproto.Window, reqs ...Request) error {
	if c.screen == nil {
		return ErrScreenNotFound
	}

	events := make([]xproto.ClientMessageEvent, 0, len(reqs))
	for _, req := range reqs {
		ev, err := Encode(window, req, c.atoms)
		if err != nil {
			return err
		}
		events = append(events, ev)
	}

	for i, ev := range events {
		if err := c.send(ev); err != nil {
			return fmt.Errorf("send %s: %w", reqs[i], err)
		}
		slog.Debug("Sent client message", "window", window, "request", reqs[i].String(), "type", ev.Type)
	}

	return nil
}

func (c *Client) send(ev xproto.ClientMessageEvent) error {
	root, err := c.Root()
	if err != nil {
		return err
	}
	return c.sender.SendEvent(root, DeliveryMask, ev.Bytes())
}
