package wmstate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	ErrEmptyAtomName   = errors.New("empty atom name")
	ErrAtomUnavailable = errors.New("atom unavailable")
)

// AtomResolver returns the server-assigned identifier for an atom name,
// interning the name if the server does not know it yet.
type AtomResolver interface {
	Atom(name string) (xproto.Atom, error)
}

// NewConnResolver returns a resolver that does one InternAtom round trip per call.
func NewConnResolver(conn *xgb.Conn) ConnResolver {
	return ConnResolver{conn: conn}
}

type ConnResolver struct {
	conn *xgb.Conn
}

func (r ConnResolver) Atom(name string) (xproto.Atom, error) {
	if name == "" {
		return xproto.AtomNone, ErrEmptyAtomName
	}

	reply, err := xproto.InternAtom(r.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return xproto.AtomNone, fmt.Errorf("intern atom %s: %w", name, err)
	}
	if reply == nil || reply.Atom == xproto.AtomNone {
		return xproto.AtomNone, fmt.Errorf("intern atom %s: %w", name, ErrAtomUnavailable)
	}

	return reply.Atom, nil
}

// NewCachedResolver caches the atoms returned by resolver. Atom ids are stable
// for the lifetime of a server connection. Failures are not cached.
func NewCachedResolver(resolver AtomResolver) *CachedResolver {
	return &CachedResolver{
		resolver: resolver,
		atoms:    make(map[string]xproto.Atom),
	}
}

type CachedResolver struct {
	resolver AtomResolver

	mu    sync.RWMutex
	atoms map[string]xproto.Atom
}

func (c *CachedResolver) Atom(name string) (xproto.Atom, error) {
	c.mu.RLock()
	atom, ok := c.atoms[name]
	c.mu.RUnlock()
	if ok {
		return atom, nil
	}

	atom, err := c.resolver.Atom(name)
	if err != nil {
		return xproto.AtomNone, err
	}

	c.mu.Lock()
	c.atoms[name] = atom
	c.mu.Unlock()

	return atom, nil
}

// Atoms resolves every name in order and stops at the first failure.
func Atoms(resolver AtomResolver, names ...string) ([]xproto.Atom, error) {
	atoms := make([]xproto.Atom, 0, len(names))
	for _, name := range names {
		atom, err := resolver.Atom(name)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
	}
	return atoms, nil
}
