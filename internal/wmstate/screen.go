package wmstate

import (
	"errors"

	"github.com/jezek/xgb/xproto"
)

var ErrScreenNotFound = errors.New("screen not found")

// FindScreen returns the first screen advertised at connection setup whose
// root window is root.
func FindScreen(setup *xproto.SetupInfo, root xproto.Window) (*xproto.ScreenInfo, error) {
	if setup == nil {
		return nil, ErrScreenNotFound
	}

	for i := range setup.Roots {
		if setup.Roots[i].Root == root {
			return &setup.Roots[i], nil
		}
	}

	return nil, ErrScreenNotFound
}
