package wmstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert.Equal(t, WindowState(0), Decode(nil, NormalState))
	assert.Equal(t, StateMinimized, Decode(nil, IconicState))
	assert.Equal(t, StateMinimized, Decode([]string{NetWMStateHidden}, NormalState))
	assert.Equal(t, WindowState(0), Decode([]string{NetWMStateMaximizedHorz}, NormalState))
	assert.Equal(t, StateMinimized|StateMaximized,
		Decode([]string{NetWMStateMaximizedVert, NetWMStateMaximizedHorz}, IconicState))
	assert.Equal(t, StateFullScreen, Decode([]string{NetWMStateFullscreen, "_NET_WM_STATE_FOCUSED"}, NormalState))
}

func TestWindowStateString(t *testing.T) {
	assert.Equal(t, "NoState", WindowState(0).String())
	assert.Equal(t, "Minimized|Maximized", (StateMaximized | StateMinimized).String())
	assert.True(t, (StateMaximized | StateMinimized).Has(StateMaximized))
	assert.False(t, StateMinimized.Has(StateMaximized))
}
