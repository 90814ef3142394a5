package wmstate

import (
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeToggleMaximize(t *testing.T) {
	for _, set := range []bool{true, false} {
		ev, err := Encode(0x400001, ToggleMaximize{Set: set}, newFakeResolver())
		require.NoError(t, err)

		want := uint32(0)
		if set {
			want = 1
		}

		assert.Equal(t, testAtoms[NetWMState], ev.Type)
		assert.Equal(t, []uint32{
			want,
			uint32(testAtoms[NetWMStateMaximizedHorz]),
			uint32(testAtoms[NetWMStateMaximizedVert]),
			0,
			0,
		}, ev.Data.Data32, "set=%v", set)
	}
}

func TestEncodeIconify(t *testing.T) {
	ev, err := Encode(0x400001, RequestIconify{}, newFakeResolver())
	require.NoError(t, err)

	assert.Equal(t, testAtoms[WMChangeState], ev.Type)
	assert.Equal(t, []uint32{IconicState, 0, 0, 0, 0}, ev.Data.Data32)
}

func TestEncodeWireLayout(t *testing.T) {
	ev, err := Encode(0x400001, ToggleMaximize{Set: true}, newFakeResolver())
	require.NoError(t, err)

	buf := ev.Bytes()
	require.Len(t, buf, 32)

	assert.Equal(t, byte(xproto.ClientMessage), buf[0])
	assert.Equal(t, byte(32), buf[1])
	assert.Equal(t, uint16(0), xgb.Get16(buf[2:]))
	assert.Equal(t, uint32(0x400001), xgb.Get32(buf[4:]))
	assert.Equal(t, uint32(testAtoms[NetWMState]), xgb.Get32(buf[8:]))
	assert.Equal(t, uint32(1), xgb.Get32(buf[12:]))
	assert.Equal(t, uint32(testAtoms[NetWMStateMaximizedHorz]), xgb.Get32(buf[16:]))
	assert.Equal(t, uint32(testAtoms[NetWMStateMaximizedVert]), xgb.Get32(buf[20:]))
	assert.Equal(t, uint32(0), xgb.Get32(buf[24:]))
	assert.Equal(t, uint32(0), xgb.Get32(buf[28:]))
}

func TestEncodeAtomFailure(t *testing.T) {
	atoms := newFakeResolver()
	atoms.fail[NetWMStateMaximizedVert] = errDisconnected

	_, err := Encode(0x400001, ToggleMaximize{Set: true}, atoms)
	require.ErrorIs(t, err, errDisconnected)

	atoms = newFakeResolver()
	atoms.fail[WMChangeState] = ErrAtomUnavailable

	_, err = Encode(0x400001, RequestIconify{}, atoms)
	require.ErrorIs(t, err, ErrAtomUnavailable)
}

func TestMinimizeSteps(t *testing.T) {
	assert.Equal(t, []Request{ToggleMaximize{Set: false}}, MinimizeStep1())
	assert.Equal(t, []Request{RequestIconify{}, ToggleMaximize{Set: true}}, MinimizeStep2())
}

func TestParseRequests(t *testing.T) {
	for name, want := range map[string][]Request{
		"min-step1":  MinimizeStep1(),
		"min-step2":  MinimizeStep2(),
		"maximize":   {ToggleMaximize{Set: true}},
		"unmaximize": {ToggleMaximize{Set: false}},
		"iconify":    {RequestIconify{}},
	} {
		got, err := ParseRequests(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseRequests("fullscreen")
	assert.ErrorIs(t, err, ErrUnknownRequest)
}
