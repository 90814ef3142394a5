package wmstate

import (
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRoot   xproto.Window = 0x1e1
	testWindow xproto.Window = 0x400001
)

func newTestClient() (*Client, *fakeSender, *fakeResolver) {
	sender := &fakeSender{}
	atoms := newFakeResolver()
	return New(sender, atoms, &xproto.ScreenInfo{Root: testRoot}), sender, atoms
}

func decodeSent(t *testing.T, ev sentEvent) (xproto.Atom, []uint32) {
	t.Helper()

	require.Equal(t, testRoot, ev.destination)
	require.Equal(t, uint32(xproto.EventMaskStructureNotify|xproto.EventMaskSubstructureRedirect), ev.mask)
	require.Equal(t, uint32(testWindow), xgb.Get32(ev.event[4:]))

	data := make([]uint32, 5)
	for i := range data {
		data[i] = xgb.Get32(ev.event[12+i*4:])
	}
	return xproto.Atom(xgb.Get32(ev.event[8:])), data
}

func TestClientSendOrder(t *testing.T) {
	client, sender, _ := newTestClient()

	require.NoError(t, client.Send(testWindow, MinimizeStep1()...))
	require.NoError(t, client.Send(testWindow, MinimizeStep2()...))
	require.Len(t, sender.sent, 3)

	typ, data := decodeSent(t, sender.sent[0])
	assert.Equal(t, testAtoms[NetWMState], typ)
	assert.Equal(t, uint32(0), data[0])

	typ, data = decodeSent(t, sender.sent[1])
	assert.Equal(t, testAtoms[WMChangeState], typ)
	assert.Equal(t, []uint32{IconicState, 0, 0, 0, 0}, data)

	typ, data = decodeSent(t, sender.sent[2])
	assert.Equal(t, testAtoms[NetWMState], typ)
	assert.Equal(t, uint32(1), data[0])
}

func TestClientSendWithoutScreen(t *testing.T) {
	sender := &fakeSender{}
	client := New(sender, newFakeResolver(), nil)

	err := client.Send(testWindow, ToggleMaximize{Set: true})
	require.ErrorIs(t, err, ErrScreenNotFound)

	err = client.SendClientMessage(testWindow, testAtoms[NetWMState], [5]uint32{1})
	require.ErrorIs(t, err, ErrScreenNotFound)

	assert.Empty(t, sender.sent)
}

func TestClientSendNothingOnEncodeFailure(t *testing.T) {
	client, sender, atoms := newTestClient()
	atoms.fail[NetWMStateMaximizedHorz] = errDisconnected

	err := client.Send(testWindow, MinimizeStep2()...)
	require.ErrorIs(t, err, errDisconnected)
	assert.Empty(t, sender.sent)
}

func TestClientSendClientMessage(t *testing.T) {
	client, sender, _ := newTestClient()

	require.NoError(t, client.SendClientMessage(testWindow, 42, [5]uint32{7, 8}))
	require.Len(t, sender.sent, 1)

	typ, data := decodeSent(t, sender.sent[0])
	assert.Equal(t, xproto.Atom(42), typ)
	assert.Equal(t, []uint32{7, 8, 0, 0, 0}, data)
}

func TestClientSenderError(t *testing.T) {
	client, sender, _ := newTestClient()
	sender.err = errDisconnected

	err := client.Send(testWindow, RequestIconify{})
	require.ErrorIs(t, err, errDisconnected)
}
