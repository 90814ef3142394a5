package wmstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedResolverSameID(t *testing.T) {
	fake := newFakeResolver()
	cache := NewCachedResolver(fake)

	first, err := cache.Atom(NetWMState)
	require.NoError(t, err)
	second, err := cache.Atom(NetWMState)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.calls[NetWMState])
}

func TestCachedResolverDoesNotCacheFailures(t *testing.T) {
	fake := newFakeResolver()
	fake.fail[WMChangeState] = errDisconnected
	cache := NewCachedResolver(fake)

	_, err := cache.Atom(WMChangeState)
	require.ErrorIs(t, err, errDisconnected)

	delete(fake.fail, WMChangeState)

	atom, err := cache.Atom(WMChangeState)
	require.NoError(t, err)
	assert.Equal(t, testAtoms[WMChangeState], atom)
	assert.Equal(t, 2, fake.calls[WMChangeState])
}

func TestAtomsStopsAtFirstFailure(t *testing.T) {
	fake := newFakeResolver()
	fake.fail[NetWMStateMaximizedHorz] = errDisconnected

	_, err := Atoms(fake, NetWMStateMaximizedHorz, NetWMStateMaximizedVert)
	require.ErrorIs(t, err, errDisconnected)
	assert.Zero(t, fake.calls[NetWMStateMaximizedVert])
}

func TestConnResolverEmptyName(t *testing.T) {
	_, err := ConnResolver{}.Atom("")
	require.ErrorIs(t, err, ErrEmptyAtomName)
}
