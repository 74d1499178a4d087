package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newManager(t *testing.T, lease time.Duration, limit int) *Manager {
	t.Helper()
	return NewManager(lease, limit, zaptest.NewLogger(t))
}

func TestOpenAndTouch(t *testing.T) {
	m := newManager(t, time.Minute, 0)
	s, err := m.Open("p1")
	require.NoError(t, err)

	got, err := m.Touch(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.PlayerID)
	assert.Equal(t, 1, m.Count())
}

func TestTouchRenewsLease(t *testing.T) {
	m := newManager(t, time.Minute, 0)
	current := time.Unix(1000, 0)
	m.now = func() time.Time { return current }

	s, err := m.Open("p1")
	require.NoError(t, err)

	// Keep touching just inside the lease; the session must survive well
	// past the original expiry.
	for i := 0; i < 5; i++ {
		current = current.Add(50 * time.Second)
		_, err = m.Touch(s.ID)
		require.NoError(t, err)
	}
}

func TestExpiredSessionRemovedOnTouch(t *testing.T) {
	m := newManager(t, time.Minute, 0)
	current := time.Unix(1000, 0)
	m.now = func() time.Time { return current }

	s, err := m.Open("p1")
	require.NoError(t, err)
	current = current.Add(2 * time.Minute)

	_, err = m.Touch(s.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
	_, err = m.Touch(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionLimit(t *testing.T) {
	m := newManager(t, time.Minute, 2)
	_, err := m.Open("p1")
	require.NoError(t, err)
	_, err = m.Open("p2")
	require.NoError(t, err)

	_, err = m.Open("p3")
	assert.ErrorIs(t, err, ErrTooManySessions)

	m.CloseAll()
	_, err = m.Open("p3")
	assert.NoError(t, err)
}

func TestBindAttachesGame(t *testing.T) {
	m := newManager(t, time.Minute, 0)
	s, err := m.Open("p1")
	require.NoError(t, err)

	require.NoError(t, m.Bind(s.ID, "game-1"))
	got, err := m.Touch(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "game-1", got.GameID)

	assert.ErrorIs(t, m.Bind("missing", "game-1"), ErrSessionNotFound)
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	m := newManager(t, time.Minute, 0)
	current := time.Unix(1000, 0)
	m.now = func() time.Time { return current }

	stale, err := m.Open("p1")
	require.NoError(t, err)
	current = current.Add(2 * time.Minute)
	fresh, err := m.Open("p2")
	require.NoError(t, err)

	assert.Equal(t, 1, m.sweep())
	_, err = m.Touch(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Touch(fresh.ID)
	assert.NoError(t, err)
}
