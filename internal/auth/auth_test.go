package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", 4)
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "anything"))
}

func TestTokenIsSingleUse(t *testing.T) {
	store := NewTokenStore(time.Minute)
	token := store.Issue("p1")

	playerID, err := store.Redeem(token)
	require.NoError(t, err)
	assert.Equal(t, "p1", playerID)

	_, err = store.Redeem(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestUnknownTokenRejected(t *testing.T) {
	store := NewTokenStore(time.Minute)
	_, err := store.Redeem("nope")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredTokenRejected(t *testing.T) {
	store := NewTokenStore(time.Minute)
	current := time.Unix(1000, 0)
	store.now = func() time.Time { return current }

	token := store.Issue("p1")
	current = current.Add(2 * time.Minute)

	_, err := store.Redeem(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPruneDropsOnlyExpired(t *testing.T) {
	store := NewTokenStore(time.Minute)
	current := time.Unix(1000, 0)
	store.now = func() time.Time { return current }

	stale := store.Issue("p1")
	current = current.Add(2 * time.Minute)
	fresh := store.Issue("p2")

	assert.Equal(t, 1, store.Prune())

	_, err := store.Redeem(stale)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	playerID, err := store.Redeem(fresh)
	require.NoError(t, err)
	assert.Equal(t, "p2", playerID)
}
