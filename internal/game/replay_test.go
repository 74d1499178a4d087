package game

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

// recordedGame plays a short scripted game on a fresh harness while recording
// every action, returning the recorder and the live engine's final checksum.
func recordedGame(t *testing.T) (*Replay, string) {
	t.Helper()
	h := newHarness(t)
	rec := NewReplay(42, []PlayerSetup{{ID: "p1", Name: "p1"}})

	script := []Action{
		{Type: ActionDebugGainPoints, Points: content.PointMove, Amount: 5},
		{Type: ActionMove, To: &HexCoord{Q: -1, R: 1}},
		{Type: ActionEndTurn},
		{Type: ActionRerollSource},
		{Type: ActionEndTurn},
	}
	for _, act := range script {
		h.do("p1", act)
		rec.Record("p1", act, h.state())
	}
	return rec, h.state().Checksum()
}

func TestPlaybackReproducesTheGame(t *testing.T) {
	rec, want := recordedGame(t)
	assert.Equal(t, 5, rec.Size())

	final, err := rec.Playback(content.NewBuiltinCatalog())
	require.NoError(t, err)
	assert.Equal(t, want, final.Checksum())
}

func TestPlaybackDetectsDivergence(t *testing.T) {
	rec, _ := recordedGame(t)
	rec.Entries[2].Checksum = "tampered"

	_, err := rec.Playback(content.NewBuiltinCatalog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diverged at step 2")
}

func TestReplayFileRoundTrip(t *testing.T) {
	rec, want := recordedGame(t)
	dir := t.TempDir()
	require.NoError(t, rec.SaveToFile(dir, "short-game"))

	loaded, err := LoadReplay(filepath.Join(dir, "short-game.replay.gz"))
	require.NoError(t, err)
	assert.Equal(t, rec.Seed, loaded.Seed)
	assert.Equal(t, rec.Size(), loaded.Size())

	final, err := loaded.Playback(content.NewBuiltinCatalog())
	require.NoError(t, err)
	assert.Equal(t, want, final.Checksum())
}

func TestLoadReplayMissingFile(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "nothing.replay.gz"))
	require.Error(t, err)
}

func TestChecksumIsOrderIndependentForMaps(t *testing.T) {
	h := newHarness(t)
	st := h.state()
	// Count maps and the hex map hash identically across iterations.
	first := st.Checksum()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, st.Checksum())
	}
}

func TestChecksumSeesHiddenState(t *testing.T) {
	h := newHarness(t)
	before := h.state().Checksum()

	st := h.state()
	st.NextInstance++
	assert.NotEqual(t, before, st.Checksum(), "instance counter is part of the fingerprint")
}
