package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
)

// ReplayEntry is one recorded action with the checksum of the state it
// produced.
type ReplayEntry struct {
	PlayerID string
	Action   Action
	Checksum string
}

// Replay records everything needed to reproduce a game: the seed, the
// players and the ordered action log. Because the engine is deterministic,
// replaying the log from the seed rebuilds every intermediate state;
// checksums verify it.
type Replay struct {
	Seed    uint64
	Players []PlayerSetup
	Entries []ReplayEntry

	mu sync.Mutex
}

// NewReplay starts a recording for a game created from the given setup.
func NewReplay(seed uint64, players []PlayerSetup) *Replay {
	return &Replay{Seed: seed, Players: append([]PlayerSetup(nil), players...)}
}

// Record appends one applied action and the resulting state checksum.
func (r *Replay) Record(playerID string, act Action, after *GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, ReplayEntry{
		PlayerID: playerID,
		Action:   act,
		Checksum: after.Checksum(),
	})
}

// Size returns the number of recorded actions.
func (r *Replay) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Entries)
}

// Playback re-executes the recorded log on a fresh engine, verifying each
// step's checksum, and returns the final state.
func (r *Replay) Playback(cat content.Catalog) (*GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	initial, err := NewGameState(r.Seed, r.Players, cat)
	if err != nil {
		return nil, fmt.Errorf("replay setup: %w", err)
	}
	engine := NewEngine(cat, initial, WithDebugActions())
	for i, entry := range r.Entries {
		if _, err := engine.ProcessAction(entry.PlayerID, entry.Action); err != nil {
			return nil, fmt.Errorf("replay step %d (%s): %w", i, entry.Action.Type, err)
		}
		if got := engine.State().Checksum(); got != entry.Checksum {
			return nil, fmt.Errorf("replay diverged at step %d (%s): checksum %s != %s",
				i, entry.Action.Type, got, entry.Checksum)
		}
	}
	return engine.State(), nil
}

// SaveToFile writes the replay as a gzipped gob file.
func (r *Replay) SaveToFile(directory, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("create replay directory: %w", err)
	}
	path := filepath.Join(directory, name+".replay.gz")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create replay file: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	defer zw.Close()

	payload := replayPayload{Seed: r.Seed, Players: r.Players, Entries: r.Entries}
	if err := gob.NewEncoder(zw).Encode(payload); err != nil {
		return fmt.Errorf("encode replay: %w", err)
	}
	return nil
}

// LoadReplay reads a replay written by SaveToFile.
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}
	defer zr.Close()

	var payload replayPayload
	if err := gob.NewDecoder(zr).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	return &Replay{Seed: payload.Seed, Players: payload.Players, Entries: payload.Entries}, nil
}

// replayPayload is the on-disk shape, kept free of the mutex.
type replayPayload struct {
	Seed    uint64
	Players []PlayerSetup
	Entries []ReplayEntry
}
