// Package server exposes the rules engine over a websocket JSON protocol:
// clients create or join a game, submit actions and receive the resulting
// event stream. All engine calls for one game are serialized on the game's
// lock; the engine itself stays single-threaded.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mage-knight-digital/knight-engine-go/internal/auth"
	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game"
	"github.com/mage-knight-digital/knight-engine-go/internal/repository"
	"github.com/mage-knight-digital/knight-engine-go/internal/session"
)

// Gateway owns the live games and their connected clients.
type Gateway struct {
	logger   *zap.Logger
	catalog  content.Catalog
	sessions *session.Manager
	tokens   *auth.TokenStore      // nil disables reconnect tokens
	store    *repository.GameStore // nil disables persistence

	replayDir     string
	replayEnabled bool
	debug         bool

	mu    sync.RWMutex
	rooms map[string]*room
}

// room is one live game plus its subscribers. The mutex serializes engine
// calls; broadcasts go out while holding it so event order matches state
// order.
type room struct {
	id     string
	mu     sync.Mutex
	engine *game.Engine
	replay *game.Replay
	seq    int

	clients map[*client]bool
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithStore enables game persistence.
func WithStore(store *repository.GameStore) GatewayOption {
	return func(g *Gateway) { g.store = store }
}

// WithTokenStore enables one-shot reconnect tokens.
func WithTokenStore(tokens *auth.TokenStore) GatewayOption {
	return func(g *Gateway) { g.tokens = tokens }
}

// WithReplayDir enables replay files written on game finish.
func WithReplayDir(dir string) GatewayOption {
	return func(g *Gateway) {
		g.replayDir = dir
		g.replayEnabled = dir != ""
	}
}

// WithDebugGames creates engines with debug actions enabled.
func WithDebugGames() GatewayOption {
	return func(g *Gateway) { g.debug = true }
}

// NewGateway creates a gateway over a content catalog.
func NewGateway(logger *zap.Logger, cat content.Catalog, sessions *session.Manager, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		logger:   logger,
		catalog:  cat,
		sessions: sessions,
		rooms:    make(map[string]*room),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Handler returns the websocket endpoint.
func (g *Gateway) Handler() http.Handler {
	return http.HandlerFunc(g.serveWS)
}

// GameCount returns the number of live games.
func (g *Gateway) GameCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// CreateGame starts a new game and returns its id. A zero seed picks one
// from the clock.
func (g *Gateway) CreateGame(seed uint64, players []game.PlayerSetup) (string, error) {
	if len(players) == 0 {
		return "", fmt.Errorf("a game needs at least one player")
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	st, err := game.NewGameState(seed, players, g.catalog)
	if err != nil {
		return "", fmt.Errorf("create game state: %w", err)
	}
	opts := []game.Option{game.WithLogger(g.logger)}
	if g.debug {
		opts = append(opts, game.WithDebugActions())
	}

	gameID := uuid.NewString()
	r := &room{
		id:      gameID,
		engine:  game.NewEngine(g.catalog, st, opts...),
		replay:  game.NewReplay(seed, players),
		clients: make(map[*client]bool),
	}

	g.mu.Lock()
	g.rooms[gameID] = r
	g.mu.Unlock()

	if g.store != nil {
		rec := repository.GameRecord{
			ID:       gameID,
			Seed:     seed,
			Players:  players,
			Checksum: st.Checksum(),
		}
		if err := g.store.Create(context.Background(), rec); err != nil {
			g.logger.Error("persist new game failed",
				zap.String("game_id", gameID), zap.Error(err))
		}
	}

	g.logger.Info("game created",
		zap.String("game_id", gameID),
		zap.Uint64("seed", seed),
		zap.Int("players", len(players)))
	return gameID, nil
}

// ResumeGame rebuilds a persisted game by replaying its action log and
// registers it as a live room.
func (g *Gateway) ResumeGame(ctx context.Context, gameID string) error {
	if g.store == nil {
		return fmt.Errorf("no game store configured")
	}
	_, replay, err := g.store.Load(ctx, gameID)
	if err != nil {
		return err
	}
	st, err := replay.Playback(g.catalog)
	if err != nil {
		return fmt.Errorf("resume %s: %w", gameID, err)
	}

	opts := []game.Option{game.WithLogger(g.logger)}
	if g.debug {
		opts = append(opts, game.WithDebugActions())
	}
	r := &room{
		id:      gameID,
		engine:  game.NewEngine(g.catalog, st, opts...),
		replay:  replay,
		seq:     replay.Size(),
		clients: make(map[*client]bool),
	}

	g.mu.Lock()
	g.rooms[gameID] = r
	g.mu.Unlock()

	g.logger.Info("game resumed",
		zap.String("game_id", gameID),
		zap.Int("actions", replay.Size()))
	return nil
}

// Submit runs one action against a game and returns the resulting events
// plus the new checksum. Invalid actions come back as events, exactly as the
// engine reports them.
func (g *Gateway) Submit(gameID, playerID string, act game.Action) ([]game.Event, string, error) {
	r, ok := g.room(gameID)
	if !ok {
		return nil, "", fmt.Errorf("game %s not found", gameID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.engine.ProcessAction(playerID, act)
	if err != nil {
		return nil, "", err
	}
	checksum := r.engine.State().Checksum()

	if applied(events) {
		r.seq++
		r.replay.Record(playerID, act, r.engine.State())
		if g.store != nil {
			finished := r.engine.State().Finished
			if perr := g.store.AppendAction(context.Background(), gameID, r.seq, playerID, act, checksum, finished); perr != nil {
				g.logger.Error("persist action failed",
					zap.String("game_id", gameID),
					zap.String("action", string(act.Type)),
					zap.Error(perr))
			}
		}
		if r.engine.State().Finished {
			g.saveReplay(r)
		}
	}

	r.broadcast(ServerMessage{
		Type:     MsgEvents,
		GameID:   gameID,
		Checksum: checksum,
		Events:   wrapEvents(events),
	})
	return events, checksum, nil
}

// State returns a game's current snapshot.
func (g *Gateway) State(gameID string) (*game.GameState, error) {
	r, ok := g.room(gameID)
	if !ok {
		return nil, fmt.Errorf("game %s not found", gameID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.State(), nil
}

// Shutdown saves replays for all unfinished games and drops the rooms.
func (g *Gateway) Shutdown() {
	g.mu.Lock()
	rooms := make([]*room, 0, len(g.rooms))
	for _, r := range g.rooms {
		rooms = append(rooms, r)
	}
	g.rooms = make(map[string]*room)
	g.mu.Unlock()

	for _, r := range rooms {
		r.mu.Lock()
		g.saveReplay(r)
		for c := range r.clients {
			c.close()
		}
		r.mu.Unlock()
	}
	g.logger.Info("gateway stopped", zap.Int("games", len(rooms)))
}

func (g *Gateway) room(gameID string) (*room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[gameID]
	return r, ok
}

// saveReplay writes the room's replay file. Callers hold the room lock.
func (g *Gateway) saveReplay(r *room) {
	if !g.replayEnabled || r.replay.Size() == 0 {
		return
	}
	if err := r.replay.SaveToFile(g.replayDir, r.id); err != nil {
		g.logger.Error("save replay failed",
			zap.String("game_id", r.id), zap.Error(err))
		return
	}
	g.logger.Info("replay saved",
		zap.String("game_id", r.id),
		zap.Int("actions", r.replay.Size()))
}

// applied reports whether the action changed state, i.e. it was not a pure
// rejection.
func applied(events []game.Event) bool {
	for _, e := range events {
		if e.Type() == game.EventInvalidAction {
			return false
		}
	}
	return true
}

// broadcast sends a frame to every client in the room. Callers hold the
// room lock. Slow clients are dropped rather than blocking the game.
func (r *room) broadcast(msg ServerMessage) {
	for c := range r.clients {
		if !c.trySend(msg) {
			delete(r.clients, c)
			c.close()
		}
	}
}
