package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mage-knight-digital/knight-engine-go/internal/game"
)

// ErrGameNotFound is returned when loading a game id with no row.
var ErrGameNotFound = errors.New("game not found")

// GameRecord is the persisted identity of one game.
type GameRecord struct {
	ID       string
	Seed     uint64
	Players  []game.PlayerSetup
	Finished bool
	Checksum string
}

// GameStore persists games as seed + action log, the same recipe the replay
// recorder uses.
type GameStore struct {
	pool *pgxpool.Pool
}

// NewGameStore wraps a pool.
func NewGameStore(pool *pgxpool.Pool) *GameStore {
	return &GameStore{pool: pool}
}

// Create inserts a new game row.
func (s *GameStore) Create(ctx context.Context, rec GameRecord) error {
	players, err := json.Marshal(rec.Players)
	if err != nil {
		return fmt.Errorf("marshal players: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO games (id, seed, players, finished, checksum)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, int64(rec.Seed), players, rec.Finished, rec.Checksum)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", rec.ID, err)
	}
	return nil
}

// AppendAction records one applied action and updates the game header in a
// single transaction, so the log and the header checksum never diverge.
func (s *GameStore) AppendAction(ctx context.Context, gameID string, seq int, playerID string, act game.Action, checksum string, finished bool) error {
	payload, err := json.Marshal(act)
	if err != nil {
		return fmt.Errorf("marshal action: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO game_actions (game_id, seq, player_id, action, checksum)
		VALUES ($1, $2, $3, $4, $5)`,
		gameID, seq, playerID, payload, checksum); err != nil {
		return fmt.Errorf("insert action %d for %s: %w", seq, gameID, err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE games SET checksum = $2, finished = $3, updated_at = now()
		WHERE id = $1`,
		gameID, checksum, finished); err != nil {
		return fmt.Errorf("update game %s: %w", gameID, err)
	}
	return tx.Commit(ctx)
}

// Load reads a game header and its full action log as a Replay, ready for
// playback.
func (s *GameStore) Load(ctx context.Context, gameID string) (GameRecord, *game.Replay, error) {
	var (
		rec     GameRecord
		seed    int64
		players []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, seed, players, finished, checksum FROM games WHERE id = $1`,
		gameID).Scan(&rec.ID, &seed, &players, &rec.Finished, &rec.Checksum)
	if errors.Is(err, pgx.ErrNoRows) {
		return GameRecord{}, nil, ErrGameNotFound
	}
	if err != nil {
		return GameRecord{}, nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	rec.Seed = uint64(seed)
	if err := json.Unmarshal(players, &rec.Players); err != nil {
		return GameRecord{}, nil, fmt.Errorf("unmarshal players for %s: %w", gameID, err)
	}

	replay := game.NewReplay(rec.Seed, rec.Players)
	rows, err := s.pool.Query(ctx, `
		SELECT player_id, action, checksum FROM game_actions
		WHERE game_id = $1 ORDER BY seq`,
		gameID)
	if err != nil {
		return GameRecord{}, nil, fmt.Errorf("load actions for %s: %w", gameID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			playerID string
			payload  []byte
			checksum string
		)
		if err := rows.Scan(&playerID, &payload, &checksum); err != nil {
			return GameRecord{}, nil, fmt.Errorf("scan action for %s: %w", gameID, err)
		}
		var act game.Action
		if err := json.Unmarshal(payload, &act); err != nil {
			return GameRecord{}, nil, fmt.Errorf("unmarshal action for %s: %w", gameID, err)
		}
		replay.Entries = append(replay.Entries, game.ReplayEntry{
			PlayerID: playerID,
			Action:   act,
			Checksum: checksum,
		})
	}
	if err := rows.Err(); err != nil {
		return GameRecord{}, nil, fmt.Errorf("iterate actions for %s: %w", gameID, err)
	}
	return rec, replay, nil
}

// ListOpen returns the ids of unfinished games, oldest first.
func (s *GameStore) ListOpen(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id FROM games WHERE NOT finished ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list open games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
