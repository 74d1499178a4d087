package server

import (
	"github.com/mage-knight-digital/knight-engine-go/internal/game"
)

// Client message types.
const (
	MsgCreateGame = "create_game"
	MsgJoinGame   = "join_game"
	MsgAction     = "action"
	MsgGetState   = "get_state"
)

// Server message types.
const (
	MsgSession     = "session"
	MsgGameCreated = "game_created"
	MsgGameState   = "game_state"
	MsgEvents      = "events"
	MsgError       = "error"
)

// ClientMessage is one JSON frame from a client.
type ClientMessage struct {
	Type     string             `json:"type"`
	GameID   string             `json:"gameId,omitempty"`
	PlayerID string             `json:"playerId,omitempty"`
	Seed     uint64             `json:"seed,omitempty"`
	Players  []game.PlayerSetup `json:"players,omitempty"`
	Action   *game.Action       `json:"action,omitempty"`
}

// ServerMessage is one JSON frame to a client. Every state-bearing frame
// carries the checksum so clients can detect divergence cheaply.
type ServerMessage struct {
	Type     string          `json:"type"`
	GameID   string          `json:"gameId,omitempty"`
	Checksum string          `json:"checksum,omitempty"`
	State    *game.GameState `json:"state,omitempty"`
	Events   []EventEnvelope `json:"events,omitempty"`
	Error    string          `json:"error,omitempty"`

	// Session frames carry the player identity and a one-shot reconnect
	// token for the next connection.
	PlayerID       string `json:"playerId,omitempty"`
	ReconnectToken string `json:"reconnectToken,omitempty"`
}

// EventEnvelope pairs an event with its type tag, since the concrete event
// structs do not serialize their discriminant. Data is any so receivers can
// decode the envelope without knowing every event struct.
type EventEnvelope struct {
	Type game.EventType `json:"type"`
	Data any            `json:"data"`
}

// wrapEvents builds envelopes for a ProcessAction result.
func wrapEvents(events []game.Event) []EventEnvelope {
	out := make([]EventEnvelope, len(events))
	for i, e := range events {
		out[i] = EventEnvelope{Type: e.Type(), Data: e}
	}
	return out
}
