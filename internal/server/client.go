package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The gateway has no browser origin policy of its own; deployments put
	// one in front of it.
	CheckOrigin: func(*http.Request) bool { return true },
}

// client is one websocket connection. Writes go through a buffered channel
// so room broadcasts never block on a slow socket.
type client struct {
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan ServerMessage
	closed bool

	sessionID string
	playerID  string
	gameID    string
}

func (g *Gateway) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	playerID := r.URL.Query().Get("player")
	// A reconnect token overrides the claimed identity.
	if token := r.URL.Query().Get("token"); token != "" && g.tokens != nil {
		id, err := g.tokens.Redeem(token)
		if err != nil {
			_ = conn.WriteJSON(ServerMessage{Type: MsgError, Error: err.Error()})
			conn.Close()
			return
		}
		playerID = id
	}

	sess, err := g.sessions.Open(playerID)
	if err != nil {
		g.logger.Warn("session open failed", zap.Error(err))
		_ = conn.WriteJSON(ServerMessage{Type: MsgError, Error: err.Error()})
		conn.Close()
		return
	}

	c := &client{
		conn:      conn,
		send:      make(chan ServerMessage, sendBufferSize),
		sessionID: sess.ID,
		playerID:  sess.PlayerID,
	}
	go c.writePump()

	hello := ServerMessage{Type: MsgSession, PlayerID: c.playerID}
	if g.tokens != nil {
		hello.ReconnectToken = g.tokens.Issue(c.playerID)
	}
	c.trySend(hello)

	g.readPump(c)
}

// readPump drives the connection until it closes.
func (g *Gateway) readPump(c *client) {
	defer func() {
		g.detach(c)
		g.sessions.Close(c.sessionID)
		c.close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if _, err := g.sessions.Touch(c.sessionID); err != nil {
			c.trySend(ServerMessage{Type: MsgError, Error: err.Error()})
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.trySend(ServerMessage{Type: MsgError, Error: "malformed message"})
			continue
		}
		g.handleMessage(c, msg)
	}
}

// handleMessage dispatches one client frame.
func (g *Gateway) handleMessage(c *client, msg ClientMessage) {
	switch msg.Type {
	case MsgCreateGame:
		gameID, err := g.CreateGame(msg.Seed, msg.Players)
		if err != nil {
			c.trySend(ServerMessage{Type: MsgError, Error: err.Error()})
			return
		}
		g.attach(c, gameID, msg.PlayerID)
		g.sendState(c, gameID, MsgGameCreated)

	case MsgJoinGame:
		if _, ok := g.room(msg.GameID); !ok {
			c.trySend(ServerMessage{Type: MsgError, Error: "game not found"})
			return
		}
		g.attach(c, msg.GameID, msg.PlayerID)
		g.sendState(c, msg.GameID, MsgGameState)

	case MsgAction:
		if msg.Action == nil {
			c.trySend(ServerMessage{Type: MsgError, Error: "action missing"})
			return
		}
		if c.gameID == "" {
			c.trySend(ServerMessage{Type: MsgError, Error: "join a game first"})
			return
		}
		playerID := msg.PlayerID
		if playerID == "" {
			playerID = c.playerID
		}
		if _, _, err := g.Submit(c.gameID, playerID, *msg.Action); err != nil {
			g.logger.Error("action failed",
				zap.String("game_id", c.gameID),
				zap.String("player_id", playerID),
				zap.Error(err))
			c.trySend(ServerMessage{Type: MsgError, Error: "internal engine error"})
		}

	case MsgGetState:
		gameID := msg.GameID
		if gameID == "" {
			gameID = c.gameID
		}
		g.sendState(c, gameID, MsgGameState)

	default:
		c.trySend(ServerMessage{Type: MsgError, Error: "unknown message type"})
	}
}

// attach subscribes a client to a room.
func (g *Gateway) attach(c *client, gameID, playerID string) {
	r, ok := g.room(gameID)
	if !ok {
		return
	}
	if playerID != "" {
		c.playerID = playerID
	}
	c.gameID = gameID
	_ = g.sessions.Bind(c.sessionID, gameID)

	r.mu.Lock()
	r.clients[c] = true
	r.mu.Unlock()
}

// detach removes a client from its room.
func (g *Gateway) detach(c *client) {
	if c.gameID == "" {
		return
	}
	r, ok := g.room(c.gameID)
	if !ok {
		return
	}
	r.mu.Lock()
	delete(r.clients, c)
	r.mu.Unlock()
}

func (g *Gateway) sendState(c *client, gameID, msgType string) {
	st, err := g.State(gameID)
	if err != nil {
		c.trySend(ServerMessage{Type: MsgError, Error: err.Error()})
		return
	}
	c.trySend(ServerMessage{
		Type:     msgType,
		GameID:   gameID,
		Checksum: st.Checksum(),
		State:    st,
	})
}

// trySend queues a frame, reporting false when the client is closed or its
// buffer is full. A room broadcast may close a slow client while its reader
// is still dispatching, so the closed check and the send share the lock.
func (c *client) trySend(msg ServerMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
	// Channel closed: say goodbye properly.
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
