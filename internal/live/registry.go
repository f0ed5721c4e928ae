package live

import (
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type OutgoingMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Connection struct {
	PlayerID uint
	Conn     *websocket.Conn
	ConnMu   sync.Mutex
}

// Registry tracks the websocket connection of every player attached to this
// instance. A player has at most one connection; a newer one replaces it.
type Registry struct {
	mu      sync.RWMutex
	players map[uint]*Connection
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[uint]*Connection)}
}

func (r *Registry) Register(playerID uint, conn *websocket.Conn) *Connection {
	c := &Connection{PlayerID: playerID, Conn: conn}

	r.mu.Lock()
	previous := r.players[playerID]
	r.players[playerID] = c
	r.mu.Unlock()

	if previous != nil {
		log.WithField("player_id", playerID).Info("Replacing previous live connection")
		previous.ConnMu.Lock()
		previous.Conn.Close()
		previous.ConnMu.Unlock()
	}
	return c
}

// Unregister removes c only if it is still the player's current connection.
func (r *Registry) Unregister(c *Connection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.players[c.PlayerID]; ok && current == c {
		delete(r.players, c.PlayerID)
		return true
	}
	return false
}

func (r *Registry) IsConnected(playerID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.players[playerID]
	return ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.players)
}

func (r *Registry) Send(playerID uint, msg OutgoingMessage) bool {
	r.mu.RLock()
	c := r.players[playerID]
	r.mu.RUnlock()
	if c == nil {
		return false
	}

	c.ConnMu.Lock()
	defer c.ConnMu.Unlock()

	if err := c.Conn.WriteJSON(msg); err != nil {
		log.WithError(err).WithField("player_id", playerID).Warn("Error sending live message")
		return false
	}
	return true
}
