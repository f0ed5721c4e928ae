package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/internal/live"
	"github.com/thesrcielos/RobotArena/websocket/message"
)

const initialPushTimeout = 5 * time.Second

func (h *Handler) listenPlayerMessages(conn *live.Connection) {
	defer func() {
		log.WithField("player_id", conn.PlayerID).Info("Player disconnected")
		h.registry.Unregister(conn)
		h.metrics.LiveConnectionClosed()
		conn.Conn.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), initialPushTimeout)
	h.pusher.PushStats(ctx, conn.PlayerID, conn.PlayerID)
	cancel()

	for {
		_, data, err := conn.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).WithField("player_id", conn.PlayerID).Warn("Error reading message")
			}
			break
		}

		var msg message.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.WithError(err).WithField("player_id", conn.PlayerID).Warn("Error decoding message")
			continue
		}

		h.router.RouteMessage(conn.PlayerID, msg)
	}
}
