package actions

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/websocket/message"
)

const refreshTimeout = 5 * time.Second

type StatsPusher interface {
	PushStats(ctx context.Context, recipientID, subjectID uint)
}

func HandleStatsRefresh(pusher StatsPusher) func(playerId uint, msg message.Message) {
	return func(playerId uint, msg message.Message) {
		var payload message.StatsRefreshPayload
		if len(msg.Payload) > 0 && string(msg.Payload) != "null" {
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				log.WithError(err).WithField("player_id", playerId).Warn("Error decoding stats refresh")
				return
			}
		}

		subject := playerId
		if payload.PlayerID != 0 {
			subject = payload.PlayerID
		}

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		pusher.PushStats(ctx, playerId, subject)
	}
}
