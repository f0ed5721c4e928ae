package router

import (
	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/websocket/actions"
	"github.com/thesrcielos/RobotArena/websocket/message"
)

type HandlerFunc func(playerId uint, msg message.Message)

type Router struct {
	handlers map[string]HandlerFunc
}

func NewRouter(pusher actions.StatsPusher) *Router {
	return &Router{
		handlers: map[string]HandlerFunc{
			message.TypeStatsRefresh: actions.HandleStatsRefresh(pusher),
		},
	}
}

func (r *Router) RouteMessage(playerId uint, msg message.Message) bool {
	handler, ok := r.handlers[msg.Type]
	if !ok {
		log.WithFields(log.Fields{"player_id": playerId, "type": msg.Type}).Warn("Unknown message type")
		return false
	}
	handler(playerId, msg)
	return true
}
