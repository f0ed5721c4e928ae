package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/internal/live"
	"github.com/thesrcielos/RobotArena/internal/metrics"
	"github.com/thesrcielos/RobotArena/internal/user"
	"github.com/thesrcielos/RobotArena/websocket/router"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type Handler struct {
	registry  *live.Registry
	pusher    *live.Pusher
	router    *router.Router
	jwtSecret string
	metrics   metrics.Metrics
}

func NewHandler(registry *live.Registry, pusher *live.Pusher, jwtSecret string, m metrics.Metrics) *Handler {
	return &Handler{
		registry:  registry,
		pusher:    pusher,
		router:    router.NewRouter(pusher),
		jwtSecret: jwtSecret,
		metrics:   m,
	}
}

// WebSocketHandler authenticates the token query parameter and attaches the
// player to the live stats feed.
func (h *Handler) WebSocketHandler(c echo.Context) error {
	playerID, err := user.ParseJWT(c.QueryParam("token"), h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.WithError(err).Warn("WebSocket upgrade failed")
		return nil
	}

	conn := h.registry.Register(playerID, ws)
	h.metrics.LiveConnectionOpened()
	log.WithField("player_id", playerID).Info("Player connected")

	go h.listenPlayerMessages(conn)
	return nil
}
