package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/api/middleware"
	"github.com/thesrcielos/RobotArena/internal/game"
)

var GameService *game.GameService

func RegisterGameRoutes(g *echo.Group) {
	g.POST("", RecordGameHandler)
}

func RecordGameHandler(c echo.Context) error {
	var r game.GameRequest
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidRequest)
	}

	recordedBy, ok := middleware.PlayerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	recorded, err := GameService.RecordGame(c.Request().Context(), recordedBy, &r)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"game_id":     recorded.ID,
		"attack_id":   recorded.AttackID,
		"defend_id":   recorded.DefendID,
		"recorded_by": recordedBy,
	}).Info("Game recorded")

	return c.JSON(http.StatusCreated, echo.Map{
		"game": recorded,
	})
}
