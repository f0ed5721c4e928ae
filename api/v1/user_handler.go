package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/RobotArena/internal/stats"
	"github.com/thesrcielos/RobotArena/internal/user"
)

const invalidRequest = "invalid request"

var UserService *user.UserService
var StatsService *stats.Service

func RegisterUserRoutes(g *echo.Group) {
	g.POST("/signup", SignupHandler)
	g.POST("/login", LoginHandler)
	g.GET("/stats/:id", GetUserStatsHandler)
}

func SignupHandler(c echo.Context) error {
	var creds user.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidRequest)
	}
	token, err := UserService.Signup(c.Request().Context(), creds)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

func LoginHandler(c echo.Context) error {
	var creds user.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidRequest)
	}
	token, err := UserService.Login(c.Request().Context(), creds)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func GetUserStatsHandler(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	response, err := StatsService.GetPlayerStats(c.Request().Context(), uint(id))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response)
}
