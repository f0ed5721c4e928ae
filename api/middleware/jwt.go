package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/RobotArena/internal/user"
)

const tokenContextKey = "user"

func SetupJWTMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		ContextKey: tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(user.JwtCustomClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var tokenErr *echojwt.TokenError
			if errors.As(err, &tokenErr) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired jwt").SetInternal(err)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt").SetInternal(err)
		},
	})
}

// PlayerID returns the id of the player whose token authenticated the request.
func PlayerID(c echo.Context) (uint, bool) {
	token, ok := c.Get(tokenContextKey).(*jwt.Token)
	if !ok {
		return 0, false
	}
	claims, ok := token.Claims.(*user.JwtCustomClaims)
	if !ok || claims.Id == 0 {
		return 0, false
	}
	return claims.Id, true
}
