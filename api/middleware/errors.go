package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/thesrcielos/RobotArena/internal/apperrors"
)

// ErrorHandler renders every handler error as {"error": message}. Storage
// failures are logged and hidden behind a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message
	case apperrors.IsNotFound(err):
		code = http.StatusNotFound
		message = "not found"
	}

	if code >= http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request().Method,
			"path":   c.Path(),
		}).Error("Request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, echo.Map{"error": message})
	}
	if writeErr != nil {
		log.WithError(writeErr).Warn("Error writing error response")
	}
}
