package middleware

import (
	"errors"
	"net/http"

	"github.com/cachopreto/webdev-semester-team1/internal/dto"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const MsgInternalError = "Internal server error."

// NewErrorHandler renders every error as {"message": ...}. Server-side failures are
// logged with the request id and never expose their cause to the caller.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := MsgInternalError

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok && code < http.StatusInternalServerError {
				msg = m
			}
		}

		if code >= http.StatusInternalServerError {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			log.Error("request failed",
				zap.String("requestId", requestID),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err))
			_ = c.JSON(code, dto.ErrorResponse{Message: msg, RequestID: requestID})
			return
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, dto.ErrorResponse{Message: msg})
	}
}
