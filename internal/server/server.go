package server

import (
	"fmt"
	"net/http"

	"github.com/cachopreto/webdev-semester-team1/config"
	"github.com/cachopreto/webdev-semester-team1/internal/handler"
	"github.com/cachopreto/webdev-semester-team1/internal/middleware"
	"github.com/cachopreto/webdev-semester-team1/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const serviceName = "reservation-service"

type Deps struct {
	Config *config.Config
	Booker service.ReservationBooker
	Log    *zap.Logger
	// Redis may be nil; reservations are then not rate limited.
	Redis *redis.Client
}

// New assembles the echo instance: middleware chain, API routes and pages.
func New(d Deps) (*echo.Echo, error) {
	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = middleware.NewErrorHandler(d.Log)
	// Client IP is the TCP peer; forwarding headers are not trusted.
	e.IPExtractor = echo.ExtractIPDirect()

	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			d.Log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("requestId", v.RequestID),
				zap.String("remoteIp", v.RemoteIP),
				zap.String("sessionId", middleware.SessionID(c)),
			)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	session, err := middleware.Session(middleware.SessionConfig{
		HashKey:     []byte(d.Config.SessionHashKey),
		BlockKey:    []byte(d.Config.SessionBlockKey),
		IdleTimeout: d.Config.SessionIdleTimeout,
		Secure:      !d.Config.IsDevelopment(),
	})
	if err != nil {
		return nil, err
	}
	e.Use(session)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})
	e.Static("/static", d.Config.StaticDir)

	limiter := middleware.RateLimit(d.Redis, middleware.RateLimitConfig{
		Requests: d.Config.RateLimitRequests,
		Window:   d.Config.RateLimitWindow,
		Prefix:   "rl:reservations",
	}, d.Log)
	handler.NewReservationHandler(d.Booker, d.Log).RegisterRoutes(e, limiter)
	handler.NewPageHandler(d.Log).RegisterRoutes(e)

	return e, nil
}
