package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cachopreto/webdev-semester-team1/config"
	"github.com/cachopreto/webdev-semester-team1/internal/dto"
	"github.com/cachopreto/webdev-semester-team1/internal/middleware"
	"github.com/cachopreto/webdev-semester-team1/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockBooker struct {
	reserveFn      func(ctx context.Context, in service.ReserveInput) (*service.ReserveResult, error)
	availabilityFn func(ctx context.Context, showDateID uint) (*service.Availability, error)
}

func (m *mockBooker) Reserve(ctx context.Context, in service.ReserveInput) (*service.ReserveResult, error) {
	return m.reserveFn(ctx, in)
}
func (m *mockBooker) Availability(ctx context.Context, showDateID uint) (*service.Availability, error) {
	return m.availabilityFn(ctx, showDateID)
}

func newTestServer(t *testing.T, booker service.ReservationBooker) *echo.Echo {
	t.Helper()
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "site.css"), []byte("body{}"), 0o644))

	e, err := New(Deps{
		Config: &config.Config{
			AppEnv:             "development",
			SessionIdleTimeout: 10 * time.Second,
			StaticDir:          static,
			RateLimitRequests:  5,
			RateLimitWindow:    time.Minute,
		},
		Booker: booker,
		Log:    zap.NewNop(),
	})
	require.NoError(t, err)
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const reserveBody = `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","theatreShowDateId":1,"amountOfTickets":2}`

func TestHealth(t *testing.T) {
	e := newTestServer(t, &mockBooker{})

	rec := serve(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"reservation-service"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestReserve_Success(t *testing.T) {
	e := newTestServer(t, &mockBooker{
		reserveFn: func(_ context.Context, in service.ReserveInput) (*service.ReserveResult, error) {
			return &service.ReserveResult{ReservationID: 1, TotalPrice: 25}, nil
		},
	})

	rec := serve(e, http.MethodPost, "/api/v1/reservations", reserveBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Reservation successful!","totalPrice":25}`, rec.Body.String())
}

func TestReserve_InternalErrorCarriesRequestID(t *testing.T) {
	e := newTestServer(t, &mockBooker{
		reserveFn: func(context.Context, service.ReserveInput) (*service.ReserveResult, error) {
			return nil, errors.New("pq: connection refused")
		},
	})

	rec := serve(e, http.MethodPost, "/api/v1/reservations", reserveBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, middleware.MsgInternalError, body.Message)
	assert.NotEmpty(t, body.RequestID)
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), body.RequestID)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestReserve_PanicIsRecovered(t *testing.T) {
	e := newTestServer(t, &mockBooker{
		reserveFn: func(context.Context, service.ReserveInput) (*service.ReserveResult, error) {
			panic("boom")
		},
	})

	rec := serve(e, http.MethodPost, "/api/v1/reservations", reserveBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), middleware.MsgInternalError)
}

func TestReserve_ValidationError(t *testing.T) {
	e := newTestServer(t, &mockBooker{})

	rec := serve(e, http.MethodPost, "/api/v1/reservations", `{"firstName":"Ada"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request."}`, rec.Body.String())
}

func TestUnknownAPIRouteFallsBackToIndex(t *testing.T) {
	e := newTestServer(t, &mockBooker{})

	rec := serve(e, http.MethodGet, "/shows/hamlet", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-slug="/shows/hamlet"`)

	var found bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			found = true
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie set")
}

func TestStaticFiles(t *testing.T) {
	e := newTestServer(t, &mockBooker{})

	rec := serve(e, http.MethodGet, "/static/site.css", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
}

func TestErrorPage(t *testing.T) {
	e := newTestServer(t, &mockBooker{})

	rec := serve(e, http.MethodGet, "/error", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), rec.Header().Get(echo.HeaderXRequestID))
	assert.Contains(t, rec.Header().Get(echo.HeaderCacheControl), "no-store")
}

func TestNew_InvalidSessionBlockKey(t *testing.T) {
	_, err := New(Deps{
		Config: &config.Config{SessionBlockKey: "too-short", SessionIdleTimeout: 10 * time.Second},
		Booker: &mockBooker{},
		Log:    zap.NewNop(),
	})

	assert.ErrorContains(t, err, "session block key")
}

func TestReserve_RateLimitedByPeerAddress(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e, err := New(Deps{
		Config: &config.Config{
			SessionIdleTimeout: 10 * time.Second,
			StaticDir:          t.TempDir(),
			RateLimitRequests:  1,
			RateLimitWindow:    time.Minute,
		},
		Booker: &mockBooker{
			reserveFn: func(context.Context, service.ReserveInput) (*service.ReserveResult, error) {
				return &service.ReserveResult{ReservationID: 1, TotalPrice: 25}, nil
			},
		},
		Log:   zap.NewNop(),
		Redis: rdb,
	})
	require.NoError(t, err)

	send := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(reserveBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
		req.RemoteAddr = "198.51.100.1:4000"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.2"), "rotating X-Forwarded-For does not reset the window")
}
