package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPageEcho(t *testing.T) *echo.Echo {
	t.Helper()
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	NewPageHandler(nil).RegisterRoutes(e)
	return e
}

func TestIndex_RendersSlug(t *testing.T) {
	e := newPageEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/shows/hamlet", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-slug="/shows/hamlet"`)
}

func TestErrorPage_ShowsRequestID(t *testing.T) {
	e := newPageEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "req-123")
	assert.Equal(t, "no-store, no-cache", rec.Header().Get("Cache-Control"))
}

func TestErrorPage_WithoutRequestID(t *testing.T) {
	e := newPageEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Request ID")
}
