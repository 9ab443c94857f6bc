package handler

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplateRenderer implements echo.Renderer over the embedded page templates.
type TemplateRenderer struct {
	tmpl *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

// PageHandler serves the single-page front end and the error page.
type PageHandler struct {
	log *zap.Logger
}

func NewPageHandler(log *zap.Logger) *PageHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageHandler{log: log}
}

func (h *PageHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/error", h.Error)
	e.GET("/*", h.Index)
}

// Index renders the front end for any path; routing happens client side.
func (h *PageHandler) Index(c echo.Context) error {
	slug := c.Request().URL.Path
	h.log.Info("page requested", zap.String("slug", slug))
	return c.Render(http.StatusOK, "index.html", map[string]any{"Slug": slug})
}

func (h *PageHandler) Error(c echo.Context) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = c.Request().Header.Get(echo.HeaderXRequestID)
	}
	h.log.Error("an error occurred while processing the request", zap.String("requestId", requestID))

	c.Response().Header().Set("Cache-Control", "no-store, no-cache")
	c.Response().Header().Set("Pragma", "no-cache")
	return c.Render(http.StatusOK, "error.html", map[string]any{"RequestID": requestID})
}
