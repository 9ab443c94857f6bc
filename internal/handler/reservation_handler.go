package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cachopreto/webdev-semester-team1/internal/dto"
	"github.com/cachopreto/webdev-semester-team1/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	MsgInvalidRequest   = "Invalid request."
	MsgShowDateNotFound = "Show date not found."
	MsgPastShow         = "You cannot reserve tickets for a past show."
)

type ReservationHandler struct {
	booker service.ReservationBooker
	log    *zap.Logger
}

func NewReservationHandler(booker service.ReservationBooker, log *zap.Logger) *ReservationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReservationHandler{booker: booker, log: log}
}

// RegisterRoutes mounts the reservation API. reserveMw only wraps the POST route.
func (h *ReservationHandler) RegisterRoutes(e *echo.Echo, reserveMw ...echo.MiddlewareFunc) {
	api := e.Group("/api/v1")
	api.POST("/reservations", h.CreateReservation, reserveMw...)
	api.GET("/showdates/:id/availability", h.GetAvailability)
}

// CreateReservation books tickets for one show date. An unknown show date,
// including a missing or non-positive id, is a 404. The "Only N left" count never
// goes below zero, even when a show date is already overbooked.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		h.log.Warn("invalid reservation request body", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		h.log.Warn("invalid reservation request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}

	res, err := h.booker.Reserve(c.Request().Context(), service.ReserveInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		TheatreShowDateID: req.TheatreShowDateID,
		AmountOfTickets:   req.AmountOfTickets,
	})
	if err != nil {
		var notEnough *service.NotEnoughTicketsError
		switch {
		case errors.Is(err, service.ErrShowDateNotFound):
			return echo.NewHTTPError(http.StatusNotFound, MsgShowDateNotFound)
		case errors.Is(err, service.ErrPastShow):
			return echo.NewHTTPError(http.StatusBadRequest, MsgPastShow)
		case errors.As(err, &notEnough):
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Not enough tickets available. Only %d left.", notEnough.Remaining()))
		default:
			return fmt.Errorf("reserve tickets: %w", err)
		}
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

func (h *ReservationHandler) GetAvailability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid show date id")
	}

	a, err := h.booker.Availability(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrShowDateNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, MsgShowDateNotFound)
		}
		return fmt.Errorf("availability: %w", err)
	}

	return c.JSON(http.StatusOK, dto.ToAvailabilityResponse(a))
}
