package dto

import (
	"time"

	"github.com/cachopreto/webdev-semester-team1/internal/service"
)

const ReservationSuccessMessage = "Reservation successful!"

type ReservationResponse struct {
	Message    string  `json:"message"`
	TotalPrice float64 `json:"totalPrice"`
}

type AvailabilityResponse struct {
	TheatreShowDateID uint      `json:"theatreShowDateId"`
	DateAndTime       time.Time `json:"dateAndTime"`
	Capacity          int       `json:"capacity"`
	Reserved          int       `json:"reserved"`
	Available         int       `json:"available"`
	Price             float64   `json:"price"`
}

type ErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func ToReservationResponse(r *service.ReserveResult) ReservationResponse {
	return ReservationResponse{
		Message:    ReservationSuccessMessage,
		TotalPrice: r.TotalPrice,
	}
}

func ToAvailabilityResponse(a *service.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		TheatreShowDateID: a.ShowDateID,
		DateAndTime:       a.DateAndTime,
		Capacity:          a.Capacity,
		Reserved:          a.Reserved,
		Available:         a.Available,
		Price:             a.Price,
	}
}
