package dto

type CreateReservationRequest struct {
	FirstName         string `json:"firstName" validate:"required"`
	LastName          string `json:"lastName" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	TheatreShowDateID int    `json:"theatreShowDateId"`
	AmountOfTickets   int    `json:"amountOfTickets" validate:"required,gt=0"`
}
