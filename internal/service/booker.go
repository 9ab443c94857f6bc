package service

import (
	"context"
	"errors"
	"time"

	"github.com/cachopreto/webdev-semester-team1/internal/clock"
	"github.com/cachopreto/webdev-semester-team1/internal/models"
	"go.uber.org/zap"
)

const RoutingKeyReservationCreated = "reservation.created"

// EventPublisher is satisfied by *rabbitmq.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// ReserveInput is a shape-validated reservation request.
type ReserveInput struct {
	FirstName         string
	LastName          string
	Email             string
	TheatreShowDateID int
	AmountOfTickets   int
}

type ReserveResult struct {
	ReservationID uint
	TotalPrice    float64
}

type Availability struct {
	ShowDateID  uint
	DateAndTime time.Time
	Capacity    int
	Reserved    int
	Available   int
	Price       float64
}

// ReservationCreatedEvent is published after a reservation has been committed.
type ReservationCreatedEvent struct {
	ReservationID     uint      `json:"reservationId"`
	TheatreShowDateID uint      `json:"theatreShowDateId"`
	TheatreShowID     uint      `json:"theatreShowId"`
	DateAndTime       time.Time `json:"dateAndTime"`
	AmountOfTickets   int       `json:"amountOfTickets"`
	TotalPrice        float64   `json:"totalPrice"`
	CustomerEmail     string    `json:"customerEmail"`
	CreatedAt         time.Time `json:"createdAt"`
}

type ReservationBooker interface {
	Reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error)
	Availability(ctx context.Context, showDateID uint) (*Availability, error)
}

type booker struct {
	svc       ReservationService
	clock     clock.Clock
	publisher EventPublisher
	log       *zap.Logger
}

// NewBooker wires the reservation rules on top of svc. publisher and log may be nil.
func NewBooker(svc ReservationService, clk clock.Clock, publisher EventPublisher, log *zap.Logger) ReservationBooker {
	if log == nil {
		log = zap.NewNop()
	}
	return &booker{
		svc:       svc,
		clock:     clk,
		publisher: publisher,
		log:       log,
	}
}

func (b *booker) Reserve(ctx context.Context, in ReserveInput) (*ReserveResult, error) {
	log := b.log.With(zap.Int("theatreShowDateId", in.TheatreShowDateID))
	log.Info("received reservation request", zap.Int("amountOfTickets", in.AmountOfTickets))

	var (
		result      *ReserveResult
		showDate    *models.TheatreShowDate
		reservation *models.Reservation
	)

	err := b.svc.Atomically(ctx, func(svc ReservationService) error {
		// 1. Lock the show date row
		sd, err := lookupShowDate(ctx, svc, in.TheatreShowDateID)
		if err != nil {
			if errors.Is(err, ErrShowDateNotFound) {
				log.Warn("show date not found")
			}
			return err
		}

		// 2. Only future performances can be booked
		if !sd.DateAndTime.After(b.clock.Now()) {
			log.Warn("attempt to reserve tickets for a past show", zap.Time("dateAndTime", sd.DateAndTime))
			return ErrPastShow
		}

		// 3. Capacity accounting
		reserved, err := svc.TotalReservedTickets(ctx, sd.ID)
		if err != nil {
			return err
		}
		available := sd.Capacity() - reserved
		log.Info("computed availability", zap.Int("reserved", reserved), zap.Int("available", available))

		if available < in.AmountOfTickets {
			log.Warn("not enough tickets available",
				zap.Int("requested", in.AmountOfTickets), zap.Int("available", available))
			return &NotEnoughTicketsError{Requested: in.AmountOfTickets, Available: available}
		}

		// 4. Price and persist
		totalPrice := float64(in.AmountOfTickets) * sd.Price()
		log.Info("total price calculated", zap.Float64("totalPrice", totalPrice))

		r := &models.Reservation{
			AmountOfTickets:   in.AmountOfTickets,
			Used:              false,
			TheatreShowDateID: sd.ID,
			Customer: &models.Customer{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
			},
		}
		if err := svc.CreateReservation(ctx, r); err != nil {
			return err
		}

		showDate, reservation = sd, r
		result = &ReserveResult{ReservationID: r.ID, TotalPrice: totalPrice}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("reservation created",
		zap.Uint("reservationId", result.ReservationID),
		zap.String("firstName", in.FirstName),
		zap.String("lastName", in.LastName))

	b.publishCreated(ctx, showDate, reservation, result.TotalPrice)
	return result, nil
}

func (b *booker) Availability(ctx context.Context, showDateID uint) (*Availability, error) {
	sd, err := b.svc.GetShowDateByID(ctx, showDateID)
	if err != nil {
		return nil, err
	}
	reserved, err := b.svc.TotalReservedTickets(ctx, sd.ID)
	if err != nil {
		return nil, err
	}
	return &Availability{
		ShowDateID:  sd.ID,
		DateAndTime: sd.DateAndTime,
		Capacity:    sd.Capacity(),
		Reserved:    reserved,
		Available:   max(0, sd.Capacity()-reserved),
		Price:       sd.Price(),
	}, nil
}

// publishCreated never fails the reservation: it is already committed.
func (b *booker) publishCreated(ctx context.Context, sd *models.TheatreShowDate, r *models.Reservation, totalPrice float64) {
	if b.publisher == nil {
		return
	}
	event := ReservationCreatedEvent{
		ReservationID:     r.ID,
		TheatreShowDateID: sd.ID,
		TheatreShowID:     sd.TheatreShowID,
		DateAndTime:       sd.DateAndTime,
		AmountOfTickets:   r.AmountOfTickets,
		TotalPrice:        totalPrice,
		CustomerEmail:     r.Customer.Email,
		CreatedAt:         r.CreatedAt,
	}
	if err := b.publisher.Publish(ctx, RoutingKeyReservationCreated, event); err != nil {
		b.log.Error("failed to publish reservation event",
			zap.Uint("reservationId", r.ID), zap.Error(err))
	}
}

// lookupShowDate treats ids that can never exist (zero or negative) as unknown
// without querying the store.
func lookupShowDate(ctx context.Context, svc ReservationService, id int) (*models.TheatreShowDate, error) {
	if id <= 0 {
		return nil, ErrShowDateNotFound
	}
	return svc.GetShowDateByID(ctx, uint(id))
}
