package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cachopreto/webdev-semester-team1/internal/models"
	"github.com/cachopreto/webdev-semester-team1/internal/repository"
	"gorm.io/gorm"
)

// ReservationService is the data-access contract used by the booking flow.
// It enforces no business rules.
type ReservationService interface {
	GetShowDateByID(ctx context.Context, id uint) (*models.TheatreShowDate, error)
	TotalReservedTickets(ctx context.Context, showDateID uint) (int, error)
	CreateReservation(ctx context.Context, reservation *models.Reservation) error
	// Atomically runs fn inside one transaction. Show dates read through the
	// service passed to fn are row-locked until the transaction ends.
	Atomically(ctx context.Context, fn func(svc ReservationService) error) error
}

type reservationService struct {
	showDateRepo    repository.ShowDateRepository
	reservationRepo repository.ReservationRepository
	tx              *gorm.DB
}

func NewReservationService(showDateRepo repository.ShowDateRepository, reservationRepo repository.ReservationRepository) ReservationService {
	return &reservationService{
		showDateRepo:    showDateRepo,
		reservationRepo: reservationRepo,
	}
}

func (s *reservationService) GetShowDateByID(ctx context.Context, id uint) (*models.TheatreShowDate, error) {
	var (
		showDate *models.TheatreShowDate
		err      error
	)
	if s.tx != nil {
		showDate, err = s.showDateRepo.FindByIDForUpdate(ctx, s.tx, id)
	} else {
		showDate, err = s.showDateRepo.FindByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowDateNotFound
		}
		return nil, fmt.Errorf("get show date %d: %w", id, err)
	}
	return showDate, nil
}

func (s *reservationService) TotalReservedTickets(ctx context.Context, showDateID uint) (int, error) {
	total, err := s.reservationRepo.SumTicketsByShowDate(ctx, s.conn(), showDateID)
	if err != nil {
		return 0, fmt.Errorf("sum reserved tickets: %w", err)
	}
	return total, nil
}

func (s *reservationService) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	if err := s.reservationRepo.Create(ctx, s.conn(), reservation); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return ErrShowDateNotFound
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (s *reservationService) Atomically(ctx context.Context, fn func(svc ReservationService) error) error {
	if s.tx != nil {
		return fn(s)
	}
	return s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&reservationService{
			showDateRepo:    s.showDateRepo,
			reservationRepo: s.reservationRepo,
			tx:              tx,
		})
	})
}

func (s *reservationService) conn() *gorm.DB {
	if s.tx != nil {
		return s.tx
	}
	return s.reservationRepo.GetDB()
}
