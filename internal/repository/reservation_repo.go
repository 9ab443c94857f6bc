package repository

import (
	"context"

	"github.com/cachopreto/webdev-semester-team1/internal/models"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	SumTicketsByShowDate(ctx context.Context, tx *gorm.DB, showDateID uint) (int, error)
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

// Create inserts the reservation and its embedded customer. The show date is
// referenced by id only and never written.
func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	err := tx.WithContext(ctx).
		Omit("TheatreShowDate").
		Create(reservation).Error
	return referenceError(err, "show date %d", reservation.TheatreShowDateID)
}

func (r *reservationRepository) SumTicketsByShowDate(ctx context.Context, tx *gorm.DB, showDateID uint) (int, error) {
	var total int64
	err := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("theatre_show_date_id = ?", showDateID).
		Select("COALESCE(SUM(amount_of_tickets), 0)").
		Scan(&total).Error
	return int(total), err
}
