package repository

import (
	"context"

	"github.com/cachopreto/webdev-semester-team1/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShowDateRepository interface {
	FindByID(ctx context.Context, id uint) (*models.TheatreShowDate, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TheatreShowDate, error)
}

type showDateRepository struct {
	db *gorm.DB
}

func NewShowDateRepository(db *gorm.DB) ShowDateRepository {
	return &showDateRepository{db: db}
}

// FindByID loads the show date together with its show and venue.
func (r *showDateRepository) FindByID(ctx context.Context, id uint) (*models.TheatreShowDate, error) {
	var showDate models.TheatreShowDate
	if err := r.db.WithContext(ctx).
		Preload("TheatreShow.Venue").
		First(&showDate, id).Error; err != nil {
		return nil, err
	}
	return &showDate, nil
}

// FindByIDForUpdate acquires a row-level lock on the show date within the given transaction.
// Concurrent reservations for the same show date queue up behind it.
func (r *showDateRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TheatreShowDate, error) {
	var showDate models.TheatreShowDate
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("TheatreShow.Venue").
		First(&showDate, id).Error; err != nil {
		return nil, err
	}
	return &showDate, nil
}
