package repository

import (
	"context"

	"github.com/cachopreto/webdev-semester-team1/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository writes reference data (venues, shows, show dates) that is
// owned by the catalog publisher. Rows keep the publisher's ids.
type CatalogRepository interface {
	UpsertVenue(ctx context.Context, venue *models.Venue) error
	UpsertShow(ctx context.Context, show *models.TheatreShow) error
	UpsertShowDate(ctx context.Context, showDate *models.TheatreShowDate) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) UpsertVenue(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).
		Clauses(onConflictByID("name", "capacity")).
		Create(venue).Error
}

// UpsertShow returns ErrReferenceNotFound when the venue is not known yet.
func (r *catalogRepository) UpsertShow(ctx context.Context, show *models.TheatreShow) error {
	err := r.db.WithContext(ctx).
		Omit("Venue").
		Clauses(onConflictByID("title", "description", "price", "venue_id")).
		Create(show).Error
	return referenceError(err, "venue %d", show.VenueID)
}

// UpsertShowDate returns ErrReferenceNotFound when the show is not known yet.
func (r *catalogRepository) UpsertShowDate(ctx context.Context, showDate *models.TheatreShowDate) error {
	err := r.db.WithContext(ctx).
		Omit("TheatreShow").
		Clauses(onConflictByID("date_and_time", "theatre_show_id")).
		Create(showDate).Error
	return referenceError(err, "show %d", showDate.TheatreShowID)
}

func onConflictByID(columns ...string) clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}
}
