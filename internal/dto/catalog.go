package dto

import (
	"time"

	"github.com/cachopreto/webdev-semester-team1/internal/models"
)

// Catalog messages carry reference data owned by the catalog publisher.

type VenueMessage struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func (m VenueMessage) ToModel() *models.Venue {
	return &models.Venue{ID: m.ID, Name: m.Name, Capacity: m.Capacity}
}

type ShowMessage struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	VenueID     uint    `json:"venueId"`
}

func (m ShowMessage) ToModel() *models.TheatreShow {
	return &models.TheatreShow{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		VenueID:     m.VenueID,
	}
}

type ShowDateMessage struct {
	ID            uint      `json:"id"`
	DateAndTime   time.Time `json:"dateAndTime"`
	TheatreShowID uint      `json:"theatreShowId"`
}

func (m ShowDateMessage) ToModel() *models.TheatreShowDate {
	return &models.TheatreShowDate{
		ID:            m.ID,
		DateAndTime:   m.DateAndTime.UTC(),
		TheatreShowID: m.TheatreShowID,
	}
}
