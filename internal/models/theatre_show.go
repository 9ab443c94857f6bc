package models

import "time"

type TheatreShow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null;check:chk_theatre_shows_price,price >= 0" json:"price"`
	VenueID     uint      `gorm:"not null;index" json:"venueId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Venue *Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
}

// TheatreShowDate is one scheduled performance of a show.
type TheatreShowDate struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DateAndTime   time.Time `gorm:"not null" json:"dateAndTime"`
	TheatreShowID uint      `gorm:"not null;index" json:"theatreShowId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	TheatreShow *TheatreShow `gorm:"foreignKey:TheatreShowID" json:"theatreShow,omitempty"`
}

// Capacity is the venue capacity, or 0 when the show or venue was not loaded.
func (d *TheatreShowDate) Capacity() int {
	if d.TheatreShow == nil || d.TheatreShow.Venue == nil {
		return 0
	}
	return d.TheatreShow.Venue.Capacity
}

func (d *TheatreShowDate) Price() float64 {
	if d.TheatreShow == nil {
		return 0
	}
	return d.TheatreShow.Price
}
