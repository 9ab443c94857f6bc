package models

import "time"

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `gorm:"not null" json:"lastName"`
	Email     string    `gorm:"not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Reservation struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	AmountOfTickets   int       `gorm:"not null;check:chk_reservations_amount,amount_of_tickets > 0" json:"amountOfTickets"`
	Used              bool      `gorm:"not null;default:false" json:"used"`
	TheatreShowDateID uint      `gorm:"not null;index" json:"theatreShowDateId"`
	CustomerID        uint      `gorm:"not null" json:"customerId"`
	CreatedAt         time.Time `json:"createdAt"`

	TheatreShowDate *TheatreShowDate `gorm:"foreignKey:TheatreShowDateID" json:"theatreShowDate,omitempty"`
	Customer        *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}
