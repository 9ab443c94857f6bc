package service

import (
	"errors"
	"fmt"
)

var (
	ErrShowDateNotFound = errors.New("show date not found")
	ErrPastShow         = errors.New("cannot reserve tickets for a past show")
	ErrNotEnoughTickets = errors.New("not enough tickets available")
)

// NotEnoughTicketsError carries the availability seen when a reservation was refused.
// It matches ErrNotEnoughTickets with errors.Is.
type NotEnoughTicketsError struct {
	Requested int
	Available int
}

func (e *NotEnoughTicketsError) Error() string {
	return fmt.Sprintf("%s: requested %d, %d left", ErrNotEnoughTickets, e.Requested, e.Remaining())
}

func (e *NotEnoughTicketsError) Is(target error) bool {
	return target == ErrNotEnoughTickets
}

// Remaining never reports a negative count, even for an already overbooked show date.
func (e *NotEnoughTicketsError) Remaining() int {
	return max(0, e.Available)
}
