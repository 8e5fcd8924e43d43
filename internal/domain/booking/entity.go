package booking

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the canonical wire format for all booking dates
const DateLayout = "2006-01-02"

// Status represents booking lifecycle state (matches the bookings.status
// check constraint). Cancelled is terminal; confirmation is an
// administrative action.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Live reports whether the booking still occupies its dates
func (s Status) Live() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking represents a reservation of one room for a half-open date range
// [CheckIn, CheckOut): the check-out day itself is not occupied.
type Booking struct {
	ID         uuid.UUID `db:"id"`
	RoomID     uuid.UUID `db:"room_id"`
	UserID     uuid.UUID `db:"user_id"`
	CheckIn    time.Time `db:"check_in_date"`
	CheckOut   time.Time `db:"check_out_date"`
	Status     Status    `db:"status"`
	TotalPrice float64   `db:"total_price"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Nights returns the number of billed hotel nights
func (b *Booking) Nights() int {
	return NightsBetween(b.CheckIn, b.CheckOut)
}

// NightsBetween counts whole nights between two dates
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// DateOf truncates a timestamp to midnight UTC, the precision every
// booking comparison runs at.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a canonical YYYY-MM-DD string
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
