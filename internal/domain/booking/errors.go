package booking

import "errors"

var (
	ErrInvalidRange     = errors.New("check-in date must be before check-out date")
	ErrInvalidDate      = errors.New("dates must be in YYYY-MM-DD format")
	ErrPastCheckIn      = errors.New("check-in date cannot be in the past")
	ErrRoomUnavailable  = errors.New("room not found or not available for booking")
	ErrDateConflict     = errors.New("room is already booked for the selected dates")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)
