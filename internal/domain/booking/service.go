package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stayinn/stayinn-api/internal/domain/room"
)

// RoomDirectory is the read surface the booking core needs from the room
// domain. room.Repository satisfies it.
type RoomDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	ListAvailableFlagged(ctx context.Context) ([]*room.Room, error)
}

// Service is the booking lifecycle controller. It certifies availability
// before any write and owns the only permitted status transition, cancel.
type Service struct {
	repo  Repository
	rooms RoomDirectory
	clock Clock
}

// NewService creates booking service; a nil clock means the wall clock
func NewService(repo Repository, rooms RoomDirectory, clock Clock) *Service {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Service{repo: repo, rooms: rooms, clock: clock}
}

// Create books a room for [checkIn, checkOut). Preconditions run in order
// and each failure short-circuits before any write: valid range, check-in
// not in the past, room offered for booking, no conflicting live booking.
// The total price is fixed from the room's current nightly rate and never
// recomputed afterwards.
func (s *Service) Create(ctx context.Context, userID, roomID uuid.UUID, checkIn, checkOut time.Time) (*Booking, error) {
	checkIn = DateOf(checkIn)
	checkOut = DateOf(checkOut)

	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidRange
	}

	today := DateOf(s.clock.Now())
	if checkIn.Before(today) {
		return nil, ErrPastCheckIn
	}

	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if rm == nil || !rm.IsAvailable {
		return nil, ErrRoomUnavailable
	}

	// Fast pre-check on a snapshot; the ledger repeats it under the room
	// lock, which is the authoritative answer.
	existing, err := s.repo.ListLiveByRoom(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if HasConflict(existing, checkIn, checkOut) {
		return nil, ErrDateConflict
	}

	now := s.clock.Now()
	b := &Booking{
		ID:         uuid.New(),
		RoomID:     roomID,
		UserID:     userID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     StatusPending,
		TotalPrice: float64(NightsBetween(checkIn, checkOut)) * rm.PricePerNight,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateWithAvailabilityCheck(ctx, b); err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("room_id", roomID.String()).
		Str("check_in", checkIn.Format(DateLayout)).
		Str("check_out", checkOut.Format(DateLayout)).
		Float64("total_price", b.TotalPrice).
		Msg("Booking created")

	return b, nil
}

// Cancel transitions a booking the caller owns to cancelled. A missing
// booking and someone else's booking report the same ErrBookingNotFound,
// so callers cannot probe for other users' bookings.
func (s *Service) Cancel(ctx context.Context, userID, bookingID uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	if b.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled

	log.Info().
		Str("booking_id", bookingID.String()).
		Str("room_id", b.RoomID.String()).
		Msg("Booking cancelled")

	return b, nil
}

// Confirm marks a pending booking confirmed (admin action, outside the
// guest-facing lifecycle). Confirming twice is a no-op.
func (s *Service) Confirm(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if b.Status == StatusConfirmed {
		return b, nil
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, StatusConfirmed); err != nil {
		return nil, err
	}
	b.Status = StatusConfirmed
	return b, nil
}

// ListForUser returns the caller's bookings, newest first
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetForUser returns one booking the caller owns
func (s *Service) GetForUser(ctx context.Context, userID, bookingID uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// ListAvailableRooms computes the rooms free for [checkIn, checkOut):
// every room offered for booking minus those with a conflicting live
// booking. Order follows the directory (room number), so results are
// deterministic.
func (s *Service) ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]*room.Room, error) {
	checkIn = DateOf(checkIn)
	checkOut = DateOf(checkOut)

	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidRange
	}

	rooms, err := s.rooms.ListAvailableFlagged(ctx)
	if err != nil {
		return nil, err
	}

	bookedIDs, err := s.repo.BookedRoomIDs(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	booked := make(map[uuid.UUID]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	available := make([]*room.Room, 0, len(rooms))
	for _, rm := range rooms {
		if _, taken := booked[rm.ID]; !taken {
			available = append(available, rm)
		}
	}
	return available, nil
}
