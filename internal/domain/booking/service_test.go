package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stayinn/stayinn-api/internal/domain/room"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// fakeRepo is an in-memory booking store that honors the same
// check-then-insert contract as the SQL repository.
type fakeRepo struct {
	bookings map[uuid.UUID]*Booking
	rooms    map[uuid.UUID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings: make(map[uuid.UUID]*Booking),
		rooms:    make(map[uuid.UUID]bool),
	}
}

func (r *fakeRepo) CreateWithAvailabilityCheck(_ context.Context, b *Booking) error {
	if !r.rooms[b.RoomID] {
		return ErrRoomUnavailable
	}
	for _, existing := range r.bookings {
		if existing.RoomID != b.RoomID || !existing.Status.Live() {
			continue
		}
		if Overlaps(b.CheckIn, b.CheckOut, existing.CheckIn, existing.CheckOut) {
			return ErrDateConflict
		}
	}
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListLiveByRoom(_ context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID && b.Status.Live() && Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("missing booking")
	}
	b.Status = status
	return nil
}

func (r *fakeRepo) BookedRoomIDs(_ context.Context, checkIn, checkOut time.Time) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, b := range r.bookings {
		if !b.Status.Live() || !Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			continue
		}
		if _, ok := seen[b.RoomID]; !ok {
			seen[b.RoomID] = struct{}{}
			out = append(out, b.RoomID)
		}
	}
	return out, nil
}

type fakeDirectory struct {
	rooms map[uuid.UUID]*room.Room
}

func (d *fakeDirectory) GetByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	return d.rooms[id], nil
}

func (d *fakeDirectory) ListAvailableFlagged(_ context.Context) ([]*room.Room, error) {
	var out []*room.Room
	for _, rm := range d.rooms {
		if rm.IsAvailable {
			out = append(out, rm)
		}
	}
	return out, nil
}

func newTestService(t *testing.T, today string) (*Service, *fakeRepo, *fakeDirectory) {
	t.Helper()
	repo := newFakeRepo()
	dir := &fakeDirectory{rooms: make(map[uuid.UUID]*room.Room)}
	svc := NewService(repo, dir, fixedClock{now: d(today)})
	return svc, repo, dir
}

func addRoom(repo *fakeRepo, dir *fakeDirectory, price float64, available bool) *room.Room {
	rm := &room.Room{
		ID:            uuid.New(),
		Name:          "Test Room",
		RoomNumber:    "101",
		RoomType:      "double",
		PricePerNight: price,
		Capacity:      2,
		IsAvailable:   available,
	}
	dir.rooms[rm.ID] = rm
	repo.rooms[rm.ID] = true
	return rm
}

func TestCreateBooking(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	rm := addRoom(repo, dir, 100, true)
	userID := uuid.New()

	b, err := svc.Create(context.Background(), userID, rm.ID, d("2026-09-10"), d("2026-09-13"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if b.Status != StatusPending {
		t.Errorf("expected pending status, got %s", b.Status)
	}
	if b.Nights() != 3 {
		t.Errorf("expected 3 nights, got %d", b.Nights())
	}
	if b.TotalPrice != 300 {
		t.Errorf("expected total 300, got %v", b.TotalPrice)
	}
}

func TestCreateBookingPriceFrozenAtCreation(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	rm := addRoom(repo, dir, 100, true)

	b, err := svc.Create(context.Background(), uuid.New(), rm.ID, d("2026-09-10"), d("2026-09-12"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rm.PricePerNight = 250

	got, err := svc.GetForUser(context.Background(), b.UserID, b.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.TotalPrice != 200 {
		t.Errorf("total price changed after rate update: got %v, want 200", got.TotalPrice)
	}
}

func TestCreateBookingInvalidRange(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	rm := addRoom(repo, dir, 100, true)

	cases := []struct {
		name    string
		in, out string
	}{
		{"check-out before check-in", "2026-09-13", "2026-09-10"},
		{"zero nights", "2026-09-10", "2026-09-10"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), rm.ID, d(tt.in), d(tt.out))
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestCreateBookingPastCheckIn(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-10")
	rm := addRoom(repo, dir, 100, true)

	_, err := svc.Create(context.Background(), uuid.New(), rm.ID, d("2026-09-09"), d("2026-09-12"))
	if !errors.Is(err, ErrPastCheckIn) {
		t.Errorf("expected ErrPastCheckIn, got %v", err)
	}

	// Checking in on the current day is allowed
	if _, err := svc.Create(context.Background(), uuid.New(), rm.ID, d("2026-09-10"), d("2026-09-12")); err != nil {
		t.Errorf("same-day check-in should succeed, got %v", err)
	}
}

func TestCreateBookingRangeBeatsPastCheckIn(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-10")
	rm := addRoom(repo, dir, 100, true)

	// Both preconditions fail; the range error wins.
	_, err := svc.Create(context.Background(), uuid.New(), rm.ID, d("2026-09-05"), d("2026-09-03"))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestCreateBookingRoomUnavailable(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	hidden := addRoom(repo, dir, 100, false)

	_, err := svc.Create(context.Background(), uuid.New(), hidden.ID, d("2026-09-10"), d("2026-09-12"))
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Errorf("expected ErrRoomUnavailable for hidden room, got %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.New(), uuid.New(), d("2026-09-10"), d("2026-09-12"))
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Errorf("expected ErrRoomUnavailable for unknown room, got %v", err)
	}
}

func TestCreateBookingDateConflict(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	rm := addRoom(repo, dir, 100, true)

	if _, err := svc.Create(context.Background(), uuid.New(), rm.ID, d("2026-09-10"), d("2026-09-15")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := svc.Create(context.Background(), uuid.New(), rm.ID, d("2026-09-12"), d("2026-09-14"))
	if !errors.Is(err, ErrDateConflict) {
		t.Errorf("expected ErrDateConflict, got %v", err)
	}
}

func TestCreateBookingBackToBack(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	rm := addRoom(repo, dir, 100, true)

	if _, err := svc.Create(context.Background(), uuid.New(), rm.ID, d("2026-09-10"), d("2026-09-15")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// New guest checks in on the previous guest's check-out day
	if _, err := svc.Create(context.Background(), uuid.New(), rm.ID, d("2026-09-15"), d("2026-09-18")); err != nil {
		t.Errorf("back-to-back booking should succeed, got %v", err)
	}
}

func TestCancelVacatesDates(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	rm := addRoom(repo, dir, 100, true)
	userID := uuid.New()

	b, err := svc.Create(context.Background(), userID, rm.ID, d("2026-09-10"), d("2026-09-15"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), userID, b.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("expected cancelled status, got %s", cancelled.Status)
	}

	// Dates are free again
	if _, err := svc.Create(context.Background(), uuid.New(), rm.ID, d("2026-09-10"), d("2026-09-15")); err != nil {
		t.Errorf("rebooking cancelled dates should succeed, got %v", err)
	}
}

func TestCancelTwice(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	rm := addRoom(repo, dir, 100, true)
	userID := uuid.New()

	b, _ := svc.Create(context.Background(), userID, rm.ID, d("2026-09-10"), d("2026-09-15"))
	if _, err := svc.Cancel(context.Background(), userID, b.ID); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}

	_, err := svc.Cancel(context.Background(), userID, b.ID)
	if !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestCancelHidesOtherUsersBookings(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	rm := addRoom(repo, dir, 100, true)
	owner := uuid.New()

	b, _ := svc.Create(context.Background(), owner, rm.ID, d("2026-09-10"), d("2026-09-15"))

	_, err := svc.Cancel(context.Background(), uuid.New(), b.ID)
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound for foreign booking, got %v", err)
	}

	got, err := svc.GetForUser(context.Background(), owner, b.ID)
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if got.Status != StatusPending {
		t.Errorf("foreign cancel attempt changed status to %s", got.Status)
	}
}

func TestConfirmBooking(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	rm := addRoom(repo, dir, 100, true)
	userID := uuid.New()

	b, _ := svc.Create(context.Background(), userID, rm.ID, d("2026-09-10"), d("2026-09-15"))

	confirmed, err := svc.Confirm(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != StatusConfirmed {
		t.Errorf("expected confirmed status, got %s", confirmed.Status)
	}

	// Confirmed bookings still occupy their dates
	_, err = svc.Create(context.Background(), uuid.New(), rm.ID, d("2026-09-12"), d("2026-09-14"))
	if !errors.Is(err, ErrDateConflict) {
		t.Errorf("expected ErrDateConflict against confirmed booking, got %v", err)
	}
}

func TestListAvailableRooms(t *testing.T) {
	svc, repo, dir := newTestService(t, "2026-09-01")
	free := addRoom(repo, dir, 100, true)
	taken := addRoom(repo, dir, 150, true)
	hidden := addRoom(repo, dir, 200, false)

	if _, err := svc.Create(context.Background(), uuid.New(), taken.ID, d("2026-09-10"), d("2026-09-15")); err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	rooms, err := svc.ListAvailableRooms(context.Background(), d("2026-09-12"), d("2026-09-14"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(rooms) != 1 || rooms[0].ID != free.ID {
		t.Fatalf("expected only the free room, got %d rooms", len(rooms))
	}
	for _, rm := range rooms {
		if rm.ID == hidden.ID {
			t.Error("hidden room leaked into availability results")
		}
	}

	// Back-to-back dates do not exclude the booked room
	rooms, err = svc.ListAvailableRooms(context.Background(), d("2026-09-15"), d("2026-09-18"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Errorf("expected 2 rooms for back-to-back range, got %d", len(rooms))
	}
}

func TestListAvailableRoomsInvalidRange(t *testing.T) {
	svc, _, _ := newTestService(t, "2026-09-01")

	_, err := svc.ListAvailableRooms(context.Background(), d("2026-09-15"), d("2026-09-10"))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}
