package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func d(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                 string
		aIn, aOut, bIn, bOut string
		want                 bool
	}{
		{"identical ranges", "2026-09-10", "2026-09-15", "2026-09-10", "2026-09-15", true},
		{"fully inside", "2026-09-11", "2026-09-13", "2026-09-10", "2026-09-15", true},
		{"fully containing", "2026-09-08", "2026-09-20", "2026-09-10", "2026-09-15", true},
		{"overlapping start", "2026-09-08", "2026-09-12", "2026-09-10", "2026-09-15", true},
		{"overlapping end", "2026-09-13", "2026-09-18", "2026-09-10", "2026-09-15", true},
		{"single shared night", "2026-09-14", "2026-09-15", "2026-09-10", "2026-09-15", true},
		{"back to back after", "2026-09-15", "2026-09-18", "2026-09-10", "2026-09-15", false},
		{"back to back before", "2026-09-08", "2026-09-10", "2026-09-10", "2026-09-15", false},
		{"disjoint after", "2026-09-20", "2026-09-22", "2026-09-10", "2026-09-15", false},
		{"disjoint before", "2026-09-01", "2026-09-05", "2026-09-10", "2026-09-15", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(d(tt.aIn), d(tt.aOut), d(tt.bIn), d(tt.bOut))
			if got != tt.want {
				t.Errorf("Overlaps(%s..%s, %s..%s) = %v, want %v", tt.aIn, tt.aOut, tt.bIn, tt.bOut, got, tt.want)
			}

			// The predicate is symmetric
			rev := Overlaps(d(tt.bIn), d(tt.bOut), d(tt.aIn), d(tt.aOut))
			if rev != tt.want {
				t.Errorf("Overlaps reversed = %v, want %v", rev, tt.want)
			}
		})
	}
}

func TestHasConflictSkipsCancelled(t *testing.T) {
	roomID := uuid.New()
	bookings := []*Booking{
		{ID: uuid.New(), RoomID: roomID, CheckIn: d("2026-09-10"), CheckOut: d("2026-09-15"), Status: StatusCancelled},
	}

	if HasConflict(bookings, d("2026-09-12"), d("2026-09-14")) {
		t.Error("cancelled booking should not block the range")
	}

	bookings = append(bookings, &Booking{
		ID: uuid.New(), RoomID: roomID,
		CheckIn: d("2026-09-10"), CheckOut: d("2026-09-15"), Status: StatusConfirmed,
	})

	if !HasConflict(bookings, d("2026-09-12"), d("2026-09-14")) {
		t.Error("confirmed booking should block the range")
	}
}

func TestNightsBetween(t *testing.T) {
	if n := NightsBetween(d("2026-09-10"), d("2026-09-13")); n != 3 {
		t.Errorf("expected 3 nights, got %d", n)
	}
	if n := NightsBetween(d("2026-09-10"), d("2026-09-11")); n != 1 {
		t.Errorf("expected 1 night, got %d", n)
	}
}

func TestDateOfTruncates(t *testing.T) {
	ts := time.Date(2026, 9, 10, 17, 45, 3, 0, time.UTC)
	got := DateOf(ts)
	if !got.Equal(d("2026-09-10")) {
		t.Errorf("expected 2026-09-10T00:00:00Z, got %v", got)
	}
}

func TestParseDateRejectsBadFormat(t *testing.T) {
	for _, s := range []string{"10-09-2026", "2026/09/10", "2026-13-01", "not-a-date", ""} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) accepted invalid input", s)
		}
	}
	if _, err := ParseDate("2026-09-10"); err != nil {
		t.Errorf("ParseDate rejected valid input: %v", err)
	}
}
