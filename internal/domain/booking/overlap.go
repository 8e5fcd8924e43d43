package booking

import "time"

// Overlaps reports whether the half-open date ranges [aIn, aOut) and
// [bIn, bOut) intersect. The rule is strict on both edges, so a range
// starting exactly on another's check-out date does not collide:
// back-to-back bookings are legal.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// HasConflict reports whether the candidate range collides with any live
// booking in the snapshot. Cancelled bookings never count.
func HasConflict(bookings []*Booking, checkIn, checkOut time.Time) bool {
	for _, b := range bookings {
		if !b.Status.Live() {
			continue
		}
		if Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			return true
		}
	}
	return false
}
