package booking

import "time"

// Next returns the upcoming booking with the earliest start among those that
// start after now and were not rejected, or nil. Used for the owner's item
// detail view; computed on demand, never stored.
func Next(bookings []*Booking, now time.Time) *Booking {
	var next *Booking
	for _, b := range bookings {
		if !b.Start.After(now) || b.Status == StatusRejected {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			next = b
		}
	}
	return next
}

// Last returns the booking with the latest start among those already finished
// or currently running, or nil.
func Last(bookings []*Booking, now time.Time) *Booking {
	var last *Booking
	for _, b := range bookings {
		running := b.Start.Before(now) && b.End.After(now)
		if !b.End.Before(now) && !running {
			continue
		}
		if last == nil || b.Start.After(last.Start) {
			last = b
		}
	}
	return last
}
