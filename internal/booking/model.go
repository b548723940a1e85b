package booking

import (
	"time"

	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

// Validation failures shared between the service checks and the
// transactional guards in the repository.
var (
	ErrIntervalTaken  = apperror.FieldValidation("start | end", "item is already booked for these dates")
	ErrInvalidTime    = apperror.FieldValidation("start | end", "time range is invalid")
	ErrAlreadyDecided = apperror.FieldValidation("bookingId", "booking is already approved or rejected")
	ErrItemUnavail    = apperror.FieldValidation("itemId", "item is unavailable for booking")
)

// Status is the lifecycle state of a booking. WAITING is the sole initial
// state; APPROVED and REJECTED are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a reservation of an item for a time interval.
// ItemName, ItemOwnerID and BookerName are denormalized from the referenced
// rows when reading.
type Booking struct {
	ID          int64
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
}

// Overlaps reports whether the candidate interval [start, end] collides with
// this booking. Two intervals are clear of each other only when one ends
// strictly before the other begins; touching endpoints count as a conflict.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !(end.Before(b.Start) || start.After(b.End))
}
