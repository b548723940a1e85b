package item

import (
	"github.com/mlipatov/shareit-backend/internal/comment"
)

// Item is a lendable object offered by its owner.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	// RequestID links the item to the wish request it was created to fulfil.
	RequestID *int64
}

// BookingShort is the minimal booking view embedded in item details.
type BookingShort struct {
	ID       int64
	BookerID int64
}

// Detail is an item enriched with its presentation-only derivations:
// last/next booking (owner's view only) and comments.
type Detail struct {
	Item
	LastBooking *BookingShort
	NextBooking *BookingShort
	Comments    []comment.Comment
}
