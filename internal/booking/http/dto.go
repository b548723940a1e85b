package http

import (
	"time"

	"github.com/mlipatov/shareit-backend/internal/booking"
	itemHttp "github.com/mlipatov/shareit-backend/internal/item/http"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
	userHttp "github.com/mlipatov/shareit-backend/internal/user/http"
)

type BookingResponse struct {
	ID     int64            `json:"id"`
	Start  time.Time        `json:"start"`
	End    time.Time        `json:"end"`
	Status string           `json:"status"`
	Booker userHttp.UserTag `json:"booker"`
	Item   itemHttp.ItemTag `json:"item"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		Item:   itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
	}
}

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required,min=1"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// ListBookingsRequest defines query parameters for the booking list endpoints.
// The state token itself is validated by the service.
type ListBookingsRequest struct {
	request.ListParams
	State string `form:"state,default=ALL"`
}
