package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mlipatov/shareit-backend/internal/booking"
	"github.com/mlipatov/shareit-backend/internal/identity"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
	"github.com/mlipatov/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), identity.UserID(c), booking.CreateRequest{
		ItemID: body.ItemID,
		Start:  body.Start,
		End:    body.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved query parameter is required"})
		return
	}

	b, err := h.service.Update(c.Request.Context(), params.ID, identity.UserID(c), approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), params.ID, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListByBooker(c *gin.Context) {
	h.list(c, h.service.ListByBooker)
}

func (h *Handler) ListByOwner(c *gin.Context) {
	h.list(c, h.service.ListByOwner)
}

type listFunc func(ctx context.Context, userID int64, stateToken string, page request.ListParams) ([]*booking.Booking, error)

func (h *Handler) list(c *gin.Context, fetch listFunc) {
	var params ListBookingsRequest
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	bookings, err := fetch(c.Request.Context(), identity.UserID(c), params.State, params.ListParams)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, NewBookingResponse(b))
	}

	c.JSON(http.StatusOK, items)
}
