package http

import (
	"time"

	"github.com/mlipatov/shareit-backend/internal/comment"
	"github.com/mlipatov/shareit-backend/internal/item"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
)

// ItemTag is a brief representation of an item embedded in other responses.
type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingShortResponse is the owner-only last/next booking view.
type BookingShortResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(c *comment.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.Created,
	}
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []CommentResponse     `json:"comments"`
}

func NewItemDetailResponse(d *item.Detail) ItemDetailResponse {
	resp := ItemDetailResponse{
		ItemResponse: NewItemResponse(&d.Item),
		Comments:     make([]CommentResponse, 0, len(d.Comments)),
	}
	if d.LastBooking != nil {
		resp.LastBooking = &BookingShortResponse{ID: d.LastBooking.ID, BookerID: d.LastBooking.BookerID}
	}
	if d.NextBooking != nil {
		resp.NextBooking = &BookingShortResponse{ID: d.NextBooking.ID, BookerID: d.NextBooking.BookerID}
	}
	for i := range d.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(&d.Comments[i]))
	}
	return resp
}

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// SearchItemsRequest defines query parameters for text search.
type SearchItemsRequest struct {
	request.ListParams
	Text string `form:"text"`
}
