package http

import (
	"time"

	itemHttp "github.com/mlipatov/shareit-backend/internal/item/http"
	"github.com/mlipatov/shareit-backend/internal/itemrequest"
)

type RequestResponse struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description"`
	Created     time.Time               `json:"created"`
	Items       []itemHttp.ItemResponse `json:"items"`
}

func NewRequestResponse(d *itemrequest.Detail) RequestResponse {
	items := make([]itemHttp.ItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, itemHttp.NewItemResponse(it))
	}

	return RequestResponse{
		ID:          d.ID,
		Description: d.Description,
		Created:     d.Created,
		Items:       items,
	}
}

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}
