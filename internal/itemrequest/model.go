package itemrequest

import (
	"time"

	"github.com/mlipatov/shareit-backend/internal/item"
)

// Request is a wish for an item that does not exist yet. Owners may later
// create items that reference it.
type Request struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time
}

// Detail is a request together with the items created to answer it.
type Detail struct {
	Request
	Items []*item.Item
}
