package comment

import "time"

// Comment is feedback left on an item by a user who finished borrowing it.
type Comment struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	Created    time.Time
}
