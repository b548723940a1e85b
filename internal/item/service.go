package item

import (
	"context"
	"strings"
	"time"

	"github.com/mlipatov/shareit-backend/internal/comment"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
	"github.com/mlipatov/shareit-backend/internal/pkg/clock"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
	"github.com/mlipatov/shareit-backend/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// BookingDirectory is the slice of the booking module the item views need.
// Declared here so the item package does not depend on the booking package.
type BookingDirectory interface {
	// ItemSchedule returns the last and next bookings of the item relative to now.
	ItemSchedule(ctx context.Context, itemID int64, now time.Time) (last, next *BookingShort, err error)
	// HasFinished reports whether the user completed a booking of the item before now.
	HasFinished(ctx context.Context, itemID, userID int64, now time.Time) (bool, error)
}

// RequestDirectory answers whether a wish request exists.
type RequestDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, id, callerID int64, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	// GetView returns the item with comments, plus last/next bookings when the
	// viewer is the owner.
	GetView(ctx context.Context, id, viewerID int64) (*Detail, error)
	ListByOwner(ctx context.Context, ownerID int64, page request.ListParams) ([]*Detail, error)
	Search(ctx context.Context, text string, page request.ListParams) ([]*Item, error)
	Delete(ctx context.Context, id, callerID int64) error
	Comment(ctx context.Context, itemID, authorID int64, text string) (*comment.Comment, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)
}

type service struct {
	repo     Repository
	users    user.Service
	comments comment.Repository
	bookings BookingDirectory
	requests RequestDirectory
	clock    clock.Clock
}

func NewService(
	repo Repository,
	users user.Service,
	comments comment.Repository,
	bookings BookingDirectory,
	requests RequestDirectory,
	clk clock.Clock,
) Service {
	return &service{
		repo:     repo,
		users:    users,
		comments: comments,
		bookings: bookings,
		requests: requests,
		clock:    clk,
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.FieldValidation("name", "must not be blank")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperror.FieldValidation("description", "must not be blank")
	}

	if req.RequestID != nil {
		ok, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NotFound("request", *req.RequestID)
		}
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     owner.ID,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) Update(ctx context.Context, id, callerID int64, req UpdateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only the owner may edit; everyone else sees the item as missing.
	if it.OwnerID != callerID {
		return nil, apperror.NotFound("item", id)
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetView(ctx context.Context, id, viewerID int64) (*Detail, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Item: *it}

	if it.OwnerID == viewerID {
		last, next, err := s.bookings.ItemSchedule(ctx, id, s.clock.Now())
		if err != nil {
			return nil, err
		}
		detail.LastBooking = last
		detail.NextBooking = next
	}

	comments, err := s.comments.ListByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Comments = comments

	return detail, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, page request.ListParams) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	limit, offset := page.Window()
	items, err := s.repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	comments, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]comment.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	now := s.clock.Now()
	details := make([]*Detail, 0, len(items))
	for _, it := range items {
		last, next, err := s.bookings.ItemSchedule(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		details = append(details, &Detail{
			Item:        *it,
			LastBooking: last,
			NextBooking: next,
			Comments:    commentsByItem[it.ID],
		})
	}

	return details, nil
}

func (s *service) Search(ctx context.Context, text string, page request.ListParams) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}

	limit, offset := page.Window()
	return s.repo.Search(ctx, text, limit, offset)
}

func (s *service) Delete(ctx context.Context, id, callerID int64) error {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if it.OwnerID != callerID {
		return apperror.NotFound("item", id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Comment(ctx context.Context, itemID, authorID int64, text string) (*comment.Comment, error) {
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	finished, err := s.bookings.HasFinished(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, apperror.FieldValidation("userId", "user has no finished booking of this item")
	}

	c := &comment.Comment{
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
		Created:    now,
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *service) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	return s.repo.ListByRequestIDs(ctx, requestIDs)
}
