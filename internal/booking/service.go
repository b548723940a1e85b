package booking

import (
	"context"
	"time"

	"github.com/mlipatov/shareit-backend/internal/item"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
	"github.com/mlipatov/shareit-backend/internal/pkg/clock"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
	"github.com/mlipatov/shareit-backend/internal/user"
)

type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Service is the booking lifecycle manager: it validates creation against
// item availability, ownership and temporal conflicts, and guards the
// WAITING -> APPROVED/REJECTED transition.
type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	Update(ctx context.Context, bookingID, ownerID int64, approved bool) (*Booking, error)
	GetByID(ctx context.Context, bookingID, requesterID int64) (*Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, stateToken string, page request.ListParams) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, stateToken string, page request.ListParams) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items item.Service
	users user.Service
	clock clock.Clock
}

func NewService(repo Repository, items item.Service, users user.Service, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if !it.Available {
		return nil, ErrItemUnavail
	}

	// Owners cannot book their own items. Reported as not-found rather than
	// forbidden so the response does not confirm ownership.
	if it.OwnerID == bookerID {
		return nil, apperror.NotFound("booking", req.ItemID)
	}

	now := s.clock.Now()
	if req.Start.Before(now) || req.End.Before(now) || !req.End.After(req.Start) {
		return nil, ErrInvalidTime
	}

	// Conflict check against every existing booking of the item, regardless
	// of status. The repository repeats this check inside the insert
	// transaction to close the race between two concurrent creates.
	existing, err := s.repo.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if b.Overlaps(req.Start, req.End) {
			return nil, ErrIntervalTaken
		}
	}

	b := &Booking{
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Update(ctx context.Context, bookingID, ownerID int64, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != ownerID {
		return nil, apperror.NotFound("booking", bookingID)
	}

	if b.Status != StatusWaiting {
		return nil, ErrAlreadyDecided
	}

	newStatus := StatusRejected
	if approved {
		newStatus = StatusApproved
	}

	// UpdateStatus re-checks WAITING under a row lock so two concurrent
	// decisions cannot both transition the booking.
	if err := s.repo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}

	b.Status = newStatus
	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, requesterID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Visible to the booker and the item owner only; everyone else gets the
	// same not-found as for a missing booking.
	if b.BookerID != requesterID && b.ItemOwnerID != requesterID {
		return nil, apperror.NotFound("booking", bookingID)
	}

	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, stateToken string, page request.ListParams) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}

	state, err := ParseState(stateToken)
	if err != nil {
		return nil, err
	}

	limit, offset := page.Window()
	return s.repo.ListByBooker(ctx, bookerID, state, s.clock.Now(), limit, offset)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, stateToken string, page request.ListParams) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	state, err := ParseState(stateToken)
	if err != nil {
		return nil, err
	}

	limit, offset := page.Window()
	return s.repo.ListByOwner(ctx, ownerID, state, s.clock.Now(), limit, offset)
}
