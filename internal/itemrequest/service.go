package itemrequest

import (
	"context"
	"strings"

	"github.com/mlipatov/shareit-backend/internal/item"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
	"github.com/mlipatov/shareit-backend/internal/pkg/clock"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
	"github.com/mlipatov/shareit-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*Request, error)
	// ListOwn returns the caller's requests, newest first, with answering items.
	ListOwn(ctx context.Context, requestorID int64) ([]*Detail, error)
	// ListOthers returns other users' requests, newest first, with answering items.
	ListOthers(ctx context.Context, requestorID int64, page request.ListParams) ([]*Detail, error)
	GetByID(ctx context.Context, requestID, callerID int64) (*Detail, error)
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

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*Request, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(description) == "" {
		return nil, apperror.FieldValidation("description", "must not be blank")
	}

	req := &Request{
		Description: description,
		RequestorID: requestorID,
		Created:     s.clock.Now(),
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requestorID int64) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, requestorID int64, page request.ListParams) ([]*Detail, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	limit, offset := page.Window()
	requests, err := s.repo.ListByOtherRequestors(ctx, requestorID, limit, offset)
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, requestID, callerID int64) (*Detail, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	details, err := s.attachItems(ctx, []*Request{req})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *service) attachItems(ctx context.Context, requests []*Request) ([]*Detail, error) {
	ids := make([]int64, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ID)
	}

	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	itemsByRequest := make(map[int64][]*item.Item)
	for _, it := range items {
		if it.RequestID != nil {
			itemsByRequest[*it.RequestID] = append(itemsByRequest[*it.RequestID], it)
		}
	}

	details := make([]*Detail, 0, len(requests))
	for _, req := range requests {
		details = append(details, &Detail{
			Request: *req,
			Items:   itemsByRequest[req.ID],
		})
	}

	return details, nil
}
