package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

type CreateRequest struct {
	Name  string
	Email string
}

type UpdateRequest struct {
	Name  *string
	Email *string
}

// Service defines business logic related to users.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService creates a new user Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, apperror.FieldValidation("email", "must not be empty")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.FieldValidation("name", "must not be empty")
	}

	// Check if email is already used. The repository maps the unique
	// constraint too, in case two registrations race past this check.
	if _, err := s.repo.GetByEmail(ctx, cleanEmail); err == nil {
		return nil, ErrEmailInUse
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	u := &User{
		Name:  strings.TrimSpace(req.Name),
		Email: cleanEmail,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperror.FieldValidation("name", "must not be empty")
		}
		u.Name = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		cleanEmail := normalizeEmail(*req.Email)
		if cleanEmail == "" {
			return nil, apperror.FieldValidation("email", "must not be empty")
		}
		if cleanEmail != u.Email {
			if other, err := s.repo.GetByEmail(ctx, cleanEmail); err == nil && other.ID != id {
				return nil, ErrEmailInUse
			} else if err != nil && !isNotFound(err) {
				return nil, fmt.Errorf("failed to check existing email: %w", err)
			}
			u.Email = cleanEmail
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isNotFound(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}
