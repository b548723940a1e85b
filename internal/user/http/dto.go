package http

import "github.com/mlipatov/shareit-backend/internal/user"

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserTag is a brief representation of a user embedded in other responses.
type UserTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewUserResponse converts a domain user.User to the API representation.
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}
