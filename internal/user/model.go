package user

import (
	"net/http"

	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

var ErrEmailInUse = apperror.New(http.StatusConflict, "email already in use")

// User represents a registered member who can own items and book them.
type User struct {
	ID    int64
	Name  string
	Email string
}
