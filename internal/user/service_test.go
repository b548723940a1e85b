package user

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

type memoryRepo struct {
	nextID int64
	users  map[int64]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, users: make(map[int64]*User)}
}

func (r *memoryRepo) Create(_ context.Context, u *User) error {
	for _, other := range r.users {
		if other.Email == u.Email {
			return ErrEmailInUse
		}
	}
	u.ID = r.nextID
	r.nextID++
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.New(http.StatusNotFound, "user not found")
}

func (r *memoryRepo) List(_ context.Context) ([]*User, error) {
	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apperror.NotFound("user", u.ID)
	}
	for _, other := range r.users {
		if other.ID != u.ID && other.Email == u.Email {
			return ErrEmailInUse
		}
	}
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(r.users, id)
	return nil
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Create And Normalize Email", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		u, err := svc.Create(ctx, CreateRequest{Name: "  Ivan ", Email: " Ivan@Example.COM "})
		require.NoError(t, err)
		assert.Equal(t, "Ivan", u.Name)
		assert.Equal(t, "ivan@example.com", u.Email)
		assert.NotZero(t, u.ID)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		_, err := svc.Create(ctx, CreateRequest{Name: "Ivan", Email: "ivan@example.com"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{Name: "Impostor", Email: "IVAN@example.com"})
		assertStatus(t, err, http.StatusConflict)
	})

	t.Run("Blank Fields", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		_, err := svc.Create(ctx, CreateRequest{Name: "Ivan", Email: "   "})
		assertStatus(t, err, http.StatusBadRequest)

		_, err = svc.Create(ctx, CreateRequest{Name: "   ", Email: "ivan@example.com"})
		assertStatus(t, err, http.StatusBadRequest)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc Service) *User {
		t.Helper()
		u, err := svc.Create(ctx, CreateRequest{Name: "Ivan", Email: "ivan@example.com"})
		require.NoError(t, err)
		return u
	}

	strPtr := func(s string) *string { return &s }

	t.Run("Partial Update Keeps Other Fields", func(t *testing.T) {
		svc := NewService(newMemoryRepo())
		u := seed(t, svc)

		updated, err := svc.Update(ctx, u.ID, UpdateRequest{Name: strPtr("Vanya")})
		require.NoError(t, err)
		assert.Equal(t, "Vanya", updated.Name)
		assert.Equal(t, "ivan@example.com", updated.Email, "email untouched")

		updated, err = svc.Update(ctx, u.ID, UpdateRequest{Email: strPtr("vanya@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "Vanya", updated.Name, "name untouched")
		assert.Equal(t, "vanya@example.com", updated.Email)
	})

	t.Run("Email Taken By Someone Else", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo)
		seed(t, svc)
		other, err := svc.Create(ctx, CreateRequest{Name: "Petr", Email: "petr@example.com"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, other.ID, UpdateRequest{Email: strPtr("ivan@example.com")})
		assertStatus(t, err, http.StatusConflict)
	})

	t.Run("Keeping Own Email Is Allowed", func(t *testing.T) {
		svc := NewService(newMemoryRepo())
		u := seed(t, svc)

		updated, err := svc.Update(ctx, u.ID, UpdateRequest{Email: strPtr("IVAN@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "ivan@example.com", updated.Email)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		_, err := svc.Update(ctx, 42, UpdateRequest{Name: strPtr("Ghost")})
		assertStatus(t, err, http.StatusNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Delete Then Get Fails", func(t *testing.T) {
		svc := NewService(newMemoryRepo())
		u, err := svc.Create(ctx, CreateRequest{Name: "Ivan", Email: "ivan@example.com"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, u.ID))

		_, err = svc.GetByID(ctx, u.ID)
		assertStatus(t, err, http.StatusNotFound)
	})
}
