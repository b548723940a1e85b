package itemrequest

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlipatov/shareit-backend/internal/comment"
	"github.com/mlipatov/shareit-backend/internal/item"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
	"github.com/mlipatov/shareit-backend/internal/pkg/clock"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
	"github.com/mlipatov/shareit-backend/internal/user"
)

type memoryRepo struct {
	nextID   int64
	requests map[int64]*Request
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, requests: make(map[int64]*Request)}
}

func (r *memoryRepo) Create(_ context.Context, req *Request) error {
	req.ID = r.nextID
	r.nextID++
	stored := *req
	r.requests[req.ID] = &stored
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, apperror.NotFound("request", id)
	}
	copied := *req
	return &copied, nil
}

func (r *memoryRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.requests[id]
	return ok, nil
}

func (r *memoryRepo) ListByRequestor(_ context.Context, requestorID int64) ([]*Request, error) {
	return r.list(func(req *Request) bool { return req.RequestorID == requestorID }, 0, 0), nil
}

func (r *memoryRepo) ListByOtherRequestors(_ context.Context, requestorID int64, limit, offset uint64) ([]*Request, error) {
	return r.list(func(req *Request) bool { return req.RequestorID != requestorID }, limit, offset), nil
}

func (r *memoryRepo) list(keep func(*Request) bool, limit, offset uint64) []*Request {
	out := []*Request{}
	for _, req := range r.requests {
		if keep(req) {
			copied := *req
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.After(out[j].Created) })
	if limit == 0 {
		return out
	}
	if offset >= uint64(len(out)) {
		return []*Request{}
	}
	out = out[offset:]
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}

// stubItems answers ListByRequestIDs from a canned slice; the rest of the
// item service is not exercised here.
type stubItems struct {
	items []*item.Item
}

func (s *stubItems) ListByRequestIDs(_ context.Context, requestIDs []int64) ([]*item.Item, error) {
	wanted := make(map[int64]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	var out []*item.Item
	for _, it := range s.items {
		if it.RequestID != nil && wanted[*it.RequestID] {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *stubItems) Create(context.Context, int64, item.CreateRequest) (*item.Item, error) {
	panic("not used")
}
func (s *stubItems) Update(context.Context, int64, int64, item.UpdateRequest) (*item.Item, error) {
	panic("not used")
}
func (s *stubItems) GetByID(context.Context, int64) (*item.Item, error) { panic("not used") }
func (s *stubItems) GetView(context.Context, int64, int64) (*item.Detail, error) {
	panic("not used")
}
func (s *stubItems) ListByOwner(context.Context, int64, request.ListParams) ([]*item.Detail, error) {
	panic("not used")
}
func (s *stubItems) Search(context.Context, string, request.ListParams) ([]*item.Item, error) {
	panic("not used")
}
func (s *stubItems) Delete(context.Context, int64, int64) error { panic("not used") }
func (s *stubItems) Comment(context.Context, int64, int64, string) (*comment.Comment, error) {
	panic("not used")
}

type stubUsers struct {
	users map[int64]*user.User
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	return u, nil
}

func (s *stubUsers) Create(context.Context, user.CreateRequest) (*user.User, error) {
	panic("not used")
}
func (s *stubUsers) List(context.Context) ([]*user.User, error) { panic("not used") }
func (s *stubUsers) Update(context.Context, int64, user.UpdateRequest) (*user.User, error) {
	panic("not used")
}
func (s *stubUsers) Delete(context.Context, int64) error { panic("not used") }

const (
	aliceID = int64(1)
	bobID   = int64(2)
)

type fixture struct {
	service Service
	items   *stubItems
	clock   *clock.Fixed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := &stubUsers{users: map[int64]*user.User{
		aliceID: {ID: aliceID, Name: "Alice", Email: "alice@example.com"},
		bobID:   {ID: bobID, Name: "Bob", Email: "bob@example.com"},
	}}
	items := &stubItems{}
	clk := clock.NewFixed(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	return &fixture{
		service: NewService(newMemoryRepo(), items, users, clk),
		items:   items,
		clock:   clk,
	}
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Create Stamps Creation Time", func(t *testing.T) {
		f := newFixture(t)

		req, err := f.service.Create(ctx, aliceID, "need a 3m ladder")
		require.NoError(t, err)
		assert.NotZero(t, req.ID)
		assert.Equal(t, aliceID, req.RequestorID)
		assert.Equal(t, f.clock.Now(), req.Created)
	})

	t.Run("Blank Description", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Create(ctx, aliceID, "   ")
		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("Unknown Requestor", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Create(ctx, 99, "need a ladder")
		assertStatus(t, err, http.StatusNotFound)
	})
}

func TestListRequests(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, f *fixture) (mine, theirs *Request) {
		t.Helper()
		mine, err := f.service.Create(ctx, aliceID, "need a ladder")
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
		theirs, err = f.service.Create(ctx, bobID, "need a drill")
		require.NoError(t, err)
		return mine, theirs
	}

	t.Run("Own Requests Only Newest First", func(t *testing.T) {
		f := newFixture(t)
		mine, _ := seed(t, f)
		f.clock.Advance(time.Minute)
		second, err := f.service.Create(ctx, aliceID, "need a tent")
		require.NoError(t, err)

		got, err := f.service.ListOwn(ctx, aliceID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, mine.ID, got[1].ID)
	})

	t.Run("Others Excludes Own", func(t *testing.T) {
		f := newFixture(t)
		_, theirs := seed(t, f)

		got, err := f.service.ListOthers(ctx, aliceID, request.ListParams{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, theirs.ID, got[0].ID)
	})

	t.Run("Answering Items Are Attached", func(t *testing.T) {
		f := newFixture(t)
		mine, _ := seed(t, f)

		f.items.items = []*item.Item{
			{ID: 10, Name: "Ladder", OwnerID: bobID, Available: true, RequestID: &mine.ID},
		}

		got, err := f.service.ListOwn(ctx, aliceID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Len(t, got[0].Items, 1)
		assert.Equal(t, "Ladder", got[0].Items[0].Name)
	})

	t.Run("No Items Means Empty Slice Not Error", func(t *testing.T) {
		f := newFixture(t)
		seed(t, f)

		got, err := f.service.ListOwn(ctx, aliceID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Items)
	})
}

func TestGetRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Any User May Read Any Request", func(t *testing.T) {
		f := newFixture(t)
		req, err := f.service.Create(ctx, aliceID, "need a ladder")
		require.NoError(t, err)

		got, err := f.service.GetByID(ctx, req.ID, bobID)
		require.NoError(t, err)
		assert.Equal(t, req.ID, got.ID)
	})

	t.Run("Unknown Request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.GetByID(ctx, 99, aliceID)
		assertStatus(t, err, http.StatusNotFound)
	})

	t.Run("Unknown Caller", func(t *testing.T) {
		f := newFixture(t)
		req, err := f.service.Create(ctx, aliceID, "need a ladder")
		require.NoError(t, err)

		_, err = f.service.GetByID(ctx, req.ID, 99)
		assertStatus(t, err, http.StatusNotFound)
	})
}
