package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlipatov/shareit-backend/internal/booking"
	"github.com/mlipatov/shareit-backend/internal/identity"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
)

// fakeService records the last call and returns canned results.
type fakeService struct {
	booking *booking.Booking
	err     error

	lastUserID   int64
	lastState    string
	lastApproved bool
}

func (f *fakeService) Create(_ context.Context, bookerID int64, _ booking.CreateRequest) (*booking.Booking, error) {
	f.lastUserID = bookerID
	return f.booking, f.err
}

func (f *fakeService) Update(_ context.Context, _, ownerID int64, approved bool) (*booking.Booking, error) {
	f.lastUserID = ownerID
	f.lastApproved = approved
	return f.booking, f.err
}

func (f *fakeService) GetByID(_ context.Context, _, requesterID int64) (*booking.Booking, error) {
	f.lastUserID = requesterID
	return f.booking, f.err
}

func (f *fakeService) ListByBooker(_ context.Context, bookerID int64, stateToken string, _ request.ListParams) ([]*booking.Booking, error) {
	f.lastUserID = bookerID
	f.lastState = stateToken
	if f.err != nil {
		return nil, f.err
	}
	return []*booking.Booking{f.booking}, nil
}

func (f *fakeService) ListByOwner(_ context.Context, ownerID int64, stateToken string, _ request.ListParams) ([]*booking.Booking, error) {
	f.lastUserID = ownerID
	f.lastState = stateToken
	if f.err != nil {
		return nil, f.err
	}
	return []*booking.Booking{f.booking}, nil
}

func setup(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group(""), NewHandler(svc), identity.Required())
	return r
}

func sampleBooking() *booking.Booking {
	return &booking.Booking{
		ID:          5,
		ItemID:      10,
		ItemName:    "Drill",
		ItemOwnerID: 1,
		BookerID:    2,
		BookerName:  "Boris",
		Start:       time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
		Status:      booking.StatusWaiting,
	}
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(identity.Header, "2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingEndpoint(t *testing.T) {
	t.Run("Created With Nested Booker And Item", func(t *testing.T) {
		svc := &fakeService{booking: sampleBooking()}
		r := setup(svc)

		w := do(r, "POST", "/bookings", gin.H{
			"itemId": 10,
			"start":  "2026-04-01T10:00:00Z",
			"end":    "2026-04-02T10:00:00Z",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, int64(2), svc.lastUserID, "identity header is the booker")

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, "WAITING", resp.Status)
		assert.Equal(t, int64(2), resp.Booker.ID)
		assert.Equal(t, "Drill", resp.Item.Name)
	})

	t.Run("Missing Identity Header", func(t *testing.T) {
		r := setup(&fakeService{})

		req := httptest.NewRequest("POST", "/bookings", bytes.NewBufferString("{}"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing Item ID", func(t *testing.T) {
		r := setup(&fakeService{})

		w := do(r, "POST", "/bookings", gin.H{
			"start": "2026-04-01T10:00:00Z",
			"end":   "2026-04-02T10:00:00Z",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Service Error Is Mapped", func(t *testing.T) {
		svc := &fakeService{err: apperror.NotFound("item", 10)}
		r := setup(svc)

		w := do(r, "POST", "/bookings", gin.H{
			"itemId": 10,
			"start":  "2026-04-01T10:00:00Z",
			"end":    "2026-04-02T10:00:00Z",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateBookingEndpoint(t *testing.T) {
	t.Run("Approve", func(t *testing.T) {
		b := sampleBooking()
		b.Status = booking.StatusApproved
		svc := &fakeService{booking: b}
		r := setup(svc)

		w := do(r, "PATCH", "/bookings/5?approved=true", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, svc.lastApproved)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "APPROVED", resp.Status)
	})

	t.Run("Missing Approved Parameter", func(t *testing.T) {
		r := setup(&fakeService{booking: sampleBooking()})

		w := do(r, "PATCH", "/bookings/5", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		r := setup(&fakeService{booking: sampleBooking()})

		w := do(r, "PATCH", "/bookings/zero?approved=true", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListBookingsEndpoint(t *testing.T) {
	t.Run("State Defaults To ALL", func(t *testing.T) {
		svc := &fakeService{booking: sampleBooking()}
		r := setup(svc)

		w := do(r, "GET", "/bookings", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ALL", svc.lastState)

		var resp []BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
	})

	t.Run("State Token Is Passed Through", func(t *testing.T) {
		svc := &fakeService{booking: sampleBooking()}
		r := setup(svc)

		w := do(r, "GET", "/bookings/owner?state=WAITING", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "WAITING", svc.lastState)
	})

	t.Run("Unknown State Becomes 400", func(t *testing.T) {
		svc := &fakeService{err: apperror.UnsupportedState("SOMETHING")}
		r := setup(svc)

		w := do(r, "GET", "/bookings?state=SOMETHING", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unknown state: SOMETHING")
	})

	t.Run("Negative From Is Rejected", func(t *testing.T) {
		svc := &fakeService{booking: sampleBooking()}
		r := setup(svc)

		w := do(r, "GET", "/bookings?from=-1&size=10", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
