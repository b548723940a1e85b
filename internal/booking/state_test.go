package booking

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

func TestParseState(t *testing.T) {
	t.Run("Empty Token Means ALL", func(t *testing.T) {
		state, err := ParseState("")
		require.NoError(t, err)
		assert.Equal(t, StateAll, state)
	})

	t.Run("Known Tokens", func(t *testing.T) {
		for _, token := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
			state, err := ParseState(token)
			require.NoError(t, err, "token %s should parse", token)
			assert.Equal(t, State(token), state)
		}
	})

	t.Run("Unknown Token", func(t *testing.T) {
		_, err := ParseState("UNSUPPORTED_STATUS")
		require.Error(t, err)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Unknown state: UNSUPPORTED_STATUS", appErr.Message)
	})

	t.Run("Lowercase Token Is Rejected", func(t *testing.T) {
		_, err := ParseState("current")
		assert.Error(t, err, "state tokens are case-sensitive")
	})
}

func TestStateMatches(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	past := &Booking{
		Start:  now.Add(-48 * time.Hour),
		End:    now.Add(-24 * time.Hour),
		Status: StatusApproved,
	}
	current := &Booking{
		Start:  now.Add(-time.Hour),
		End:    now.Add(time.Hour),
		Status: StatusApproved,
	}
	future := &Booking{
		Start:  now.Add(24 * time.Hour),
		End:    now.Add(48 * time.Hour),
		Status: StatusWaiting,
	}
	rejected := &Booking{
		Start:  now.Add(24 * time.Hour),
		End:    now.Add(48 * time.Hour),
		Status: StatusRejected,
	}

	tests := []struct {
		name    string
		state   State
		booking *Booking
		want    bool
	}{
		{"ALL matches past", StateAll, past, true},
		{"ALL matches future", StateAll, future, true},
		{"CURRENT matches running", StateCurrent, current, true},
		{"CURRENT rejects past", StateCurrent, past, false},
		{"CURRENT rejects future", StateCurrent, future, false},
		{"PAST matches finished", StatePast, past, true},
		{"PAST rejects running", StatePast, current, false},
		{"FUTURE matches upcoming", StateFuture, future, true},
		{"FUTURE rejects running", StateFuture, current, false},
		{"WAITING matches waiting", StateWaiting, future, true},
		{"WAITING rejects approved", StateWaiting, current, false},
		{"REJECTED matches rejected", StateRejected, rejected, true},
		{"REJECTED rejects waiting", StateRejected, future, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.state.Matches(tc.booking, now))
		})
	}

	t.Run("CURRENT Includes Interval Endpoints", func(t *testing.T) {
		starting := &Booking{Start: now, End: now.Add(time.Hour), Status: StatusApproved}
		ending := &Booking{Start: now.Add(-time.Hour), End: now, Status: StatusApproved}
		assert.True(t, StateCurrent.Matches(starting, now), "booking starting exactly now is current")
		assert.True(t, StateCurrent.Matches(ending, now), "booking ending exactly now is current")
	})
}

func TestOverlaps(t *testing.T) {
	base := &Booking{
		Start: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	hour := time.Hour

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical interval", base.Start, base.End, true},
		{"nested inside", base.Start.Add(30 * time.Minute), base.End.Add(-30 * time.Minute), true},
		{"surrounding", base.Start.Add(-hour), base.End.Add(hour), true},
		{"overlapping start", base.Start.Add(-hour), base.Start.Add(30 * time.Minute), true},
		{"overlapping end", base.End.Add(-30 * time.Minute), base.End.Add(hour), true},
		{"touching at start", base.Start.Add(-hour), base.Start, true},
		{"touching at end", base.End, base.End.Add(hour), true},
		{"strictly before", base.Start.Add(-2 * hour), base.Start.Add(-hour), false},
		{"strictly after", base.End.Add(hour), base.End.Add(2 * hour), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.start, tc.end))
		})
	}
}
