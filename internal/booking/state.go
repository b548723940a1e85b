package booking

import (
	"time"

	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

// State is the caller-supplied filter selecting a temporal/status subset of
// bookings. Temporal states are evaluated against the clock at call time.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState validates a state token. An empty token means ALL.
// Unrecognized tokens fail with an UnsupportedState error.
func ParseState(token string) (State, error) {
	switch s := State(token); s {
	case "":
		return StateAll, nil
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	default:
		return "", apperror.UnsupportedState(token)
	}
}

// Matches reports whether the booking satisfies the state filter at time now.
// The SQL conditions in the repository mirror this predicate exactly.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}
