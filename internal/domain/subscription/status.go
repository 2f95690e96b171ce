package subscription

import "github.com/edustack/backend/internal/domain/shared"

// Status represents the status of a subscription
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusPastDue   Status = "past_due"
	StatusExpired   Status = "expired"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCancelled, StatusPastDue, StatusExpired:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further billing activity is expected.
// Expired subscriptions can still be reactivated; cancelled ones can be
// resumed until they expire.
func (s Status) IsTerminal() bool {
	return s == StatusExpired
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusActive || target == StatusExpired || target == StatusCancelled
	case StatusActive:
		return target == StatusCancelled || target == StatusPastDue || target == StatusExpired
	case StatusCancelled:
		return target == StatusExpired || target == StatusActive
	case StatusPastDue:
		return target == StatusActive || target == StatusCancelled || target == StatusExpired
	case StatusExpired:
		return target == StatusActive
	}
	return false
}

// AssertTransition validates a status change. Same-status writes are a no-op;
// anything outside the transition table fails with ErrInvalidStateTransition.
// Every status write on a Subscription must pass through this check.
func AssertTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if !from.IsValid() || !to.IsValid() {
		return shared.ErrInvalidStateTransition
	}
	if !from.CanTransitionTo(to) {
		return shared.ErrInvalidStateTransition
	}
	return nil
}
