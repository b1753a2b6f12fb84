package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders always
// follow the marketplace workflow.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> ready ──> in_delivery ──> delivered
//	   │            │             │
//	   └────────────┴─────────────┴──> cancelled
//
// Cancellation is only reachable while the shop still controls the order
// (pending, confirmed, preparing). Once an order is ready the courier side of
// the workflow takes over and the order must run to delivered.
// The ready -> in_delivery edge is crossed exclusively by courier assignment,
// which binds the courier in the same step.
//
// delivered and cancelled are terminal.
type Status string

const (
	// StatusPending is the initial state: the order awaits shop confirmation.
	StatusPending Status = "pending"
	// StatusConfirmed means the shop accepted the order.
	StatusConfirmed Status = "confirmed"
	// StatusPreparing means the shop is preparing the items.
	StatusPreparing Status = "preparing"
	// StatusReady means the order awaits a courier.
	StatusReady Status = "ready"
	// StatusInDelivery means an assigned courier is carrying the order.
	StatusInDelivery Status = "in_delivery"
	// StatusDelivered is the successful terminal state.
	StatusDelivered Status = "delivered"
	// StatusCancelled is the aborted terminal state.
	StatusCancelled Status = "cancelled"
)

// transitions holds the directed edges of the order state machine.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusPreparing, StatusCancelled},
		StatusPreparing:  {StatusReady, StatusCancelled},
		StatusReady:      {StatusInDelivery},
		StatusInDelivery: {StatusDelivered},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}
}

// statusPhrases maps each status to the human-readable phrase used in
// order-status-updated notification messages.
func statusPhrases() map[Status]string {
	return map[Status]string{
		StatusPending:    "pending confirmation",
		StatusConfirmed:  "confirmed",
		StatusPreparing:  "being prepared",
		StatusReady:      "ready for delivery",
		StatusInDelivery: "on the way",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
	}
}

// Validate checks that the status is one of the known values.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}

	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Phrase returns the human-readable phrase for the status, used when
// composing notification messages ("your order is on the way").
func (s Status) Phrase() string {
	if phrase, ok := statusPhrases()[s]; ok {
		return phrase
	}

	return string(s)
}

// CanTransitionTo reports whether the state machine allows moving from the
// current status to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// TransitionTo validates and performs the transition to next.
//
// Returns:
//   - (next, nil) when the edge exists in the state machine
//   - ("", error) when next is unknown or the edge is not allowed
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}

	if !s.CanTransitionTo(next) {
		return "", errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot transition from %s to %s", s, next))
	}

	return next, nil
}
