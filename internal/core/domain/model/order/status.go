package order

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrTerminalState is returned when a status transition is attempted on an
// order that has already reached a terminal state. Terminal orders accept no
// further transitions of any kind.
var ErrTerminalState = errors.New("order is in a terminal state")

// Status represents the lifecycle state of an order.
//
// Happy path:
//
//	Pending -> Confirmed -> Processing -> Packed -> Dispatched -> InTransit -> Delivered
//
// Cancelled, Returned and Refunded are side exits reachable from any
// non-terminal state. Delivered, Cancelled, Returned and Refunded are
// terminal: once reached, no further transition is accepted.
//
// Transitions are deliberately permissive within the non-terminal states: the
// engine does not require the target to be the structurally next stage, so a
// seller may for instance move Pending directly to Dispatched. Skipped stages
// simply never get their timestamp stamped. The only hard rule is the
// terminal guard.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every newly created order.
	Pending

	// Confirmed indicates the seller (or a payment confirmation event)
	// accepted the order.
	Confirmed

	// Processing indicates the seller is preparing the order.
	Processing

	// Packed indicates the order is packed and awaiting dispatch.
	Packed

	// Dispatched indicates the order has left the seller's premises.
	Dispatched

	// InTransit indicates the order is on its way to the buyer.
	InTransit

	// Delivered indicates successful delivery. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before delivery. Terminal.
	Cancelled

	// Returned indicates the buyer returned the order. Terminal.
	Returned

	// Refunded indicates the payment was refunded. Terminal.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Processing: "processing",
		Packed:     "packed",
		Dispatched: "dispatched",
		InTransit:  "in_transit",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
		Returned:   "returned",
		Refunded:   "refunded",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Confirmed:  "confirmed",
		Processing: "processing",
		Packed:     "packed",
		Dispatched: "dispatched",
		InTransit:  "in_transit",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
		Returned:   "returned",
		Refunded:   "refunded",
	}
}

// String returns the wire representation of the status.
// Returns "unknown" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, Returned, Refunded:
		return true
	default:
		return false
	}
}

// Transition validates a move from the current status to target and returns
// the new status. Any valid target is accepted from a non-terminal state;
// transitions out of a terminal state fail with ErrTerminalState.
func (s Status) Transition(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if s.IsTerminal() {
		return Unknown, fmt.Errorf("%w: cannot move %s order to %s", ErrTerminalState, s, target)
	}

	return target, nil
}
