package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
)

// Actor identifies who is driving a lifecycle change: one of the order's
// parties or the system itself (background jobs, payment events).
type Actor struct {
	ID   kernel.UUID
	Kind ActorKind
}

// ActorKind distinguishes the three sources of lifecycle changes.
type ActorKind int

const (
	// ActorUnknown represents an invalid or undefined actor kind.
	ActorUnknown ActorKind = iota

	// ActorBuyer is the ordering party. Buyers may only cancel.
	ActorBuyer

	// ActorSeller is the fulfilling party driving the normal lifecycle.
	ActorSeller

	// ActorSystem is an internal caller such as the stale-order job.
	ActorSystem
)

// String returns the label recorded on cancellations for this actor kind.
func (k ActorKind) String() string {
	switch k {
	case ActorBuyer:
		return "vendor"
	case ActorSeller:
		return "supplier"
	case ActorSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Validate checks the actor kind is one of the defined kinds.
func (k ActorKind) Validate() error {
	if k != ActorBuyer && k != ActorSeller && k != ActorSystem {
		return errs.NewValueIsInvalidError("actor kind")
	}
	return nil
}

// UpdateOrderStatusCommand represents a request to move an order through its
// lifecycle: confirm, pack, dispatch, deliver, or exit sideways into
// cancelled, returned or refunded.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actor       Actor
	target      order.Status
	location    string
	description string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to change an order's status.
// The target must be a valid status; system actors need no identifier, party
// actors do.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	actor Actor,
	target order.Status,
	location string,
	description string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setTarget(target),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	cmd.location = location
	cmd.description = description
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to move.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who requested the change.
func (c UpdateOrderStatusCommand) Actor() Actor {
	return c.actor
}

// Target returns the requested status.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

// Location returns the optional location recorded on the tracking step.
func (c UpdateOrderStatusCommand) Location() string {
	return c.location
}

// Description returns the optional note recorded on the tracking step.
func (c UpdateOrderStatusCommand) Description() string {
	return c.description
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setActor(actor Actor) error {
	if err := actor.Kind.Validate(); err != nil {
		return err
	}

	if actor.Kind != ActorSystem {
		if err := actor.ID.Validate(); err != nil {
			return err
		}
	}

	c.actor = actor
	return nil
}

func (c *UpdateOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
