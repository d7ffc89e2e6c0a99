package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrUpdateIssueStatusCommandIsNotConstructed = errors.New(
		"UpdateIssueStatusCommand must be created via NewUpdateIssueStatusCommand constructor",
	)
)

// UpdateIssueStatusCommand represents a request to move an issue through its
// workflow: open, investigating, resolved, closed.
type UpdateIssueStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	issueID kernel.UUID
	actor   Actor
	target  order.IssueStatus

	guard guard.ConstructorGuard
}

// NewUpdateIssueStatusCommand creates a command to change an issue's status.
func NewUpdateIssueStatusCommand(
	orderID kernel.UUID,
	issueID kernel.UUID,
	actor Actor,
	target order.IssueStatus,
) (UpdateIssueStatusCommand, error) {
	cmd := UpdateIssueStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setIssueID(issueID),
		cmd.setActor(actor),
		cmd.setTarget(target),
	); err != nil {
		return UpdateIssueStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateIssueStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateIssueStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order carrying the issue.
func (c UpdateIssueStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// IssueID returns the identifier of the issue to move.
func (c UpdateIssueStatusCommand) IssueID() kernel.UUID {
	return c.issueID
}

// Actor returns who requested the change.
func (c UpdateIssueStatusCommand) Actor() Actor {
	return c.actor
}

// Target returns the requested issue status.
func (c UpdateIssueStatusCommand) Target() order.IssueStatus {
	return c.target
}

func (c *UpdateIssueStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateIssueStatusCommand) setIssueID(issueID kernel.UUID) error {
	if err := issueID.Validate(); err != nil {
		return err
	}

	c.issueID = issueID
	return nil
}

func (c *UpdateIssueStatusCommand) setActor(actor Actor) error {
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

func (c *UpdateIssueStatusCommand) setTarget(target order.IssueStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
