package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrReportIssueCommandIsNotConstructed = errors.New(
		"ReportIssueCommand must be created via NewReportIssueCommand constructor",
	)
)

// ReportIssueCommand represents a complaint raised against an order by one of
// its parties.
type ReportIssueCommand struct { //nolint:recvcheck //using for validation
	issueID     kernel.UUID
	orderID     kernel.UUID
	raisedBy    kernel.UUID
	subject     string
	description string

	guard guard.ConstructorGuard
}

// NewReportIssueCommand creates a command to open an issue on an order.
// The subject is required.
func NewReportIssueCommand(
	issueID kernel.UUID,
	orderID kernel.UUID,
	raisedBy kernel.UUID,
	subject string,
	description string,
) (ReportIssueCommand, error) {
	cmd := ReportIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIssueID(issueID),
		cmd.setOrderID(orderID),
		cmd.setRaisedBy(raisedBy),
		cmd.setSubject(subject),
	); err != nil {
		return ReportIssueCommand{}, err
	}

	cmd.description = description
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportIssueCommandIsNotConstructed)
}

// IssueID returns the identifier the new issue will carry.
func (c ReportIssueCommand) IssueID() kernel.UUID {
	return c.issueID
}

// OrderID returns the identifier of the order the issue concerns.
func (c ReportIssueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RaisedBy returns the identifier of the reporting party.
func (c ReportIssueCommand) RaisedBy() kernel.UUID {
	return c.raisedBy
}

// Subject returns the issue subject line.
func (c ReportIssueCommand) Subject() string {
	return c.subject
}

// Description returns the optional issue details.
func (c ReportIssueCommand) Description() string {
	return c.description
}

func (c *ReportIssueCommand) setIssueID(issueID kernel.UUID) error {
	if err := issueID.Validate(); err != nil {
		return err
	}

	c.issueID = issueID
	return nil
}

func (c *ReportIssueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportIssueCommand) setRaisedBy(raisedBy kernel.UUID) error {
	if err := raisedBy.Validate(); err != nil {
		return err
	}

	c.raisedBy = raisedBy
	return nil
}

func (c *ReportIssueCommand) setSubject(subject string) error {
	if subject == "" {
		return errs.NewValueIsRequiredError("subject")
	}

	c.subject = subject
	return nil
}
