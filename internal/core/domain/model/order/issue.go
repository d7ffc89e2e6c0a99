package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	ErrIssueIsNotConstructed = errors.New("Issue must be created via NewIssue constructor")
)

// IssueStatus is the independent sub-state of a support issue. Issues never
// affect the lifecycle status of their parent order.
type IssueStatus int

const (
	// IssueUnknown represents an invalid or undefined issue status.
	IssueUnknown IssueStatus = iota

	// IssueOpen is the initial status of every reported issue.
	IssueOpen

	// IssueInvestigating means the seller or support is looking into the issue.
	IssueInvestigating

	// IssueResolved means a resolution was reached.
	IssueResolved

	// IssueClosed means the issue is closed, with or without resolution.
	IssueClosed
)

func getIssueStatusStrings() map[IssueStatus]string {
	return map[IssueStatus]string{
		IssueUnknown:       "unknown",
		IssueOpen:          "open",
		IssueInvestigating: "investigating",
		IssueResolved:      "resolved",
		IssueClosed:        "closed",
	}
}

// String returns the wire representation of the issue status.
func (s IssueStatus) String() string {
	if str, ok := getIssueStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IssueStatusFromString parses an issue status from its wire representation.
func IssueStatusFromString(s string) (IssueStatus, error) {
	for status, str := range getIssueStatusStrings() {
		if status != IssueUnknown && str == s {
			return status, nil
		}
	}
	return IssueUnknown, errs.NewValueIsInvalidErrorWithCause("issue status",
		fmt.Errorf("%q is not a valid issue status", s))
}

// Validate checks the issue status is one of the defined states.
func (s IssueStatus) Validate() error {
	if s == IssueUnknown {
		return errs.NewValueIsInvalidErrorWithCause("issue status",
			fmt.Errorf("%d is not a valid issue status", s))
	}
	if _, ok := getIssueStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("issue status",
			fmt.Errorf("%d is not a valid issue status", s))
	}
	return nil
}

// Issue is a support issue raised against an order by either party.
// Issues start open and move independently of the order lifecycle.
type Issue struct {
	id          kernel.UUID
	raisedBy    kernel.UUID
	subject     string
	description string
	status      IssueStatus
	openedAt    time.Time
	resolvedAt  *time.Time

	isConstructed bool
}

// NewIssue creates an open issue raised by the given party.
func NewIssue(id, raisedBy kernel.UUID, subject, description string, openedAt time.Time) (*Issue, error) {
	if err := errors.Join(
		id.Validate(),
		raisedBy.Validate(),
	); err != nil {
		return nil, err
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, errs.NewValueIsRequiredError("issue subject")
	}

	if openedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("issue timestamp")
	}

	return &Issue{
		id:            id,
		raisedBy:      raisedBy,
		subject:       subject,
		description:   description,
		status:        IssueOpen,
		openedAt:      openedAt,
		isConstructed: true,
	}, nil
}

// RestoreIssue rehydrates an issue from persistence.
func RestoreIssue(
	id, raisedBy kernel.UUID,
	subject, description string,
	status IssueStatus,
	openedAt time.Time,
	resolvedAt *time.Time,
) (*Issue, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Issue{
		id:            id,
		raisedBy:      raisedBy,
		subject:       subject,
		description:   description,
		status:        status,
		openedAt:      openedAt,
		resolvedAt:    resolvedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the issue was created through a constructor.
func (i *Issue) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrIssueIsNotConstructed
	}
	return nil
}

// ID returns the issue's unique identifier.
func (i *Issue) ID() kernel.UUID {
	return i.id
}

// RaisedBy returns the identifier of the party that raised the issue.
func (i *Issue) RaisedBy() kernel.UUID {
	return i.raisedBy
}

// Subject returns the issue subject line.
func (i *Issue) Subject() string {
	return i.subject
}

// Description returns the free-text issue description.
func (i *Issue) Description() string {
	return i.description
}

// Status returns the current issue status.
func (i *Issue) Status() IssueStatus {
	return i.status
}

// OpenedAt returns when the issue was reported.
func (i *Issue) OpenedAt() time.Time {
	return i.openedAt
}

// ResolvedAt returns when the issue reached resolved or closed, nil otherwise.
func (i *Issue) ResolvedAt() *time.Time {
	return i.resolvedAt
}

// setStatus moves the issue to the target status. Closed issues stay closed.
func (i *Issue) setStatus(target IssueStatus, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if i.status == IssueClosed {
		return errs.NewValueIsInvalidErrorWithCause("issue status",
			errors.New("issue is already closed"))
	}

	i.status = target
	if target == IssueResolved || target == IssueClosed {
		i.resolvedAt = &at
	}
	return nil
}
