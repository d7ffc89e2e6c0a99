package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
)

// CancelStaleOrdersCommand represents the periodic sweep that cancels pending
// orders whose payment never arrived within the allowed age.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to cancel unpaid orders older
// than maxAge.
func NewCancelStaleOrdersCommand(maxAge time.Duration) (CancelStaleOrdersCommand, error) {
	cmd := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if maxAge <= 0 {
		return CancelStaleOrdersCommand{}, errs.NewValueIsInvalidError("max age")
	}

	cmd.maxAge = maxAge
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// MaxAge returns how old a pending unpaid order may grow before cancellation.
func (c CancelStaleOrdersCommand) MaxAge() time.Duration {
	return c.maxAge
}
