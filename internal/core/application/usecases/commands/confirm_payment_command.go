package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
)

// ConfirmPaymentCommand represents a payment-confirmed notification from the
// payment provider, normally delivered through the message broker. Completing
// the payment also confirms a pending order.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	transactionRef string
	paidAt         time.Time

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to record a completed payment.
// The transaction reference is required; a zero paidAt defaults to now.
func NewConfirmPaymentCommand(
	orderID kernel.UUID,
	transactionRef string,
	paidAt time.Time,
) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTransactionRef(transactionRef),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	cmd.paidAt = paidAt

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the paid order.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TransactionRef returns the provider's transaction reference.
func (c ConfirmPaymentCommand) TransactionRef() string {
	return c.transactionRef
}

// PaidAt returns when the payment completed.
func (c ConfirmPaymentCommand) PaidAt() time.Time {
	return c.paidAt
}

func (c *ConfirmPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmPaymentCommand) setTransactionRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("transaction reference")
	}

	c.transactionRef = ref
	return nil
}
