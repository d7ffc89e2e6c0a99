package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrSubmitRatingCommandIsNotConstructed = errors.New(
		"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
	)
)

// SubmitRatingCommand represents a buyer's rating of a delivered order.
// Each sub-score runs 1 to 5; the overall score is their rounded mean.
type SubmitRatingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	buyerID kernel.UUID
	scores  order.RatingScores
	review  string

	guard guard.ConstructorGuard
}

// NewSubmitRatingCommand creates a command to rate a delivered order.
// The score ranges are validated by the domain rating constructor during
// handling, not here; the command only guards identifier validity.
func NewSubmitRatingCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	scores order.RatingScores,
	review string,
) (SubmitRatingCommand, error) {
	cmd := SubmitRatingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
	); err != nil {
		return SubmitRatingCommand{}, err
	}

	cmd.scores = scores
	cmd.review = review
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

// OrderID returns the identifier of the rated order.
func (c SubmitRatingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the identifier of the rating buyer.
func (c SubmitRatingCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Scores returns the submitted sub-scores.
func (c SubmitRatingCommand) Scores() order.RatingScores {
	return c.scores
}

// Review returns the optional free-form review text.
func (c SubmitRatingCommand) Review() string {
	return c.review
}

func (c *SubmitRatingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitRatingCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}
