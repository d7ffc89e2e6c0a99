package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// OrderItemInput is one requested product line as the caller submitted it.
// The price is the caller's claimed price; it is only honored when the
// seller's catalog does not carry the product.
type OrderItemInput struct {
	ProductName string
	Category    string
	Quantity    int
	Unit        string
	Price       float64
}

// DeliveryInput carries the destination and delivery preferences of an order.
type DeliveryInput struct {
	Street        string
	City          string
	State         string
	PostalCode    string
	ScheduledDate time.Time
	TimeWindow    string
	Method        string
}

// CreateOrderCommand represents a buyer's request to place an order with a
// seller. Prices are resolved against the seller's catalog during handling;
// the caller-supplied prices are fallbacks only.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	buyerID       kernel.UUID
	sellerID      kernel.UUID
	items         []OrderItemInput
	delivery      DeliveryInput
	paymentMethod string
	instructions  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, requires at least one item, a delivery street and
// postal code, and a payment method.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	items []OrderItemInput,
	delivery DeliveryInput,
	paymentMethod string,
	instructions string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setSellerID(sellerID),
		cmd.setItems(items),
		cmd.setDelivery(delivery),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.instructions = instructions
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the identifier of the ordering buyer.
func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// SellerID returns the identifier of the fulfilling seller.
func (c CreateOrderCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// Items returns the requested product lines.
func (c CreateOrderCommand) Items() []OrderItemInput {
	items := make([]OrderItemInput, len(c.items))
	copy(items, c.items)
	return items
}

// Delivery returns the destination and delivery preferences.
func (c CreateOrderCommand) Delivery() DeliveryInput {
	return c.delivery
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// Instructions returns the buyer's free-form delivery instructions.
func (c CreateOrderCommand) Instructions() string {
	return c.instructions
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = make([]OrderItemInput, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setDelivery(delivery DeliveryInput) error {
	if delivery.Street == "" {
		return errs.NewValueIsRequiredError("delivery street")
	}

	if delivery.PostalCode == "" {
		return errs.NewValueIsRequiredError("delivery postal code")
	}

	c.delivery = delivery
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}

	c.paymentMethod = method
	return nil
}
