package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrRatingAlreadyAttached is returned when a party attempts to rate an
	// order it has already rated.
	ErrRatingAlreadyAttached = errors.New("order already carries a rating from this party")

	// ErrOrderNotDelivered is returned when a rating is submitted for an order
	// that has not reached the delivered state.
	ErrOrderNotDelivered = errors.New("order must be delivered before it can be rated")
)

// Order is the aggregate root of the settlement engine. It holds the parties,
// the settled line items, the computed totals, and the embedded delivery and
// payment sub-records with their own invariants.
//
// Order follows these invariants:
//   - total = subtotal + delivery charge, always
//   - savedAmount = marketPriceTotal - subtotal; savingsPercentage is the
//     two-decimal percentage when marketPriceTotal > 0, else zero
//   - the tracking history is non-empty, time-ordered, and its latest entry
//     always matches the order's current status
//   - exactly one payment record whose amount equals the total at creation
//   - line items, parties and the order number are immutable after creation
//
// The totals are derived from the line items at construction, never supplied,
// so the numeric invariants hold by construction. An order is logically
// destroyed only by a terminal status; there is no physical deletion.
type Order struct {
	id          kernel.UUID
	orderNumber kernel.OrderNumber
	buyerID     kernel.UUID
	sellerID    kernel.UUID
	items       []LineItem

	subtotal          float64
	deliveryCharge    float64
	total             float64
	marketPriceTotal  float64
	savedAmount       float64
	savingsPercentage float64

	status       Status
	instructions string
	cancelledBy  string

	createdAt    time.Time
	confirmedAt  *time.Time
	packedAt     *time.Time
	dispatchedAt *time.Time
	deliveredAt  *time.Time
	cancelledAt  *time.Time

	delivery DeliveryRecord
	payment  PaymentRecord

	buyerRating  *Rating
	sellerRating *Rating
	issues       []*Issue

	version int

	isConstructed bool
}

// round2 clamps a value to two-decimal precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NewOrder creates a new order in Pending status. Totals are derived from the
// settled line items plus the delivery record's surcharge; the payment record
// is seeded at the order total; and the first tracking step recording receipt
// of the order is appended immediately.
func NewOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	items []LineItem,
	delivery DeliveryRecord,
	paymentMethod string,
	instructions string,
	now time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(number),
		o.setBuyerID(buyerID),
		o.setSellerID(sellerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if now.IsZero() {
		now = time.Now()
	}

	o.deriveTotals(delivery.Charge())

	payment, err := NewPaymentRecord(paymentMethod, o.total)
	if err != nil {
		return nil, err
	}

	o.status = Pending
	o.instructions = instructions
	o.createdAt = now
	o.delivery = delivery
	o.payment = payment
	o.version = 1

	step, err := NewTrackingStep(Pending, "", "Order received and awaiting confirmation", now)
	if err != nil {
		return nil, err
	}
	if err = o.delivery.appendStep(step); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rehydrates an order from persistence without re-deriving any
// state. The caller supplies the stored totals and history; the restored
// aggregate must still satisfy the tracking invariant.
func RestoreOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	items []LineItem,
	subtotal, deliveryCharge, total, marketPriceTotal, savedAmount, savingsPercentage float64,
	status Status,
	instructions string,
	cancelledBy string,
	createdAt time.Time,
	confirmedAt, packedAt, dispatchedAt, deliveredAt, cancelledAt *time.Time,
	delivery DeliveryRecord,
	payment PaymentRecord,
	buyerRating, sellerRating *Rating,
	issues []*Issue,
	version int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		buyerID.Validate(),
		sellerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if current := delivery.CurrentStatus(); current != status {
		return nil, errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("status %s does not match latest tracking step %s", status, current))
	}

	return &Order{
		id:                id,
		orderNumber:       number,
		buyerID:           buyerID,
		sellerID:          sellerID,
		items:             items,
		subtotal:          subtotal,
		deliveryCharge:    deliveryCharge,
		total:             total,
		marketPriceTotal:  marketPriceTotal,
		savedAmount:       savedAmount,
		savingsPercentage: savingsPercentage,
		status:            status,
		instructions:      instructions,
		cancelledBy:       cancelledBy,
		createdAt:         createdAt,
		confirmedAt:       confirmedAt,
		packedAt:          packedAt,
		dispatchedAt:      dispatchedAt,
		deliveredAt:       deliveredAt,
		cancelledAt:       cancelledAt,
		delivery:          delivery,
		payment:           payment,
		buyerRating:       buyerRating,
		sellerRating:      sellerRating,
		issues:            issues,
		version:           version,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's internal record identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the externally unique, human-readable order number.
func (o *Order) OrderNumber() kernel.OrderNumber { return o.orderNumber }

// BuyerID returns the identifier of the purchasing party.
func (o *Order) BuyerID() kernel.UUID { return o.buyerID }

// SellerID returns the identifier of the fulfilling party.
func (o *Order) SellerID() kernel.UUID { return o.sellerID }

// Items returns a copy of the settled line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// ItemCount returns the total quantity across all line items.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.items {
		count += item.quantity
	}
	return count
}

// Subtotal returns the sum of line totals.
func (o *Order) Subtotal() float64 { return o.subtotal }

// DeliveryCharge returns the settled delivery surcharge.
func (o *Order) DeliveryCharge() float64 { return o.deliveryCharge }

// Total returns subtotal plus delivery charge.
func (o *Order) Total() float64 { return o.total }

// MarketPriceTotal returns the reference market value of the order.
func (o *Order) MarketPriceTotal() float64 { return o.marketPriceTotal }

// SavedAmount returns the buyer's savings versus the reference market value.
func (o *Order) SavedAmount() float64 { return o.savedAmount }

// SavingsPercentage returns the savings as a two-decimal percentage.
func (o *Order) SavingsPercentage() float64 { return o.savingsPercentage }

// Status returns the current lifecycle status, mirrored from the latest
// tracking step for fast filtering.
func (o *Order) Status() Status { return o.status }

// Instructions returns the buyer's free-text delivery instructions.
func (o *Order) Instructions() string { return o.instructions }

// CancelledBy records which side requested cancellation, empty otherwise.
func (o *Order) CancelledBy() string { return o.cancelledBy }

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// ConfirmedAt returns when the order was confirmed, nil if never.
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }

// PackedAt returns when the order was packed, nil if never.
func (o *Order) PackedAt() *time.Time { return o.packedAt }

// DispatchedAt returns when the order was dispatched, nil if never.
func (o *Order) DispatchedAt() *time.Time { return o.dispatchedAt }

// DeliveredAt returns when the order was delivered, nil if never.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns when the order was cancelled, nil if never.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// Delivery returns the embedded delivery record.
func (o *Order) Delivery() *DeliveryRecord { return &o.delivery }

// Payment returns the embedded payment record.
func (o *Order) Payment() *PaymentRecord { return &o.payment }

// BuyerRating returns the buyer's rating of the order, nil if not rated.
func (o *Order) BuyerRating() *Rating { return o.buyerRating }

// SellerRating returns the seller's rating of the order, nil if not rated.
func (o *Order) SellerRating() *Rating { return o.sellerRating }

// Issues returns a copy of the issues reported against the order.
func (o *Order) Issues() []*Issue {
	issues := make([]*Issue, len(o.issues))
	copy(issues, o.issues)
	return issues
}

// Version returns the optimistic concurrency version of the aggregate.
// The repository increments it on every successful update; two concurrent
// writers on the same order cannot both succeed.
func (o *Order) Version() int { return o.version }

// TransitionTo drives the lifecycle state machine. On success it appends a
// tracking step with the given location and description, mirrors the status
// field, and stamps the named lifecycle timestamp for Confirmed, Packed,
// Dispatched, Delivered and Cancelled targets. A transition on an order in a
// terminal state fails with ErrTerminalState and appends nothing.
func (o *Order) TransitionTo(target Status, location, description string, at time.Time) error {
	newStatus, err := o.status.Transition(target)
	if err != nil {
		return err
	}

	if at.IsZero() {
		at = time.Now()
	}

	step, err := NewTrackingStep(newStatus, location, description, at)
	if err != nil {
		return err
	}
	if err = o.delivery.appendStep(step); err != nil {
		return err
	}

	o.status = newStatus
	o.stampLifecycle(newStatus, at)

	if newStatus == Refunded {
		o.payment.markRefunded()
	}

	return nil
}

// Cancel records which side requested cancellation and moves the order to
// Cancelled through the regular state machine.
func (o *Order) Cancel(by, location, description string, at time.Time) error {
	if err := o.TransitionTo(Cancelled, location, description, at); err != nil {
		return err
	}
	o.cancelledBy = by
	return nil
}

// ConfirmPayment marks the payment as completed with the gateway transaction
// reference and, for an order still pending, drives the Pending -> Confirmed
// transition.
func (o *Order) ConfirmPayment(transactionRef string, at time.Time) error {
	if o.payment.status == PaymentCompleted {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			errors.New("payment is already completed"))
	}

	if at.IsZero() {
		at = time.Now()
	}

	o.payment.complete(transactionRef, at)

	if o.status == Pending {
		return o.TransitionTo(Confirmed, "", "Payment confirmed", at)
	}
	return nil
}

// AttachBuyerRating attaches the buyer's post-delivery rating.
// The order must be delivered and not yet rated by the buyer.
func (o *Order) AttachBuyerRating(r Rating) error {
	if err := r.Validate(); err != nil {
		return err
	}

	if o.status != Delivered {
		return ErrOrderNotDelivered
	}

	if o.buyerRating != nil {
		return ErrRatingAlreadyAttached
	}

	o.buyerRating = &r
	return nil
}

// AttachSellerRating attaches the seller's rating of the buyer.
// At most one seller rating per order; no further gating is enforced.
func (o *Order) AttachSellerRating(r Rating) error {
	if err := r.Validate(); err != nil {
		return err
	}

	if o.sellerRating != nil {
		return ErrRatingAlreadyAttached
	}

	o.sellerRating = &r
	return nil
}

// ReportIssue appends a support issue. Either party may report issues at any
// lifecycle stage; issues never change the order's own status.
func (o *Order) ReportIssue(issue *Issue) error {
	if err := issue.Validate(); err != nil {
		return err
	}

	if !issue.raisedBy.IsEqual(o.buyerID) && !issue.raisedBy.IsEqual(o.sellerID) {
		return errs.NewValueIsInvalidErrorWithCause("issue",
			errors.New("issue must be raised by a party of the order"))
	}

	o.issues = append(o.issues, issue)
	return nil
}

// UpdateIssueStatus moves one of the order's issues to the target status.
func (o *Order) UpdateIssueStatus(issueID kernel.UUID, target IssueStatus, at time.Time) error {
	for _, issue := range o.issues {
		if issue.id.IsEqual(issueID) {
			return issue.setStatus(target, at)
		}
	}
	return errs.NewObjectNotFoundError("issue", issueID.String())
}

func (o *Order) stampLifecycle(status Status, at time.Time) {
	switch status { //nolint:exhaustive // only these statuses carry named timestamps
	case Confirmed:
		o.confirmedAt = &at
	case Packed:
		o.packedAt = &at
	case Dispatched:
		o.dispatchedAt = &at
	case Delivered:
		o.deliveredAt = &at
	case Cancelled:
		o.cancelledAt = &at
	}
}

func (o *Order) deriveTotals(deliveryCharge float64) {
	subtotal := 0.0
	marketTotal := 0.0
	for _, item := range o.items {
		subtotal += item.lineTotal
		marketTotal += float64(item.quantity) * item.marketPrice
	}

	o.subtotal = round2(subtotal)
	o.deliveryCharge = deliveryCharge
	o.total = round2(subtotal + deliveryCharge)
	o.marketPriceTotal = round2(marketTotal)
	o.savedAmount = round2(marketTotal - subtotal)

	if marketTotal > 0 {
		o.savingsPercentage = round2((marketTotal - subtotal) / marketTotal * 100)
	} else {
		o.savingsPercentage = 0
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.orderNumber = number
	return nil
}

func (o *Order) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.buyerID = id
	return nil
}

func (o *Order) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.sellerID = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}
