package order

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrTrackingStepIsNotConstructed = errors.New("TrackingStep must be created via NewTrackingStep constructor")
)

// TrackingStep is one immutable entry of an order's audit trail. Steps are
// only ever appended, never edited or removed; the full sequence is the
// authoritative lifecycle history of the order.
type TrackingStep struct { //nolint:recvcheck //using for validation
	status      Status
	location    string
	description string
	at          time.Time

	guard guard.ConstructorGuard
}

// NewTrackingStep creates an audit-trail entry for a status change.
// Location and description are free text and may be empty.
func NewTrackingStep(status Status, location, description string, at time.Time) (TrackingStep, error) {
	if err := status.Validate(); err != nil {
		return TrackingStep{}, err
	}

	if at.IsZero() {
		return TrackingStep{}, errs.NewValueIsRequiredError("tracking step timestamp")
	}

	return TrackingStep{
		status:      status,
		location:    location,
		description: description,
		at:          at,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the step was created through the constructor.
func (s TrackingStep) Validate() error {
	return s.guard.Validate(ErrTrackingStepIsNotConstructed)
}

// Status returns the lifecycle status this step recorded.
func (s TrackingStep) Status() Status {
	return s.status
}

// Location returns the free-text location of the step.
func (s TrackingStep) Location() string {
	return s.location
}

// Description returns the free-text description of the step.
func (s TrackingStep) Description() string {
	return s.description
}

// At returns when the step was recorded.
func (s TrackingStep) At() time.Time {
	return s.at
}

// DeliveryRecord is the delivery sub-record embedded in an order: the
// destination address, schedule, method, surcharge and the append-only
// tracking history. The current status of the order is defined as the status
// of the most recent tracking step.
type DeliveryRecord struct {
	address       Address
	scheduledDate time.Time
	timeWindow    string
	method        string
	charge        float64
	steps         []TrackingStep
}

// Address is the delivery destination of an order.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
}

// NewDeliveryRecord creates a delivery record with an empty tracking history.
// The first step is appended by the order constructor, so the record never
// stays empty once embedded in an order.
func NewDeliveryRecord(
	address Address,
	scheduledDate time.Time,
	timeWindow string,
	method string,
	charge float64,
) (DeliveryRecord, error) {
	if address.Street == "" {
		return DeliveryRecord{}, errs.NewValueIsRequiredError("delivery street")
	}

	if address.PostalCode == "" {
		return DeliveryRecord{}, errs.NewValueIsRequiredError("delivery postal code")
	}

	return DeliveryRecord{
		address:       address,
		scheduledDate: scheduledDate,
		timeWindow:    timeWindow,
		method:        method,
		charge:        charge,
		steps:         make([]TrackingStep, 0, 1),
	}, nil
}

// RestoreDeliveryRecord rehydrates a delivery record from persistence,
// including its full tracking history.
func RestoreDeliveryRecord(
	address Address,
	scheduledDate time.Time,
	timeWindow string,
	method string,
	charge float64,
	steps []TrackingStep,
) DeliveryRecord {
	return DeliveryRecord{
		address:       address,
		scheduledDate: scheduledDate,
		timeWindow:    timeWindow,
		method:        method,
		charge:        charge,
		steps:         steps,
	}
}

// Address returns the delivery destination.
func (d *DeliveryRecord) Address() Address {
	return d.address
}

// ScheduledDate returns the agreed delivery date.
func (d *DeliveryRecord) ScheduledDate() time.Time {
	return d.scheduledDate
}

// TimeWindow returns the agreed delivery time window, e.g. "09:00-12:00".
func (d *DeliveryRecord) TimeWindow() string {
	return d.timeWindow
}

// Method returns the delivery method.
func (d *DeliveryRecord) Method() string {
	return d.method
}

// Charge returns the delivery surcharge settled at order creation.
func (d *DeliveryRecord) Charge() float64 {
	return d.charge
}

// Steps returns a copy of the tracking history in append order.
// The history itself can only grow through appendStep.
func (d *DeliveryRecord) Steps() []TrackingStep {
	steps := make([]TrackingStep, len(d.steps))
	copy(steps, d.steps)
	return steps
}

// CurrentStatus returns the status of the most recent tracking step,
// or Unknown when the history is still empty.
func (d *DeliveryRecord) CurrentStatus() Status {
	if len(d.steps) == 0 {
		return Unknown
	}
	return d.steps[len(d.steps)-1].status
}

// appendStep adds a step to the history, enforcing monotonically
// non-decreasing timestamps.
func (d *DeliveryRecord) appendStep(step TrackingStep) error {
	if err := step.Validate(); err != nil {
		return err
	}

	if n := len(d.steps); n > 0 && step.at.Before(d.steps[n-1].at) {
		return errs.NewValueIsInvalidErrorWithCause("tracking step timestamp",
			errors.New("step timestamp precedes the latest recorded step"))
	}

	d.steps = append(d.steps, step)
	return nil
}
