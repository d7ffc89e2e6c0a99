package order

import (
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// PaymentStatus represents the settlement state of an order's payment.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means the payment has not been made yet.
	PaymentPending

	// PaymentProcessing means the gateway is processing the payment.
	PaymentProcessing

	// PaymentCompleted means the payment settled successfully.
	PaymentCompleted

	// PaymentFailed means the payment attempt failed.
	PaymentFailed

	// PaymentRefunded means the payment was returned to the buyer.
	// Only status bookkeeping: the engine moves no actual money.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:    "unknown",
		PaymentPending:    "pending",
		PaymentProcessing: "processing",
		PaymentCompleted:  "completed",
		PaymentFailed:     "failed",
		PaymentRefunded:   "refunded",
	}
}

// String returns the wire representation of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the payment status is one of the defined states.
func (s PaymentStatus) Validate() error {
	if s == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// PaymentRecord is the payment sub-record embedded in an order. Exactly one
// record exists per order and its amount equals the order's total at creation
// time. FinalAmount tracks the amount after any later adjustment (refunds);
// it starts equal to Amount.
type PaymentRecord struct {
	method         string
	status         PaymentStatus
	amount         float64
	finalAmount    float64
	transactionRef string
	paidAt         *time.Time
}

// NewPaymentRecord seeds the payment record at order creation.
// The record starts pending with no transaction reference.
func NewPaymentRecord(method string, amount float64) (PaymentRecord, error) {
	if method == "" {
		return PaymentRecord{}, errs.NewValueIsRequiredError("payment method")
	}

	if amount <= 0 {
		return PaymentRecord{}, errs.NewValueIsInvalidErrorWithCause("payment amount",
			fmt.Errorf("%v is not greater than 0", amount))
	}

	return PaymentRecord{
		method:      method,
		status:      PaymentPending,
		amount:      amount,
		finalAmount: amount,
	}, nil
}

// RestorePaymentRecord rehydrates a payment record from persistence.
func RestorePaymentRecord(
	method string,
	status PaymentStatus,
	amount float64,
	finalAmount float64,
	transactionRef string,
	paidAt *time.Time,
) PaymentRecord {
	return PaymentRecord{
		method:         method,
		status:         status,
		amount:         amount,
		finalAmount:    finalAmount,
		transactionRef: transactionRef,
		paidAt:         paidAt,
	}
}

// Method returns the payment method.
func (p *PaymentRecord) Method() string {
	return p.method
}

// Status returns the current payment status.
func (p *PaymentRecord) Status() PaymentStatus {
	return p.status
}

// Amount returns the payment amount settled at order creation.
func (p *PaymentRecord) Amount() float64 {
	return p.amount
}

// FinalAmount returns the amount after any later adjustment.
func (p *PaymentRecord) FinalAmount() float64 {
	return p.finalAmount
}

// TransactionRef returns the external gateway transaction reference,
// empty until the payment completes.
func (p *PaymentRecord) TransactionRef() string {
	return p.transactionRef
}

// PaidAt returns when the payment completed, or nil while unpaid.
func (p *PaymentRecord) PaidAt() *time.Time {
	return p.paidAt
}

// complete marks the payment as settled with the gateway reference.
func (p *PaymentRecord) complete(transactionRef string, at time.Time) {
	p.status = PaymentCompleted
	p.transactionRef = transactionRef
	p.paidAt = &at
}

// markRefunded records that the payment was returned to the buyer.
func (p *PaymentRecord) markRefunded() {
	p.status = PaymentRefunded
	p.finalAmount = 0
}
