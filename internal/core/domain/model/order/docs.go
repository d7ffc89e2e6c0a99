// Package order provides the Order aggregate root of the settlement engine:
// settled line items with tagged price sources, an append-only delivery
// tracking history, an embedded payment record, post-delivery ratings and
// support issues, and the lifecycle state machine that drives status changes.
//
// Key business rules:
//   - Totals are derived from line items at construction; total = subtotal +
//     delivery charge and payment amount = total hold by construction
//   - The tracking history is an event log: append and read only, never edit
//   - The order's status field always mirrors the latest tracking step
//   - Delivered, cancelled, returned and refunded are terminal states that
//     reject every further transition
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
