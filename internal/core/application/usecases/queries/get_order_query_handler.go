package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler assembles the complete order read model with raw SQL
// over the order tables. The view is read-optimized and bypasses the domain
// aggregate entirely.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order views.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the full order view.
// Returns an object-not-found error when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	response, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	if response.Items, err = h.loadItems(ctx, query.OrderID()); err != nil {
		return OrderResponse{}, err
	}

	if response.Delivery.Steps, err = h.loadSteps(ctx, query.OrderID()); err != nil {
		return OrderResponse{}, err
	}

	if err = h.loadRatings(ctx, query.OrderID(), &response); err != nil {
		return OrderResponse{}, err
	}

	if response.Issues, err = h.loadIssues(ctx, query.OrderID()); err != nil {
		return OrderResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (OrderResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id, order_number, buyer_id, seller_id, status,
			subtotal, delivery_charge, total, market_price_total,
			saved_amount, savings_percentage,
			instructions, cancelled_by,
			created_at, confirmed_at, packed_at, dispatched_at, delivered_at, cancelled_at,
			delivery_street, delivery_city, delivery_state, delivery_postal_code,
			delivery_scheduled_date, delivery_time_window, delivery_method,
			payment_method, payment_status, payment_amount, payment_final_amount,
			payment_transaction_ref, payment_paid_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		response    OrderResponse
		id          uuid.UUID
		buyerID     uuid.UUID
		sellerID    uuid.UUID
		status      int
		confirmedAt sql.NullTime
		packedAt    sql.NullTime
		dispatched  sql.NullTime
		deliveredAt sql.NullTime
		cancelledAt sql.NullTime
		paymentInt  int
		paidAt      sql.NullTime
	)

	err := row.Scan(
		&id, &response.OrderNumber, &buyerID, &sellerID, &status,
		&response.Subtotal, &response.DeliveryCharge, &response.Total, &response.MarketPriceTotal,
		&response.SavedAmount, &response.SavingsPercentage,
		&response.Instructions, &response.CancelledBy,
		&response.CreatedAt, &confirmedAt, &packedAt, &dispatched, &deliveredAt, &cancelledAt,
		&response.Delivery.Street, &response.Delivery.City, &response.Delivery.State,
		&response.Delivery.PostalCode, &response.Delivery.ScheduledDate,
		&response.Delivery.TimeWindow, &response.Delivery.Method,
		&response.Payment.Method, &paymentInt, &response.Payment.Amount,
		&response.Payment.FinalAmount, &response.Payment.TransactionRef, &paidAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return OrderResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if response.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return OrderResponse{}, err
	}
	if response.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
		return OrderResponse{}, err
	}

	response.Status = order.Status(status).String()
	response.Payment.Status = order.PaymentStatus(paymentInt).String()
	response.Delivery.Charge = response.DeliveryCharge
	response.ConfirmedAt = nullableTime(confirmedAt)
	response.PackedAt = nullableTime(packedAt)
	response.DispatchedAt = nullableTime(dispatched)
	response.DeliveredAt = nullableTime(deliveredAt)
	response.CancelledAt = nullableTime(cancelledAt)
	response.Payment.PaidAt = nullableTime(paidAt)
	return response, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]LineItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_name, category, quantity, unit, unit_price, line_total, market_price, price_source
		FROM line_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LineItemView, 0)
	for rows.Next() {
		var item LineItemView
		var source int
		if err = rows.Scan(
			&item.ProductName, &item.Category, &item.Quantity, &item.Unit,
			&item.UnitPrice, &item.LineTotal, &item.MarketPrice, &source,
		); err != nil {
			return nil, err
		}
		item.PriceSource = order.PriceSource(source).String()
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h GetOrderQueryHandler) loadSteps(ctx context.Context, orderID kernel.UUID) ([]TrackingStepView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, location, description, recorded_at
		FROM tracking_steps
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]TrackingStepView, 0)
	for rows.Next() {
		var step TrackingStepView
		var status int
		if err = rows.Scan(&status, &step.Location, &step.Description, &step.At); err != nil {
			return nil, err
		}
		step.Status = order.Status(status).String()
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func (h GetOrderQueryHandler) loadRatings(ctx context.Context, orderID kernel.UUID, response *OrderResponse) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT rated_by, overall, quality, delivery, service, value, review, rated_at
		FROM order_ratings
		WHERE order_id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var view RatingView
		var ratedBy string
		if err = rows.Scan(
			&ratedBy, &view.Overall, &view.Quality, &view.Delivery,
			&view.Service, &view.Value, &view.Review, &view.RatedAt,
		); err != nil {
			return err
		}

		switch ratedBy {
		case "buyer":
			rating := view
			response.BuyerRating = &rating
		case "seller":
			rating := view
			response.SellerRating = &rating
		}
	}
	return rows.Err()
}

func (h GetOrderQueryHandler) loadIssues(ctx context.Context, orderID kernel.UUID) ([]IssueView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, raised_by, subject, description, status, opened_at, resolved_at
		FROM order_issues
		WHERE order_id = ?
		ORDER BY opened_at
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issues := make([]IssueView, 0)
	for rows.Next() {
		var (
			view       IssueView
			id         uuid.UUID
			raisedBy   uuid.UUID
			status     int
			resolvedAt sql.NullTime
		)
		if err = rows.Scan(&id, &raisedBy, &view.Subject, &view.Description, &status, &view.OpenedAt, &resolvedAt); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.RaisedBy, err = kernel.UUIDFromBytes(raisedBy[:]); err != nil {
			return nil, err
		}
		view.Status = order.IssueStatus(status).String()
		view.ResolvedAt = nullableTime(resolvedAt)
		issues = append(issues, view)
	}
	return issues, rows.Err()
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
