package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetSellerAnalyticsQueryHandler computes a seller's sales aggregates with
// raw SQL over the orders and line item tables. Results are served
// cache-aside from Redis with a short TTL.
type GetSellerAnalyticsQueryHandler struct {
	db     *gorm.DB
	cache  Cache
	logger *slog.Logger
}

// NewGetSellerAnalyticsQueryHandler creates a handler for seller analytics.
// A nil cache disables caching.
func NewGetSellerAnalyticsQueryHandler(db *gorm.DB, cache Cache, logger *slog.Logger) GetSellerAnalyticsQueryHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return GetSellerAnalyticsQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "seller_analytics"),
	}
}

// Handle executes the analytics query. An empty window yields an all-zero
// summary, never an error.
func (h GetSellerAnalyticsQueryHandler) Handle(
	ctx context.Context,
	query GetSellerAnalyticsQuery,
) (SellerAnalyticsResponse, error) {
	if err := query.Validate(); err != nil {
		return SellerAnalyticsResponse{}, err
	}

	cacheKey := fmt.Sprintf("analytics:seller:%s:%s", query.SellerID(), query.Period())
	if cached, ok := h.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	windowStart := query.Period().WindowStart(nowFunc())

	var response SellerAnalyticsResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(total), 0),
			COALESCE(AVG(total), 0),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?)
		FROM orders
		WHERE seller_id = ? AND created_at >= ?
	`, int(order.Pending), int(order.Delivered),
		query.SellerID().Bytes(), windowStart).Row()

	if err := row.Scan(
		&response.TotalOrders,
		&response.TotalSales,
		&response.AverageOrderValue,
		&response.PendingOrders,
		&response.DeliveredOrders,
	); err != nil {
		return SellerAnalyticsResponse{}, err
	}

	itemsRow := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(li.quantity), 0)
		FROM line_items li
		JOIN orders o ON o.id = li.order_id
		WHERE o.seller_id = ? AND o.created_at >= ?
	`, query.SellerID().Bytes(), windowStart).Row()

	if err := itemsRow.Scan(&response.TotalItemsSold); err != nil {
		return SellerAnalyticsResponse{}, err
	}

	h.toCache(ctx, cacheKey, response)
	return response, nil
}

func (h GetSellerAnalyticsQueryHandler) fromCache(ctx context.Context, key string) (SellerAnalyticsResponse, bool) {
	if h.cache == nil {
		return SellerAnalyticsResponse{}, false
	}

	raw, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("analytics cache read failed", "key", key, "error", err)
		return SellerAnalyticsResponse{}, false
	}
	if raw == "" {
		return SellerAnalyticsResponse{}, false
	}

	var response SellerAnalyticsResponse
	if err = json.Unmarshal([]byte(raw), &response); err != nil {
		h.logger.Warn("analytics cache entry is corrupt", "key", key, "error", err)
		return SellerAnalyticsResponse{}, false
	}
	return response, true
}

func (h GetSellerAnalyticsQueryHandler) toCache(ctx context.Context, key string, response SellerAnalyticsResponse) {
	if h.cache == nil {
		return
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err = h.cache.Set(ctx, key, string(raw), analyticsCacheTTL); err != nil {
		h.logger.Warn("analytics cache write failed", "key", key, "error", err)
	}
}
