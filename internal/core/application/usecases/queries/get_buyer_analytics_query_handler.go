package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetBuyerAnalyticsQueryHandler computes a buyer's order aggregates with a
// single SQL statement over the orders table. Results are served cache-aside
// from Redis with a short TTL; a cache failure falls through to the database.
type GetBuyerAnalyticsQueryHandler struct {
	db     *gorm.DB
	cache  Cache
	logger *slog.Logger
}

// NewGetBuyerAnalyticsQueryHandler creates a handler for buyer analytics.
// A nil cache disables caching.
func NewGetBuyerAnalyticsQueryHandler(db *gorm.DB, cache Cache, logger *slog.Logger) GetBuyerAnalyticsQueryHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return GetBuyerAnalyticsQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "buyer_analytics"),
	}
}

// Handle executes the analytics query. An empty window yields an all-zero
// summary, never an error.
func (h GetBuyerAnalyticsQueryHandler) Handle(
	ctx context.Context,
	query GetBuyerAnalyticsQuery,
) (BuyerAnalyticsResponse, error) {
	if err := query.Validate(); err != nil {
		return BuyerAnalyticsResponse{}, err
	}

	cacheKey := fmt.Sprintf("analytics:buyer:%s:%s", query.BuyerID(), query.Period())
	if cached, ok := h.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	var response BuyerAnalyticsResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(total), 0),
			COALESCE(SUM(saved_amount), 0),
			COALESCE(AVG(total), 0),
			COUNT(*) FILTER (WHERE status = ?)
		FROM orders
		WHERE buyer_id = ? AND created_at >= ?
	`, int(order.Delivered), query.BuyerID().Bytes(), query.Period().WindowStart(nowFunc())).Row()

	if err := row.Scan(
		&response.TotalOrders,
		&response.TotalSpent,
		&response.TotalSaved,
		&response.AverageOrderValue,
		&response.DeliveredOrders,
	); err != nil {
		return BuyerAnalyticsResponse{}, err
	}

	h.toCache(ctx, cacheKey, response)
	return response, nil
}

func (h GetBuyerAnalyticsQueryHandler) fromCache(ctx context.Context, key string) (BuyerAnalyticsResponse, bool) {
	if h.cache == nil {
		return BuyerAnalyticsResponse{}, false
	}

	raw, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("analytics cache read failed", "key", key, "error", err)
		return BuyerAnalyticsResponse{}, false
	}
	if raw == "" {
		return BuyerAnalyticsResponse{}, false
	}

	var response BuyerAnalyticsResponse
	if err = json.Unmarshal([]byte(raw), &response); err != nil {
		h.logger.Warn("analytics cache entry is corrupt", "key", key, "error", err)
		return BuyerAnalyticsResponse{}, false
	}
	return response, true
}

func (h GetBuyerAnalyticsQueryHandler) toCache(ctx context.Context, key string, response BuyerAnalyticsResponse) {
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
