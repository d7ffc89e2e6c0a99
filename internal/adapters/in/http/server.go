// Package http exposes the marketplace REST API on Echo.
// Authenticated parties place orders, drive their lifecycle, rate and raise
// issues, and read their analytics summaries.
package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	submitRatingHandler      commands.SubmitRatingCommandHandler
	reportIssueHandler       commands.ReportIssueCommandHandler
	updateIssueStatusHandler commands.UpdateIssueStatusCommandHandler

	getOrderHandler        queries.GetOrderQueryHandler
	buyerAnalyticsHandler  queries.GetBuyerAnalyticsQueryHandler
	sellerAnalyticsHandler queries.GetSellerAnalyticsQueryHandler

	verifier *TokenVerifier
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	submitRatingHandler commands.SubmitRatingCommandHandler,
	reportIssueHandler commands.ReportIssueCommandHandler,
	updateIssueStatusHandler commands.UpdateIssueStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	buyerAnalyticsHandler queries.GetBuyerAnalyticsQueryHandler,
	sellerAnalyticsHandler queries.GetSellerAnalyticsQueryHandler,
	verifier *TokenVerifier,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		submitRatingHandler:      submitRatingHandler,
		reportIssueHandler:       reportIssueHandler,
		updateIssueStatusHandler: updateIssueStatusHandler,
		getOrderHandler:          getOrderHandler,
		buyerAnalyticsHandler:    buyerAnalyticsHandler,
		sellerAnalyticsHandler:   sellerAnalyticsHandler,
		verifier:                 verifier,
	}
}

// RegisterRoutes mounts the API on the echo instance. Everything under
// /api/v1 requires a bearer token; the health probe does not.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", s.verifier.Middleware())
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/rating", s.SubmitRating)
	api.POST("/orders/:id/issues", s.ReportIssue)
	api.POST("/orders/:id/issues/:issueID/status", s.UpdateIssueStatus)
	api.GET("/analytics/vendor", s.GetBuyerAnalytics)
	api.GET("/analytics/supplier", s.GetSellerAnalytics)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// OrderItemRequest is one requested product line of a new order.
type OrderItemRequest struct {
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
}

// DeliveryRequest is the destination and delivery preferences of a new order.
type DeliveryRequest struct {
	Street        string    `json:"street"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PostalCode    string    `json:"postalCode"`
	ScheduledDate time.Time `json:"scheduledDate"`
	TimeWindow    string    `json:"timeWindow"`
	Method        string    `json:"method"`
}

// CreateOrderRequest is the request body for placing an order.
type CreateOrderRequest struct {
	SellerID      string             `json:"sellerId"`
	Items         []OrderItemRequest `json:"items"`
	Delivery      DeliveryRequest    `json:"delivery"`
	PaymentMethod string             `json:"paymentMethod"`
	Instructions  string             `json:"instructions"`
}

// CreateOrderResponse returns the identifier assigned to a placed order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// CreateOrder handles POST /api/v1/orders. Only buyers place orders; the
// buyer is taken from the token, never from the body.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok || !principal.IsBuyer() {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Only vendors can place orders",
		})
	}

	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	sellerID, err := kernel.UUIDFromString(request.SellerID)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.OrderItemInput, len(request.Items))
	for i, item := range request.Items {
		items[i] = commands.OrderItemInput{
			ProductName: item.ProductName,
			Category:    item.Category,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Price:       item.Price,
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		principal.ID,
		sellerID,
		items,
		commands.DeliveryInput{
			Street:        request.Delivery.Street,
			City:          request.Delivery.City,
			State:         request.Delivery.State,
			PostalCode:    request.Delivery.PostalCode,
			ScheduledDate: request.Delivery.ScheduledDate,
			TimeWindow:    request.Delivery.TimeWindow,
			Method:        request.Delivery.Method,
		},
		request.PaymentMethod,
		request.Instructions,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id. Only the order's own parties may
// read it.
func (s *Server) GetOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	if !principal.ID.IsEqual(response.BuyerID) && !principal.ID.IsEqual(response.SellerID) {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Order belongs to another party",
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatusRequest is the request body for a lifecycle change.
type UpdateOrderStatusRequest struct {
	Status      string `json:"status"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(
		orderID, s.actorFor(principal), target, request.Location, request.Description)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitRatingRequest is the request body for a buyer's post-delivery rating.
type SubmitRatingRequest struct {
	Quality  int    `json:"quality"`
	Delivery int    `json:"delivery"`
	Service  int    `json:"service"`
	Value    int    `json:"value"`
	Review   string `json:"review"`
}

// SubmitRating handles POST /api/v1/orders/:id/rating.
func (s *Server) SubmitRating(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok || !principal.IsBuyer() {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Only vendors can rate orders",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request SubmitRatingRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSubmitRatingCommand(orderID, principal.ID, order.RatingScores{
		Quality:  request.Quality,
		Delivery: request.Delivery,
		Service:  request.Service,
		Value:    request.Value,
	}, request.Review)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.submitRatingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ReportIssueRequest is the request body for raising an issue on an order.
type ReportIssueRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// ReportIssueResponse returns the identifier assigned to a raised issue.
type ReportIssueResponse struct {
	IssueID string `json:"issueId"`
}

// ReportIssue handles POST /api/v1/orders/:id/issues.
func (s *Server) ReportIssue(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request ReportIssueRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	issueID := kernel.NewUUID()
	cmd, err := commands.NewReportIssueCommand(
		issueID, orderID, principal.ID, request.Subject, request.Description)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.reportIssueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ReportIssueResponse{IssueID: issueID.String()})
}

// UpdateIssueStatusRequest is the request body for moving an issue through
// its workflow.
type UpdateIssueStatusRequest struct {
	Status string `json:"status"`
}

// UpdateIssueStatus handles POST /api/v1/orders/:id/issues/:issueID/status.
func (s *Server) UpdateIssueStatus(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	issueID, err := kernel.UUIDFromString(ctx.Param("issueID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request UpdateIssueStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.IssueStatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateIssueStatusCommand(orderID, issueID, s.actorFor(principal), target)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateIssueStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetBuyerAnalytics handles GET /api/v1/analytics/vendor. The window is
// selected with the period query parameter and defaults to a month.
func (s *Server) GetBuyerAnalytics(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok || !principal.IsBuyer() {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Vendor analytics require a vendor token",
		})
	}

	period, err := queries.PeriodFromString(ctx.QueryParam("period"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetBuyerAnalyticsQuery(principal.ID, period)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.buyerAnalyticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetSellerAnalytics handles GET /api/v1/analytics/supplier.
func (s *Server) GetSellerAnalytics(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok || !principal.IsSeller() {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Supplier analytics require a supplier token",
		})
	}

	period, err := queries.PeriodFromString(ctx.QueryParam("period"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetSellerAnalyticsQuery(principal.ID, period)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.sellerAnalyticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) actorFor(principal Principal) commands.Actor {
	kind := commands.ActorBuyer
	if principal.IsSeller() {
		kind = commands.ActorSeller
	}
	return commands.Actor{ID: principal.ID, Kind: kind}
}
