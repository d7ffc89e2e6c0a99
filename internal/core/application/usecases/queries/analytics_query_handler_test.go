package queries_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository's tracker without a unit of work.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// memoryCache is an in-process Cache used to observe cache-aside behavior.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	sets    int
	gets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return c.entries[key], nil
}

type AnalyticsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *AnalyticsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.TrackingStepDTO{},
		&orderrepo.RatingDTO{},
		&orderrepo.IssueDTO{},
	)
	suite.Require().NoError(err)

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *AnalyticsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *AnalyticsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *AnalyticsQueryHandlerTestSuite) TestBuyerAnalytics_EmptyWindow_ReturnsZeroSummary() {
	handler := queries.NewGetBuyerAnalyticsQueryHandler(suite.db, nil, nil)

	query, err := queries.NewGetBuyerAnalyticsQuery(kernel.NewUUID(), queries.PeriodMonth)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(queries.BuyerAnalyticsResponse{}, result, "Empty window should yield all-zero summary")
}

func (suite *AnalyticsQueryHandlerTestSuite) TestBuyerAnalytics_AggregatesOrdersInWindow() {
	ctx := context.Background()
	buyerID := kernel.NewUUID()

	first := suite.addOrder(buyerID, kernel.NewUUID(), time.Now())
	second := suite.addOrder(buyerID, kernel.NewUUID(), time.Now())
	suite.deliver(second)

	// An order outside the window must not count.
	suite.addOrder(buyerID, kernel.NewUUID(), time.Now().AddDate(0, -2, 0))

	// Another buyer's order must not count either.
	suite.addOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now())

	handler := queries.NewGetBuyerAnalyticsQueryHandler(suite.db, nil, nil)
	query, err := queries.NewGetBuyerAnalyticsQuery(buyerID, queries.PeriodMonth)
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(2, result.TotalOrders)
	suite.Equal(1, result.DeliveredOrders)
	suite.InDelta(first.Total()+second.Total(), result.TotalSpent, 0.001)
	suite.InDelta(first.SavedAmount()+second.SavedAmount(), result.TotalSaved, 0.001)
	suite.InDelta((first.Total()+second.Total())/2, result.AverageOrderValue, 0.001)
}

func (suite *AnalyticsQueryHandlerTestSuite) TestBuyerAnalytics_ServesSecondReadFromCache() {
	ctx := context.Background()
	buyerID := kernel.NewUUID()
	suite.addOrder(buyerID, kernel.NewUUID(), time.Now())

	cache := newMemoryCache()
	handler := queries.NewGetBuyerAnalyticsQueryHandler(suite.db, cache, nil)
	query, err := queries.NewGetBuyerAnalyticsQuery(buyerID, queries.PeriodMonth)
	suite.Require().NoError(err)

	first, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(1, cache.sets, "First read should populate the cache")

	// A write after the cached read is invisible until the entry expires.
	suite.addOrder(buyerID, kernel.NewUUID(), time.Now())

	second, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(first, second, "Second read should come from the cache")
}

func (suite *AnalyticsQueryHandlerTestSuite) TestSellerAnalytics_EmptyWindow_ReturnsZeroSummary() {
	handler := queries.NewGetSellerAnalyticsQueryHandler(suite.db, nil, nil)

	query, err := queries.NewGetSellerAnalyticsQuery(kernel.NewUUID(), queries.PeriodWeek)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(queries.SellerAnalyticsResponse{}, result, "Empty window should yield all-zero summary")
}

func (suite *AnalyticsQueryHandlerTestSuite) TestSellerAnalytics_AggregatesSalesAndItems() {
	ctx := context.Background()
	sellerID := kernel.NewUUID()

	pending := suite.addOrder(kernel.NewUUID(), sellerID, time.Now())
	delivered := suite.addOrder(kernel.NewUUID(), sellerID, time.Now())
	suite.deliver(delivered)

	suite.addOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now())

	handler := queries.NewGetSellerAnalyticsQueryHandler(suite.db, nil, nil)
	query, err := queries.NewGetSellerAnalyticsQuery(sellerID, queries.PeriodMonth)
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(2, result.TotalOrders)
	suite.Equal(1, result.PendingOrders)
	suite.Equal(1, result.DeliveredOrders)
	suite.InDelta(pending.Total()+delivered.Total(), result.TotalSales, 0.001)
	suite.Equal(10, result.TotalItemsSold, "Both orders carry a five-unit line item")
}

func (suite *AnalyticsQueryHandlerTestSuite) TestGetOrder_ReturnsCompleteReadModel() {
	ctx := context.Background()
	aggregate := suite.addOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now())
	suite.deliver(aggregate)

	rating, err := order.NewRating(order.RatingScores{Quality: 5, Delivery: 4, Service: 5, Value: 4}, "Fresh produce", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AttachBuyerRating(rating))

	issue, err := order.NewIssue(kernel.NewUUID(), aggregate.BuyerID(), "Damaged crate", "One crate arrived crushed", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.ReportIssue(issue))

	suite.Require().NoError(suite.orderRepo.Update(ctx, aggregate))

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(aggregate.ID())
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), result.ID)
	suite.Equal(aggregate.OrderNumber().String(), result.OrderNumber)
	suite.Equal("delivered", result.Status)
	suite.InDelta(aggregate.Total(), result.Total, 0.001)

	suite.Require().Len(result.Items, 1)
	suite.Equal("Onions", result.Items[0].ProductName)
	suite.Equal("catalog", result.Items[0].PriceSource)

	suite.Require().Len(result.Delivery.Steps, 2)
	suite.Equal("pending", result.Delivery.Steps[0].Status)
	suite.Equal("delivered", result.Delivery.Steps[1].Status)

	suite.Require().NotNil(result.BuyerRating)
	suite.Equal(5, result.BuyerRating.Overall)
	suite.Nil(result.SellerRating)

	suite.Require().Len(result.Issues, 1)
	suite.Equal("Damaged crate", result.Issues[0].Subject)
	suite.Equal("open", result.Issues[0].Status)
}

func (suite *AnalyticsQueryHandlerTestSuite) TestGetOrder_UnknownID_ReturnsNotFound() {
	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().Error(err)
}

func (suite *AnalyticsQueryHandlerTestSuite) addOrder(buyerID, sellerID kernel.UUID, createdAt time.Time) *order.Order {
	item, err := order.NewLineItem("Onions", "vegetables", 5, "kg", 88, 105.6, order.PriceFromCatalog)
	suite.Require().NoError(err)

	delivery, err := order.NewDeliveryRecord(
		order.Address{Street: "12 Market Road", City: "Mumbai", PostalCode: "400001"},
		createdAt.Add(24*time.Hour), "morning", "standard", 30,
	)
	suite.Require().NoError(err)

	number := kernel.NewOrderNumber()

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), number, buyerID, sellerID,
		[]order.LineItem{item}, delivery, "upi", "", createdAt,
	)
	suite.Require().NoError(err)

	err = suite.orderRepo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *AnalyticsQueryHandlerTestSuite) deliver(aggregate *order.Order) {
	err := aggregate.TransitionTo(order.Delivered, "", "Delivered to door", time.Now())
	suite.Require().NoError(err)
	err = suite.orderRepo.Update(context.Background(), aggregate)
	suite.Require().NoError(err)
}

func TestAnalyticsQueryHandlerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(AnalyticsQueryHandlerTestSuite))
}
