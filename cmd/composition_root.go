package cmd

import (
	"log/slog"

	httpin "marketplace/internal/adapters/in/http"
	kafkain "marketplace/internal/adapters/in/kafka"
	kafkaout "marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/rediscache"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  *kafkaout.OrderChangedPublisher
	cache      *rediscache.Cache
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from the opened infrastructure
// connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher *kafkaout.OrderChangedPublisher,
	cache *rediscache.Cache,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		cache:      cache,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateSubmitRatingCommandHandler() commands.SubmitRatingCommandHandler {
	return commands.NewSubmitRatingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateReportIssueCommandHandler() commands.ReportIssueCommandHandler {
	return commands.NewReportIssueCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateIssueStatusCommandHandler() commands.UpdateIssueStatusCommandHandler {
	return commands.NewUpdateIssueStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	return commands.NewCancelStaleOrdersCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBuyerAnalyticsQueryHandler() queries.GetBuyerAnalyticsQueryHandler {
	return queries.NewGetBuyerAnalyticsQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetSellerAnalyticsQueryHandler() queries.GetSellerAnalyticsQueryHandler {
	return queries.NewGetSellerAnalyticsQueryHandler(c.gormDB, c.cache, c.logger)
}

// CreateHTTPServer assembles the REST API with all its handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateSubmitRatingCommandHandler(),
		c.CreateReportIssueCommandHandler(),
		c.CreateUpdateIssueStatusCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetBuyerAnalyticsQueryHandler(),
		c.CreateGetSellerAnalyticsQueryHandler(),
		httpin.NewTokenVerifier(c.config.JWTSecret),
	)
}

// CreatePaymentConsumer assembles the Kafka consumer for payment events.
func (c *CompositionRoot) CreatePaymentConsumer() *kafkain.PaymentConsumer {
	return kafkain.NewPaymentConsumer(
		[]string{c.config.KafkaHost},
		c.config.KafkaPaymentCompletedTopic,
		c.config.KafkaConsumerGroup,
		c.CreateConfirmPaymentCommandHandler(),
		c.logger,
	)
}

// CreateJobManager assembles the background job scheduler.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCancelStaleOrdersCommandHandler(),
		c.config.StaleOrderMaxAge,
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
