package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"marketplace/cmd"
	kafkaout "marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres/catalogrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/partyrepo"
	"marketplace/internal/adapters/out/rediscache"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	sqlDB := mustConnectDB(configs)
	defer sqlDB.Close()

	gormDB := mustOpenGorm(sqlDB)
	mustMigrate(gormDB)

	publisher := kafkaout.NewOrderChangedPublisher(
		[]string{configs.KafkaHost}, configs.KafkaOrderChangedTopic)
	defer publisher.Close()

	cache := rediscache.NewCache(configs.RedisAddr)
	defer cache.Close()
	if err := cache.Ping(context.Background()); err != nil {
		logger.Warn("redis is unreachable, analytics caching disabled", "error", err)
	}

	root := cmd.NewCompositionRoot(configs, gormDB, publisher, cache, logger)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	consumer := root.CreatePaymentConsumer()
	defer consumer.Close()
	go func() {
		if err := consumer.Consume(consumerCtx); err != nil && consumerCtx.Err() == nil {
			logger.Error("payment consumer stopped", "error", err)
		}
	}()

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:                   goDotEnvVariable("HTTP_PORT"),
		DBHost:                     goDotEnvVariable("DB_HOST"),
		DBPort:                     goDotEnvVariable("DB_PORT"),
		DBUser:                     goDotEnvVariable("DB_USER"),
		DBPassword:                 goDotEnvVariable("DB_PASSWORD"),
		DBName:                     goDotEnvVariable("DB_NAME"),
		DBSslMode:                  goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:                  goDotEnvVariable("KAFKA_HOST"),
		KafkaConsumerGroup:         goDotEnvVariable("KAFKA_CONSUMER_GROUP"),
		KafkaPaymentCompletedTopic: goDotEnvVariable("KAFKA_PAYMENT_COMPLETED_TOPIC"),
		KafkaOrderChangedTopic:     goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
		RedisAddr:                  goDotEnvVariable("REDIS_ADDR"),
		JWTSecret:                  goDotEnvVariable("JWT_SECRET"),
		StaleOrderMaxAge:           staleOrderMaxAge(),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func staleOrderMaxAge() time.Duration {
	raw := goDotEnvVariable("STALE_ORDER_MAX_AGE")
	if raw == "" {
		return 30 * time.Minute
	}

	maxAge, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid STALE_ORDER_MAX_AGE: %v", err)
	}
	return maxAge
}

func mustConnectDB(configs cmd.Config) *sql.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if err = sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	return sqlDB
}

func mustOpenGorm(sqlDB *sql.DB) *gorm.DB {
	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open gorm: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.TrackingStepDTO{},
		&orderrepo.RatingDTO{},
		&orderrepo.IssueDTO{},
		&catalogrepo.EntryDTO{},
		&catalogrepo.ServiceAreaDTO{},
		&partyrepo.PartyDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func startWebServer(root cmd.CompositionRoot, port string) {
	e := echo.New()
	root.CreateHTTPServer().RegisterRoutes(e)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
