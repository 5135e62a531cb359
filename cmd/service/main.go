package main

import (
	"os"
	"os/signal"
	"syscall"

	"store-service/config"
	"store-service/internal/producer"
	"store-service/internal/repository"
	"store-service/internal/service"
	"store-service/pkg/database"
	"store-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	var events service.EventBus
	if cfg.Kafka.Enabled {
		p := producer.NewOrderEventsProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer p.Close()
		events = p
		log.Info("Kafka producer включён", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	repos := repository.New(db)
	catalog := service.NewCatalogService(repos)
	orders := service.NewOrderService(repos, service.NewOpaqueCustomerDirectory(), events)
	lineItems := service.NewLineItemService(repos, events)
	_, _, _ = catalog, orders, lineItems

	log.Info("store-service готов")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down store-service...")
	log.Info("store-service stopped gracefully")
}
