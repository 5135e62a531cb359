package config

import (
	"os"
	"strings"

	"store-service/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	DB    DB
	Kafka Kafka
}

type DB struct {
	database.Config
}

type Kafka struct {
	Enabled bool
	Brokers []string
	Topic   string
}

func Load(log *zap.Logger) *Config {
	brokers := splitAndTrim(os.Getenv("KAFKA_BROKERS"))
	return &Config{
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		// Kafka опциональна: без брокеров события просто не публикуются
		Kafka: Kafka{
			Enabled: len(brokers) > 0,
			Brokers: brokers,
			Topic:   os.Getenv("KAFKA_TOPIC_ORDERS"),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
