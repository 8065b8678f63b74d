package connection

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectGORMWithRetry opens the postgres connection, retrying with a fixed
// backoff so the api container can start before the database is ready.
func ConnectGORMWithRetry(maxRetries int, delay time.Duration) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var db *gorm.DB
	var err error

	for i := 1; i <= maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				if pingErr = sqlDB.Ping(); pingErr == nil {
					zap.L().Info("connected to postgres", zap.Int("attempt", i))
					return db, nil
				}
			}
			err = pingErr
		}

		zap.L().Warn("postgres not ready, retrying",
			zap.Int("attempt", i),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("connect postgres after %d attempts: %w", maxRetries, err)
}

// ConnectRedisWithRetry connects to redis, retrying like the postgres helper.
func ConnectRedisWithRetry(maxRetries int, delay time.Duration) (*redis.Client, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	var err error
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = client.Ping(ctx).Err()
		cancel()
		if err == nil {
			zap.L().Info("connected to redis", zap.Int("attempt", i))
			return client, nil
		}

		zap.L().Warn("redis not ready, retrying",
			zap.Int("attempt", i),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("connect redis after %d attempts: %w", maxRetries, err)
}

// KafkaBrokers reads the broker list from the environment.
func KafkaBrokers() []string {
	raw := os.Getenv("KAFKA_BROKERS")
	if raw == "" {
		raw = "localhost:9092"
	}
	return strings.Split(raw, ",")
}

// NewKafkaWriter builds a single shared writer. The topic is chosen per
// message, so one writer serves every event the api publishes.
func NewKafkaWriter() *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(KafkaBrokers()...),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewKafkaReader builds a consumer-group reader for one topic.
func NewKafkaReader(topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        KafkaBrokers(),
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // explicit commits only
	})
}
