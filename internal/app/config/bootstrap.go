package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Client
	PostgresDB     *sqlx.DB
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	Logger         *zap.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// WorkerStops are called in order during Shutdown
	WorkerStops []func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	for _, stop := range b.WorkerStops {
		stop()
	}
	if len(b.WorkerStops) > 0 {
		log.Println("Successfully stopped background workers")
	}

	if b.PostgresDB != nil {
		err := b.PostgresDB.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing Postgres")
	}

	if b.MongoDB != nil {
		err := b.MongoDB.Disconnect(ctx)
		if err != nil {
			return err
		}
		log.Println("Successfully closing MongoDB")
	}

	err := b.Redis.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	if b.RabbitMQ != nil {
		err = b.RabbitMQ.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
