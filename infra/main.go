package infra

import (
	"context"
	"log"

	"github.com/tnqbao/gau-drive/config"
	"github.com/tnqbao/gau-drive/infra/produce"
)

type Infra struct {
	Redis    *RedisClient
	Postgres *PostgresClient
	Logger   *LoggerClient
	RabbitMQ *RabbitMQClient
	Produce  *produce.Produce
	Minio    *MinioClient
}

func InitInfra(cfg *config.Config) *Infra {
	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	minio := InitMinioClient(cfg.EnvConfig)
	if minio == nil {
		panic("Failed to initialize MinIO service")
	}

	// The service bucket is ensured once at startup; never on the request path.
	if err := minio.EnsureBucket(context.Background(), cfg.EnvConfig.Minio.Bucket); err != nil {
		log.Fatalf("Failed to ensure MinIO bucket %q: %v", cfg.EnvConfig.Minio.Bucket, err)
	}

	// RabbitMQ is optional - file events are best effort and the service
	// stays up without a broker.
	var produceService *produce.Produce
	rabbitMQ, err := InitRabbitMQClient(cfg.EnvConfig)
	if err != nil {
		log.Printf("Warning: Failed to initialize RabbitMQ service: %v (file events will not be published)", err)
		rabbitMQ = nil
	} else {
		produceService = produce.InitProduce(rabbitMQ.Channel, cfg.EnvConfig.RabbitMQ.Queue)
	}

	return &Infra{
		Redis:    redis,
		Postgres: postgres,
		Logger:   logger,
		RabbitMQ: rabbitMQ,
		Produce:  produceService,
		Minio:    minio,
	}
}
