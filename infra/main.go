package infra

import (
	"log"

	"github.com/tnqbao/gau-bucketlist-service/config"
	"github.com/tnqbao/gau-bucketlist-service/infra/produce"
)

type Infra struct {
	Postgres  *PostgresClient
	Redis     *RedisClient
	Logger    *LoggerClient
	RabbitMQ  *RabbitMQClient
	Produce   *produce.Produce
	Telemetry *Telemetry
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	telemetry := InitTelemetry(cfg.EnvConfig)

	// Redis is optional: identity lookups fall back to the database.
	var redis *RedisClient
	if cfg.EnvConfig.Redis.Host != "" {
		redis = InitRedisClient(cfg.EnvConfig)
	} else {
		log.Println("Warning: REDIS_HOST not set, identity cache disabled")
	}

	// RabbitMQ is optional: lifecycle events are skipped when unavailable.
	var rabbitMQ *RabbitMQClient
	var produceService *produce.Produce
	if cfg.EnvConfig.RabbitMQ.Host != "" {
		client, err := InitRabbitMQClient(cfg.EnvConfig)
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, lifecycle events disabled: %v", err)
		} else {
			rabbitMQ = client
			produceService = produce.InitProduce(client.Channel)
		}
	}

	infraInstance = &Infra{
		Postgres:  postgres,
		Redis:     redis,
		Logger:    logger,
		RabbitMQ:  rabbitMQ,
		Produce:   produceService,
		Telemetry: telemetry,
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}
