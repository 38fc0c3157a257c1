package infra

import (
	"log"

	"github.com/tranvu/cinesync/config"
	"github.com/tranvu/cinesync/infra/produce"
)

type Infra struct {
	Logger   *LoggerClient
	Redis    *RedisClient
	Minio    *MinioClient
	RabbitMQ *RabbitMQClient
	Fetch    *FetchService
	Produce  *produce.Produce
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	if _, err := InitMetrics(cfg.EnvConfig); err != nil {
		log.Printf("Warning: runtime metrics disabled: %v", err)
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	minio := InitMinioClient(cfg.EnvConfig)
	if minio == nil {
		panic("Failed to initialize MinIO service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	produceService := produce.InitProduce(rabbitMQ.Channel)
	if produceService == nil {
		panic("Failed to initialize Produce service")
	}

	infraInstance = &Infra{
		Logger:   logger,
		Redis:    redis,
		Minio:    minio,
		RabbitMQ: rabbitMQ,
		Fetch:    InitFetchService(),
		Produce:  produceService,
	}

	return infraInstance
}
