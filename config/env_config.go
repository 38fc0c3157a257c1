package config

import (
	"os"
	"strconv"
	"strings"
)

type EnvConfig struct {
	Server struct {
		Port string
	}
	JWT struct {
		SecretKey     string
		ExpireSeconds int
	}
	Auth struct {
		AdminSecret string
	}
	CORS struct {
		AllowDomains string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		Database int
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Minio struct {
		Endpoint   string
		AccessKey  string
		SecretKey  string
		UseSSL     bool
		Bucket     string
		QuotaBytes int64
	}
	Import struct {
		MaxAttempts int
	}
	OTLP struct {
		Endpoint    string
		ServiceName string
	}
	Environment struct {
		Mode string
	}
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	config.Server.Port = os.Getenv("PORT")
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	// JWT
	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")
	if val := os.Getenv("JWT_EXPIRE"); val != "" {
		if expire, err := strconv.Atoi(val); err == nil {
			config.JWT.ExpireSeconds = expire
		}
	}
	if config.JWT.ExpireSeconds == 0 {
		config.JWT.ExpireSeconds = 3600 * 24
	}

	config.Auth.AdminSecret = os.Getenv("ADMIN_SECRET")

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")

	// Redis
	config.Redis.Host = os.Getenv("REDIS_HOST")
	if config.Redis.Host == "" {
		config.Redis.Host = "localhost"
	}
	config.Redis.Port = os.Getenv("REDIS_PORT")
	if config.Redis.Port == "" {
		config.Redis.Port = "6379"
	}
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	// RabbitMQ
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	if config.RabbitMQ.Host == "" {
		config.RabbitMQ.Host = "localhost"
	}
	config.RabbitMQ.Port = os.Getenv("RABBITMQ_PORT")
	if config.RabbitMQ.Port == "" {
		config.RabbitMQ.Port = "5672"
	}
	config.RabbitMQ.Username = os.Getenv("RABBITMQ_USER")
	if config.RabbitMQ.Username == "" {
		config.RabbitMQ.Username = "guest"
	}
	config.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")
	if config.RabbitMQ.Password == "" {
		config.RabbitMQ.Password = "guest"
	}

	// MinIO
	config.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Minio.AccessKey = os.Getenv("MINIO_ACCESS_KEY")
	config.Minio.SecretKey = os.Getenv("MINIO_SECRET_KEY")
	config.Minio.UseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	config.Minio.Bucket = os.Getenv("MINIO_BUCKET")
	if config.Minio.Bucket == "" {
		config.Minio.Bucket = "cinesync-media"
	}
	if quotaStr := os.Getenv("STORAGE_QUOTA_BYTES"); quotaStr != "" {
		if quota, err := strconv.ParseInt(quotaStr, 10, 64); err == nil {
			config.Minio.QuotaBytes = quota
		}
	}
	if config.Minio.QuotaBytes == 0 {
		config.Minio.QuotaBytes = 10 << 30 // Default 10GiB
	}

	if val := os.Getenv("IMPORT_MAX_ATTEMPTS"); val != "" {
		if attempts, err := strconv.Atoi(val); err == nil {
			config.Import.MaxAttempts = attempts
		}
	}
	if config.Import.MaxAttempts == 0 {
		config.Import.MaxAttempts = 5
	}

	// OpenTelemetry
	otlpEndpoint := os.Getenv("OTLP_ENDPOINT")
	otlpEndpoint = strings.TrimPrefix(otlpEndpoint, "https://")
	otlpEndpoint = strings.TrimPrefix(otlpEndpoint, "http://")
	config.OTLP.Endpoint = otlpEndpoint
	config.OTLP.ServiceName = os.Getenv("SERVICE_NAME")
	if config.OTLP.ServiceName == "" {
		config.OTLP.ServiceName = "cinesync"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	return &config
}
