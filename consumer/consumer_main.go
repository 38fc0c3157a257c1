package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tranvu/cinesync/config"
	"github.com/tranvu/cinesync/consumer/worker"
	infraPkg "github.com/tranvu/cinesync/infra"
	"github.com/tranvu/cinesync/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(cfg, infra)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	importConsumer := worker.NewImportConsumer(infra.RabbitMQ.Channel, infra, repo, cfg.EnvConfig.Import.MaxAttempts)
	if err := importConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start Import consumer: %v", err)
		log.Fatalf("Failed to start Import consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	if err := infra.Logger.Shutdown(context.Background()); err != nil {
		log.Printf("Logger shutdown: %v", err)
	}
	infra.RabbitMQ.Close()
}
