package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tranvu/cinesync/config"
	"github.com/tranvu/cinesync/http/controller"
	routes "github.com/tranvu/cinesync/http/route"
	infraPkg "github.com/tranvu/cinesync/infra"
	"github.com/tranvu/cinesync/repository"
	"github.com/tranvu/cinesync/room"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	if cfg.EnvConfig.Environment.Mode != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(cfg, infra)
	hub := room.NewHub(repo.RoomStateRepo, infra.Logger)

	ctrl := controller.NewController(cfg, infra, repo, hub)
	router := routes.SetupRouter(ctrl)

	addr := ":" + cfg.EnvConfig.Server.Port
	log.Println("HTTP Server started on", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
