package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tranvu/cinesync/config"
	"github.com/tranvu/cinesync/infra"
	"github.com/tranvu/cinesync/repository"
	"github.com/tranvu/cinesync/room"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Hub        *room.Hub
}

func NewController(cfg *config.Config, inf *infra.Infra, repo *repository.Repository, hub *room.Hub) *Controller {
	return &Controller{
		Config:     cfg,
		Infra:      inf,
		Repository: repo,
		Hub:        hub,
	}
}

func (ctrl *Controller) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rooms":  ctrl.Hub.RoomCount(),
		"time":   time.Now().Format(time.RFC3339),
	})
}
