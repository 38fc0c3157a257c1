package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/tranvu/cinesync/http/controller"
)

type Middlewares struct {
	CORSMiddleware      gin.HandlerFunc
	AdminAuthMiddleware gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) *Middlewares {
	return &Middlewares{
		CORSMiddleware:      CORSMiddleware(ctrl.Config.EnvConfig),
		AdminAuthMiddleware: AuthMiddleware(ctrl.Config.EnvConfig, "admin"),
	}
}
