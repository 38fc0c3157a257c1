package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tranvu/cinesync/http/controller"
	middlewares "github.com/tranvu/cinesync/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles := middlewares.NewMiddlewares(ctrl)

	r.Use(middles.CORSMiddleware)

	r.GET("/health", ctrl.HealthCheck)
	r.POST("/login", ctrl.Login)
	r.GET("/media/*key", ctrl.ServeMedia)
	r.GET("/files", ctrl.ListFiles)
	r.GET("/party/:room", ctrl.JoinParty)

	admin := r.Group("/")
	admin.Use(middles.AdminAuthMiddleware)
	{
		admin.POST("/upload", ctrl.UploadObject)
		admin.DELETE("/files/*key", ctrl.DeleteObject)
		admin.POST("/import", ctrl.CreateImport)

		kvRoutes := admin.Group("/kv")
		{
			kvRoutes.GET("/:key", ctrl.GetKV)
			kvRoutes.POST("/:key", ctrl.PutKV)
			kvRoutes.DELETE("/:key", ctrl.DeleteKV)
		}
	}

	return r
}
