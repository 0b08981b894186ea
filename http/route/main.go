package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-drive/http/controller"
	middlewares "github.com/tnqbao/gau-drive/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	apiRoutes := r.Group("/api/v1")
	{
		pingRoutes := apiRoutes.Group("/ping")
		{
			pingRoutes.GET("/", ctrl.Ping)
		}

		userRoutes := apiRoutes.Group("/users")
		{
			userRoutes.POST("/register", ctrl.Register)
			userRoutes.POST("/auth", ctrl.Auth)
			userRoutes.GET("/status", middles.AuthMiddleware, ctrl.Status)
		}

		fileRoutes := apiRoutes.Group("/files")
		{
			fileRoutes.Use(middles.AuthMiddleware)

			fileRoutes.GET("/", ctrl.ListFiles)
			fileRoutes.GET("/folder", ctrl.ListFolder)
			fileRoutes.POST("/upload", ctrl.Upload)
			fileRoutes.GET("/download", ctrl.Download)
			fileRoutes.POST("/search", ctrl.SearchFiles)
		}
	}
	return r
}
