package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-bucketlist-service/http/controller"
	middlewares "github.com/tnqbao/gau-bucketlist-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.RequestIDMiddleware)
	r.Use(middles.CORSMiddleware)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiRoutes := r.Group("/api/v1/bucketlist")
	{
		authRoutes := apiRoutes.Group("/auth")
		{
			authRoutes.POST("/register", ctrl.Register)
			authRoutes.POST("/login", ctrl.Login)
		}

		bucketlistRoutes := apiRoutes.Group("/bucketlists")
		{
			bucketlistRoutes.Use(middles.AuthMiddleware)

			bucketlistRoutes.GET("", ctrl.ListBucketlists)
			bucketlistRoutes.POST("", ctrl.CreateBucketlist)
			bucketlistRoutes.GET("/:id", ctrl.GetBucketlist)
			bucketlistRoutes.PUT("/:id", ctrl.UpdateBucketlist)
			bucketlistRoutes.DELETE("/:id", ctrl.DeleteBucketlist)

			bucketlistRoutes.GET("/:id/items", ctrl.ListItems)
			bucketlistRoutes.POST("/:id/items", ctrl.CreateItem)
			bucketlistRoutes.GET("/:id/items/:item_id", ctrl.GetItem)
			bucketlistRoutes.PUT("/:id/items/:item_id", ctrl.UpdateItem)
			bucketlistRoutes.DELETE("/:id/items/:item_id", ctrl.DeleteItem)
		}
	}
	return r
}
