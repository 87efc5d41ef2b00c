package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-bucketlist-service/http/controller"
)

type Middlewares struct {
	CORSMiddleware      gin.HandlerFunc
	RequestIDMiddleware gin.HandlerFunc
	AuthMiddleware      gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	return &Middlewares{
		CORSMiddleware:      CORSMiddleware(ctrl.Config.EnvConfig),
		RequestIDMiddleware: RequestIDMiddleware(),
		AuthMiddleware:      AuthMiddleware(ctrl),
	}, nil
}
