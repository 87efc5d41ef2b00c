package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-bucketlist-service/config"
	"github.com/tnqbao/gau-bucketlist-service/http/controller"
	routes "github.com/tnqbao/gau-bucketlist-service/http/route"
	infraPkg "github.com/tnqbao/gau-bucketlist-service/infra"
	"github.com/tnqbao/gau-bucketlist-service/repository"
)

func main() {
	err := godotenv.Load("staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctrl := controller.NewController(cfg, infra, repo)

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		infra.Telemetry.Shutdown(ctx)
		if err := infra.Logger.Shutdown(ctx); err != nil {
			log.Printf("Logger shutdown: %v", err)
		}
		if infra.RabbitMQ != nil {
			infra.RabbitMQ.Close()
		}
	}()

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
