package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-drive/config"
	"github.com/tnqbao/gau-drive/http/controller"
	routes "github.com/tnqbao/gau-drive/http/route"
	infraPkg "github.com/tnqbao/gau-drive/infra"
	"github.com/tnqbao/gau-drive/repository"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()

	shutdownTelemetry := infraPkg.InitTelemetry(cfg.EnvConfig)
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			log.Printf("Telemetry shutdown failed: %v", err)
		}
	}()

	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :" + cfg.EnvConfig.Server.Port)
	if err := router.Run(":" + cfg.EnvConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
