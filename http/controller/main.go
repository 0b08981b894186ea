package controller

import (
	"github.com/tnqbao/gau-drive/config"
	"github.com/tnqbao/gau-drive/infra"
	"github.com/tnqbao/gau-drive/repository"
	"github.com/tnqbao/gau-drive/service"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Files      *service.FileService
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}

	var events service.EventPublisher
	if infra.Produce != nil {
		events = infra.Produce.FileEvent
	}

	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
		Files:      service.NewFileService(repo.FileCache, infra.Minio, events, infra.Logger),
	}
}
