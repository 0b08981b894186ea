package repository

import (
	"github.com/tnqbao/gau-drive/infra"
)

type Repository struct {
	UserRepo  *UserRepository
	FileRepo  *FileRepository
	FileCache *CachedFileRepository
}

func InitRepository(infra *infra.Infra) *Repository {
	fileRepo := NewFileRepository(infra.Postgres.DB)

	return &Repository{
		UserRepo:  NewUserRepository(infra.Postgres.DB),
		FileRepo:  fileRepo,
		FileCache: NewCachedFileRepository(fileRepo, infra.Redis, infra.Redis.CacheTTL),
	}
}
