package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-drive/cache"
	"github.com/tnqbao/gau-drive/entity"
	"gorm.io/gorm"
)

type idKey struct {
	UserID uint
	ID     uuid.UUID
}

type pathKey struct {
	UserID uint
	Path   string
	Name   string
}

func cacheKeyID(k idKey) string {
	return fmt.Sprintf("file_id:%d:%s", k.UserID, k.ID)
}

func cacheKeyPath(k pathKey) string {
	return fmt.Sprintf("file_path:%d:%s:%s", k.UserID, k.Path, k.Name)
}

// CachedFileRepository wraps the point lookups of FileRepository with
// read-through caching. Absence is reported as (nil, nil); every other
// repository error passes through untouched.
type CachedFileRepository struct {
	repo   *FileRepository
	store  cache.Store
	byID   cache.LoadFunc[idKey, entity.File]
	byPath cache.LoadFunc[pathKey, entity.File]
}

func NewCachedFileRepository(repo *FileRepository, store cache.Store, ttl time.Duration) *CachedFileRepository {
	c := &CachedFileRepository{repo: repo, store: store}

	c.byID = cache.ReadThrough(store, ttl, cacheKeyID,
		func(ctx context.Context, k idKey) (*entity.File, error) {
			return absentAsNil(repo.FindByID(k.UserID, k.ID))
		})

	c.byPath = cache.ReadThrough(store, ttl, cacheKeyPath,
		func(ctx context.Context, k pathKey) (*entity.File, error) {
			return absentAsNil(repo.FindByPath(k.UserID, k.Path, k.Name))
		})

	return c
}

func absentAsNil(file *entity.File, err error) (*entity.File, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return file, err
}

func (c *CachedFileRepository) FindByID(ctx context.Context, userID uint, id uuid.UUID) (*entity.File, error) {
	return c.byID(ctx, idKey{UserID: userID, ID: id})
}

func (c *CachedFileRepository) FindByPath(ctx context.Context, userID uint, path, name string) (*entity.File, error) {
	return c.byPath(ctx, pathKey{UserID: userID, Path: path, Name: name})
}

func (c *CachedFileRepository) Create(ctx context.Context, file *entity.File) error {
	return c.repo.Create(file)
}

// Delete removes the row and drops its cache entries so a reader cannot
// observe metadata for an object that no longer exists.
func (c *CachedFileRepository) Delete(ctx context.Context, userID uint, id uuid.UUID, file *entity.File) error {
	if err := c.repo.Delete(userID, id); err != nil {
		return err
	}
	if file != nil {
		c.Invalidate(ctx, file)
	}
	return nil
}

// Invalidate drops both cache keys for the file's namespace slot.
func (c *CachedFileRepository) Invalidate(ctx context.Context, file *entity.File) {
	_ = c.store.Delete(ctx,
		cacheKeyID(idKey{UserID: file.UserID, ID: file.ID}),
		cacheKeyPath(pathKey{UserID: file.UserID, Path: file.Path, Name: file.Name}),
	)
}
