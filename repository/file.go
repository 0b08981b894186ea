package repository

import (
	"github.com/google/uuid"
	"github.com/tnqbao/gau-drive/entity"
	"gorm.io/gorm"
)

// SearchOptions carries the optional, AND-combined search filter clauses.
type SearchOptions struct {
	Path      *string `json:"path"`
	Extension *string `json:"extension"`
	Query     *string `json:"query"`
	OrderBy   *string `json:"order_by"`
	Limit     *int    `json:"limit"`
}

// Columns accepted for caller-supplied search ordering. Anything else falls
// back to store-default order.
var searchOrderColumns = map[string]bool{
	"id":         true,
	"name":       true,
	"path":       true,
	"size":       true,
	"created_at": true,
}

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create inserts a metadata row. A concurrent insert into the same
// (user_id, path, name) slot surfaces as gorm.ErrDuplicatedKey.
func (r *FileRepository) Create(file *entity.File) error {
	return r.db.Create(file).Error
}

func (r *FileRepository) FindByID(userID uint, id uuid.UUID) (*entity.File, error) {
	var file entity.File
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) FindByPath(userID uint, path, name string) (*entity.File, error) {
	var file entity.File
	err := r.db.Where("user_id = ? AND path = ? AND name = ?", userID, path, name).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) ListByUser(userID uint, offset, limit int) ([]entity.File, error) {
	var files []entity.File
	err := r.db.Where("user_id = ?", userID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&files).Error
	return files, err
}

// ListByFolder lists files whose path matches exactly; no recursive descent
// into sub-folders.
func (r *FileRepository) ListByFolder(userID uint, path string, offset, limit int) ([]entity.File, error) {
	var files []entity.File
	err := r.db.Where("user_id = ? AND path = ?", userID, path).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&files).Error
	return files, err
}

type UsageSummary struct {
	Path  string `json:"path"`
	Used  int64  `json:"used"`
	Files int64  `json:"files"`
}

// UsageSummary aggregates stored bytes and file counts per directory.
func (r *FileRepository) UsageSummary(userID uint) ([]UsageSummary, error) {
	var rows []UsageSummary
	err := r.db.Model(&entity.File{}).
		Select("path, SUM(size) AS used, COUNT(*) AS files").
		Where("user_id = ?", userID).
		Group("path").
		Scan(&rows).Error
	return rows, err
}

// searchQuery combines the provided filter clauses with AND. The query
// pattern is passed to LIKE as-is: % and _ wildcards belong to the caller.
func (r *FileRepository) searchQuery(userID uint, opts SearchOptions) *gorm.DB {
	q := r.db.Model(&entity.File{}).Where("user_id = ?", userID)

	if opts.Path != nil {
		q = q.Where("path = ?", *opts.Path)
	}

	if opts.Extension != nil {
		q = q.Where("name LIKE ?", "%"+*opts.Extension)
	}

	if opts.Query != nil {
		q = q.Where("name LIKE ? OR path LIKE ?", *opts.Query, *opts.Query)
	}

	if opts.OrderBy != nil && searchOrderColumns[*opts.OrderBy] {
		q = q.Order(*opts.OrderBy)
	}

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}

	return q
}

func (r *FileRepository) Search(userID uint, opts SearchOptions) ([]entity.File, error) {
	var files []entity.File
	err := r.searchQuery(userID, opts).Find(&files).Error
	return files, err
}

// Delete removes the owner's row. Deleting an absent row is a no-op: the
// compensating path may race with another request that already removed it.
func (r *FileRepository) Delete(userID uint, id uuid.UUID) error {
	return r.db.Delete(&entity.File{}, "id = ? AND user_id = ?", id, userID).Error
}
