// Package service holds the upload/download orchestration: path
// normalization, lookup-or-create against the metadata store, the object
// write, and the compensating delete that keeps the two stores consistent
// without a cross-store transaction.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-drive/entity"
	"github.com/tnqbao/gau-drive/infra"
	"github.com/tnqbao/gau-drive/infra/produce"
	"github.com/tnqbao/gau-drive/utils"
	"gorm.io/gorm"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrObjectStore  = errors.New("object store error")
)

// FileStore is the metadata store seam: the cached repository in production.
// Point lookups report absence as (nil, nil).
type FileStore interface {
	Create(ctx context.Context, file *entity.File) error
	FindByID(ctx context.Context, userID uint, id uuid.UUID) (*entity.File, error)
	FindByPath(ctx context.Context, userID uint, path, name string) (*entity.File, error)
	Delete(ctx context.Context, userID uint, id uuid.UUID, file *entity.File) error
	Invalidate(ctx context.Context, file *entity.File)
}

// ObjectStore is the blob store seam, keyed by the metadata row's id.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, displayName string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, int64, error)
	RemoveObject(ctx context.Context, key string) error
}

// EventPublisher emits file lifecycle events. Best effort; may be nil.
type EventPublisher interface {
	Publish(ctx context.Context, event produce.FileEvent) error
}

type FileService struct {
	files  FileStore
	store  ObjectStore
	events EventPublisher
	logger *infra.LoggerClient
}

func NewFileService(files FileStore, store ObjectStore, events EventPublisher, logger *infra.LoggerClient) *FileService {
	return &FileService{
		files:  files,
		store:  store,
		events: events,
		logger: logger,
	}
}

// Upload resolves the namespace slot for the payload, creates the metadata
// row when the slot is empty, then streams the payload into the object store
// under the row's id.
//
// An occupied slot is reused: the bytes are overwritten in place under the
// same id and the row is left untouched. If the object write fails, a row
// created by this request is deleted again (compensating delete) so metadata
// never points at an object that was not written; a pre-existing row is kept,
// since its object was not owned by this request.
func (s *FileService) Upload(ctx context.Context, userID uint, rawPath *string, uploadedName string, size int64, payload io.Reader) (*entity.File, error) {
	name := utils.SetFileName(rawPath, uploadedName)
	path := utils.SetFilePath(rawPath)

	file, err := s.files.FindByPath(ctx, userID, path, name)
	if err != nil {
		return nil, err
	}

	createdHere := false
	if file == nil {
		file = &entity.File{
			ID:        uuid.New(),
			UserID:    userID,
			Name:      name,
			Path:      path,
			Size:      size,
			CreatedAt: time.Now().UTC(),
		}

		err = s.files.Create(ctx, file)
		switch {
		case err == nil:
			createdHere = true
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// Lost the slot race; adopt the winner's row and overwrite
			// its object in place.
			s.logger.WarningWithContextf(ctx, "[File] Concurrent create for slot %s%s of user %d, reusing existing row", path, name, userID)
			file, err = s.files.FindByPath(ctx, userID, path, name)
			if err != nil {
				return nil, err
			}
			if file == nil {
				return nil, gorm.ErrRecordNotFound
			}
		default:
			return nil, err
		}
	}

	if err := s.store.PutObject(ctx, file.ID.String(), payload, size, file.Name); err != nil {
		s.logger.ErrorWithContextf(ctx, err, "[File] Object write failed for %s, compensating", file.ID)

		if createdHere {
			if delErr := s.files.Delete(ctx, userID, file.ID, file); delErr != nil {
				s.logger.ErrorWithContextf(ctx, delErr, "[File] Compensating delete failed for %s", file.ID)
			}
			// The write may have landed despite the error (e.g. a timeout
			// after the store committed); clear the key so no orphan object
			// outlives the deleted row.
			if rmErr := s.store.RemoveObject(ctx, file.ID.String()); rmErr != nil {
				s.logger.WarningWithContextf(ctx, "[File] Orphan cleanup failed for %s: %v", file.ID, rmErr)
			}
		} else {
			// The reused row keeps its (possibly clobbered) object, but any
			// cached copy of the metadata is dropped.
			s.files.Invalidate(ctx, file)
		}

		s.publish(ctx, produce.EventFileUploadFailed, file)
		return nil, fmt.Errorf("%w: %v", ErrObjectStore, err)
	}

	if !createdHere {
		// Overwrite of an existing slot: the row is unchanged but cached
		// metadata may disagree with the new bytes, so drop it.
		s.files.Invalidate(ctx, file)
	}

	s.publish(ctx, produce.EventFileUploaded, file)
	return file, nil
}

// Download resolves pathOrID (a file id, or a full path string) to a
// metadata row and opens a stream of the object's bytes. The caller owns the
// returned reader.
func (s *FileService) Download(ctx context.Context, userID uint, pathOrID string) (*entity.File, io.ReadCloser, int64, error) {
	var (
		file *entity.File
		err  error
	)

	if id, parseErr := uuid.Parse(pathOrID); parseErr == nil {
		file, err = s.files.FindByID(ctx, userID, id)
	} else {
		path, name := utils.SplitPathAndName(pathOrID)
		file, err = s.files.FindByPath(ctx, userID, path, name)
	}
	if err != nil {
		return nil, nil, 0, err
	}
	if file == nil {
		return nil, nil, 0, ErrFileNotFound
	}

	// A missing object behind an existing row is a consistency violation;
	// it is reported, not swallowed.
	reader, size, err := s.store.GetObject(ctx, file.ID.String())
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrObjectStore, err)
	}

	return file, reader, size, nil
}

func (s *FileService) publish(ctx context.Context, eventType string, file *entity.File) {
	if s.events == nil {
		return
	}

	err := s.events.Publish(ctx, produce.FileEvent{
		Type:   eventType,
		FileID: file.ID,
		UserID: file.UserID,
		Path:   file.Path,
		Name:   file.Name,
		Size:   file.Size,
	})
	if err != nil {
		s.logger.WarningWithContextf(ctx, "[File] Failed to publish %s event for %s: %v", eventType, file.ID, err)
	}
}
