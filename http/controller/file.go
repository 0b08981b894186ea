package controller

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-drive/repository"
	"github.com/tnqbao/gau-drive/service"
	"github.com/tnqbao/gau-drive/utils"
)

// downloadChunkSize bounds the response buffer per flush regardless of
// object size.
const downloadChunkSize int64 = 32 * 1024

func paginationParams(c *gin.Context) (int, int) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	return offset, limit
}

// ListFiles lists the caller's files in insertion order.
// GET /files/
func (ctrl *Controller) ListFiles(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	offset, limit := paginationParams(c)

	files, err := ctrl.Repository.FileRepo.ListByUser(userID, offset, limit)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to list files for user %d: %v", userID, err)
		utils.JSON500(c, "Failed to list files")
		return
	}

	utils.JSON200(c, files)
}

// ListFolder lists the files stored directly in one folder.
// GET /files/folder
func (ctrl *Controller) ListFolder(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	path := c.Query("path")
	if path == "" {
		utils.JSON400(c, "path is required")
		return
	}

	offset, limit := paginationParams(c)

	files, err := ctrl.Repository.FileRepo.ListByFolder(userID, path, offset, limit)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to list folder %q for user %d: %v", path, userID, err)
		utils.JSON500(c, "Failed to list folder")
		return
	}

	utils.JSON200(c, files)
}

// Upload stores a multipart payload under the namespace slot derived from
// the optional path hint.
// POST /files/upload
func (ctrl *Controller) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to get file from form data: %v", err)
		utils.JSON400(c, "Failed to get file: "+err.Error())
		return
	}

	var rawPath *string
	if path, ok := c.GetQuery("path"); ok {
		rawPath = &path
	}

	payload, err := fileHeader.Open()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to open uploaded file: %v", err)
		utils.JSON400(c, "Failed to read file")
		return
	}
	defer payload.Close()

	file, err := ctrl.Files.Upload(ctx, userID, rawPath, fileHeader.Filename, fileHeader.Size, payload)
	if err != nil {
		if errors.Is(err, service.ErrObjectStore) {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Upload failed for user %d: %v", userID, err)
			utils.JSON500(c, "Object store error occurred: "+err.Error())
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Upload failed for user %d: %v", userID, err)
		utils.JSON500(c, "Failed to upload file")
		return
	}

	utils.JSON201(c, file)
}

// Download streams a file's bytes back to the caller, resolved either by
// file id or by full path.
// GET /files/download
func (ctrl *Controller) Download(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	pathOrID := c.Query("path")
	if pathOrID == "" {
		utils.JSON400(c, "path is required")
		return
	}

	file, reader, size, err := ctrl.Files.Download(ctx, userID, pathOrID)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			utils.JSON404(c, "File not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Download failed for user %d: %v", userID, err)
		utils.JSON500(c, "Failed to retrieve file")
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Header("Content-Length", strconv.FormatInt(size, 10))
	c.Status(200)

	// Fixed-size windows, flushed as they are produced; gin stops the loop
	// when the client goes away, which releases the object store read.
	c.Stream(func(w io.Writer) bool {
		_, err := io.CopyN(w, reader, downloadChunkSize)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to stream file %s: %v", file.ID, err)
			}
			return false
		}
		return true
	})
}

// SearchFiles runs an ad-hoc filtered search over the caller's files.
// POST /files/search
func (ctrl *Controller) SearchFiles(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	var opts repository.SearchOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to bind search options: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	files, err := ctrl.Repository.FileRepo.Search(userID, opts)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Search failed for user %d: %v", userID, err)
		utils.JSON500(c, "Failed to search files")
		return
	}

	utils.JSON200(c, files)
}
