package controller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-drive/utils"
)

func statusLabel(ok bool) string {
	if ok {
		return "OK"
	}
	return "not available"
}

// Ping probes every backing dependency and reports per-dependency health.
// GET /ping/
func (ctrl *Controller) Ping(c *gin.Context) {
	ctx := c.Request.Context()

	postgresOK := true
	if db, err := ctrl.Infra.Postgres.DB.DB(); err != nil {
		postgresOK = false
	} else if err := db.PingContext(ctx); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Ping] Postgres error occurred: %v", err)
		postgresOK = false
	}

	redisOK := true
	if err := ctrl.Infra.Redis.Ping(ctx); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Ping] Redis error occurred: %v", err)
		redisOK = false
	}

	minioOK := ctrl.Infra.Minio.Healthy(ctx)
	if !minioOK {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[Ping] MinIO is not available")
	}

	utils.JSON200(c, gin.H{
		"postgres status": statusLabel(postgresOK),
		"redis status":    statusLabel(redisOK),
		"minio status":    statusLabel(minioOK),
		"date":            time.Now().UTC(),
	})
}
