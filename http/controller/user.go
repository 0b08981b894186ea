package controller

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-drive/entity"
	"github.com/tnqbao/gau-drive/http/controller/dto"
	"github.com/tnqbao/gau-drive/utils"
	"gorm.io/gorm"
)

// Register creates a new user account.
// POST /users/register
func (ctrl *Controller) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to bind register request: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	exists, err := ctrl.Repository.UserRepo.ExistsByLogin(req.Login)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Error checking login existence: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	if exists {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[User] Login %q already exists", req.Login)
		utils.JSON400(c, "User already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to hash password: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	user := &entity.User{
		Login:     req.Login,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}

	if err := ctrl.Repository.UserRepo.Create(user); err != nil {
		// Lost the race with a concurrent registration for the same login.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[User] Login %q already exists", req.Login)
			utils.JSON400(c, "User already exists")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to create user: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[User] Registered user %q (id=%d)", user.Login, user.ID)
	utils.JSON201(c, dto.RegisterResponse{ID: user.ID, Login: user.Login})
}

// Auth exchanges login/password for an access token.
// POST /users/auth
func (ctrl *Controller) Auth(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to bind auth request: %v", err)
		utils.JSON400(c, "Invalid request payload")
		return
	}

	user, err := ctrl.Repository.UserRepo.FindByLogin(req.Login)
	if err != nil || !utils.CheckPassword(user.Password, req.Password) {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[User] Failed authentication for login %q", req.Login)
		c.Header("WWW-Authenticate", "Bearer")
		utils.JSON401(c, "Incorrect username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Login, ctrl.Config.EnvConfig)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to sign token: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	utils.JSON200(c, dto.AccessTokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Status reports the caller's disk usage, aggregated per directory.
// GET /users/status
func (ctrl *Controller) Status(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.JSON401(c, "Unauthorized: user_id not found")
		return
	}

	usage, err := ctrl.Repository.FileRepo.UsageSummary(userID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to aggregate usage for user %d: %v", userID, err)
		utils.JSON500(c, "Internal server error")
		return
	}

	utils.JSON200(c, gin.H{
		"account_id": userID,
		"used":       usage,
	})
}
