package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-bucketlist-service/entity"
	"github.com/tnqbao/gau-bucketlist-service/http/controller/dto"
	"github.com/tnqbao/gau-bucketlist-service/utils"
	"gorm.io/gorm"
)

func (ctrl *Controller) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to bind register request: %v", err)
		utils.JSON400(c, "Username and password needed")
		return
	}

	exists, err := ctrl.Repository.UserRepo.ExistsByUsername(req.Username)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Error checking username existence: %v", err)
		utils.JSON500(c, "Error checking username existence")
		return
	}
	if exists {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Username '%s' already exists", req.Username)
		utils.JSON409(c, "Username already exists")
		return
	}

	user := &entity.User{
		Username: req.Username,
		Password: utils.HashPassword(req.Password, ctrl.Config.EnvConfig.JWT.SecretKey),
	}

	if err := ctrl.Repository.UserRepo.Create(user); err != nil {
		// A concurrent register can still lose the race to the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.JSON409(c, "Username already exists")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to create user: %v", err)
		utils.JSON500(c, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.Username, ctrl.Config.EnvConfig)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to sign token: %v", err)
		utils.JSON500(c, "Failed to sign token")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Auth] Registered user '%s' (id=%d)", user.Username, user.ID)
	utils.JSON201(c, gin.H{"auth_token": token})
}

func (ctrl *Controller) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Both username and password required")
		return
	}

	user, err := ctrl.Repository.UserRepo.FindByUsername(req.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Error looking up user: %v", err)
		utils.JSON500(c, "Error looking up user")
		return
	}

	// One message for unknown user and bad password; the response must
	// not reveal which of the two was wrong.
	digest := utils.HashPassword(req.Password, ctrl.Config.EnvConfig.JWT.SecretKey)
	if user == nil || !utils.SecureCompare(digest, user.Password) {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Failed login attempt for '%s'", req.Username)
		utils.JSON401(c, "Check username and password")
		return
	}

	token, err := utils.GenerateToken(user.Username, ctrl.Config.EnvConfig)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to sign token: %v", err)
		utils.JSON500(c, "Failed to sign token")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Auth] User '%s' logged in", user.Username)
	utils.JSON200(c, gin.H{"auth_token": token})
}
