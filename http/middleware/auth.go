package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-bucketlist-service/entity"
	"github.com/tnqbao/gau-bucketlist-service/http/controller"
	"github.com/tnqbao/gau-bucketlist-service/utils"
	"gorm.io/gorm"
)

// AuthMiddleware is the identity resolver: it verifies the request's
// token and loads the persisted user it names before any handler runs.
// Every failure mode short-circuits with 401 and no side effects.
func AuthMiddleware(ctrl *controller.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := utils.ExtractToken(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			c.Abort()
			return
		}

		username, err := utils.ParseToken(tokenStr, ctrl.Config.EnvConfig)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		user, err := resolveUser(c, ctrl, username)
		if err != nil {
			// A valid token naming a user that no longer exists is
			// still an unauthenticated request.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login"})
			c.Abort()
			return
		}

		c.Set("current_user", user)
		c.Set("user_id", user.ID)
		c.Set("username", user.Username)

		c.Next()
	}
}

// resolveUser finds the user behind a verified username claim, going
// through the Redis identity cache when one is configured. Cache
// entries live as long as a token can.
func resolveUser(c *gin.Context, ctrl *controller.Controller, username string) (*entity.User, error) {
	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("auth:user:%s", username)

	if ctrl.Infra.Redis != nil {
		var cached entity.User
		if err := ctrl.Infra.Redis.Get(ctx, cacheKey, &cached); err == nil && cached.ID != 0 {
			return &cached, nil
		}
	}

	user, err := ctrl.Repository.UserRepo.FindByUsername(username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Error resolving user '%s': %v", username, err)
		}
		return nil, err
	}

	if ctrl.Infra.Redis != nil {
		ttl := time.Duration(ctrl.Config.EnvConfig.JWT.Expire) * time.Second
		if err := ctrl.Infra.Redis.Set(ctx, cacheKey, user, ttl); err != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Failed to cache identity for '%s': %v", username, err)
		}
	}

	return user, nil
}
