package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-bucketlist-service/config"
	"github.com/tnqbao/gau-bucketlist-service/entity"
	"github.com/tnqbao/gau-bucketlist-service/infra"
	"github.com/tnqbao/gau-bucketlist-service/repository"
	"github.com/tnqbao/gau-bucketlist-service/utils"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
	}
}

// currentUser returns the identity the auth middleware resolved for
// this request. Handlers answer 401 themselves when it is absent.
func (ctrl *Controller) currentUser(c *gin.Context) (*entity.User, bool) {
	value, exists := c.Get("current_user")
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// parsePagination reads page and limit from the query string. Anything
// unparseable is left at zero for the pagination engine to default.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	return page, limit
}

// parseIDParam parses a numeric path parameter. Zero means malformed;
// no id 0 ever exists, so callers fall through to their 404 path.
func parseIDParam(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func (ctrl *Controller) publishBucketlistCreated(c *gin.Context, user *entity.User, bucketlist *entity.Bucketlist) {
	if ctrl.Infra.Produce == nil {
		return
	}
	ctx := c.Request.Context()
	err := ctrl.Infra.Produce.BucketlistService.PublishBucketlistCreated(ctx, user.ID, bucketlist.ID, bucketlist.Name)
	if err != nil {
		// The bucketlist is already committed, so the event is best-effort.
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Failed to publish created event for '%s'", bucketlist.Name)
	}
}

func (ctrl *Controller) publishBucketlistDeleted(c *gin.Context, user *entity.User, bucketlist *entity.Bucketlist, itemsRemoved int64) {
	if ctrl.Infra.Produce == nil {
		return
	}
	ctx := c.Request.Context()
	err := ctrl.Infra.Produce.BucketlistService.PublishBucketlistDeleted(ctx, user.ID, bucketlist.ID, bucketlist.Name, itemsRemoved)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Failed to publish deleted event for '%s'", bucketlist.Name)
	}
}

// unauthorized is the shared short-circuit for handlers reached without
// a resolved identity.
func unauthorized(c *gin.Context) {
	utils.JSON401(c, "Unauthorized: user not found in context")
}
