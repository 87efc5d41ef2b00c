package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-bucketlist-service/entity"
	"github.com/tnqbao/gau-bucketlist-service/http/controller/dto"
	"github.com/tnqbao/gau-bucketlist-service/utils"
	"gorm.io/gorm"
)

func (ctrl *Controller) ListBucketlists(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := ctrl.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	bucketlists, err := ctrl.Repository.BucketlistRepo.ListByCreator(user.ID, c.Query("q"))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Failed to list bucketlists: %v", err)
		utils.JSON500(c, "Failed to list bucketlists")
		return
	}

	// Empty (possibly filtered) sets skip pagination entirely.
	if len(bucketlists) == 0 {
		utils.JSON200(c, gin.H{"Bucketlists": []gin.H{}})
		return
	}

	page, limit := parsePagination(c)
	pageItems, info := utils.Paginate(bucketlists, page, limit)

	list := make([]gin.H, 0, len(pageItems))
	for _, bucketlist := range pageItems {
		list = append(list, gin.H{
			"id":           bucketlist.ID,
			"name":         bucketlist.Name,
			"items":        len(bucketlist.Items),
			"date_created": entity.FormatDate(bucketlist.CreationDate),
			"created_by":   user.Username,
		})
	}

	utils.JSON200(c, gin.H{
		"Bucketlists": list,
		"Page":        fmt.Sprintf("%d of %d", info.Page, info.TotalPages),
		"has_next":    info.HasNext,
		"has_prev":    info.HasPrev,
	})
}

func (ctrl *Controller) CreateBucketlist(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := ctrl.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req dto.CreateBucketlistRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Bucketlist name needed")
		return
	}

	name := strings.ToLower(req.Name)

	exists, err := ctrl.Repository.BucketlistRepo.ExistsByName(name)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Error checking name existence: %v", err)
		utils.JSON500(c, "Error checking bucketlist name existence")
		return
	}
	if exists {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Bucketlist] Name '%s' already exists", name)
		utils.JSON409(c, "Bucketlist name already exists")
		return
	}

	bucketlist := &entity.Bucketlist{
		Name:             name,
		CreationDate:     entity.Today(),
		ModificationDate: entity.Today(),
		CreatorID:        user.ID,
	}

	tx := ctrl.Repository.BeginTransaction(ctrl.Infra.Postgres.DB)
	if err := ctrl.Repository.WithTransaction(tx).BucketlistRepo.Create(bucketlist); err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.JSON409(c, "Bucketlist name already exists")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Failed to create bucketlist: %v", err)
		utils.JSON500(c, "Failed to create bucketlist")
		return
	}
	if err := tx.Commit().Error; err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Failed to commit create: %v", err)
		utils.JSON500(c, "Failed to create bucketlist")
		return
	}

	ctrl.publishBucketlistCreated(c, user, bucketlist)

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Bucketlist] Created '%s' (id=%d) for user %d", name, bucketlist.ID, user.ID)
	utils.JSON201(c, gin.H{
		"message": "Bucketlist successfully created",
		"bucketlist": gin.H{
			"id":           bucketlist.ID,
			"name":         bucketlist.Name,
			"date_created": entity.FormatDate(bucketlist.CreationDate),
		},
	})
}

func (ctrl *Controller) GetBucketlist(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := ctrl.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	bucketlist, found := ctrl.authorizeBucketlist(c, user)
	if !found {
		return
	}

	items := make([]gin.H, 0, len(bucketlist.Items))
	for _, item := range bucketlist.Items {
		items = append(items, gin.H{
			"id":   item.ID,
			"name": item.Name,
			"done": item.Completed,
		})
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Bucketlist] Served detail for id=%d", bucketlist.ID)
	utils.JSON200(c, gin.H{
		"id":            bucketlist.ID,
		"name":          bucketlist.Name,
		"items":         items,
		"created_by":    user.Username,
		"date_created":  entity.FormatDate(bucketlist.CreationDate),
		"date_modified": entity.FormatDate(bucketlist.ModificationDate),
	})
}

func (ctrl *Controller) UpdateBucketlist(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := ctrl.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	bucketlist, found := ctrl.authorizeBucketlist(c, user)
	if !found {
		return
	}

	var req dto.UpdateBucketlistRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Supply new bucketlist name")
		return
	}

	name := strings.ToLower(req.Name)

	// Renaming to the current name changes nothing; that is a conflict,
	// not a success.
	if name == bucketlist.Name {
		utils.JSON409(c, "Bucketlist name already exists")
		return
	}

	exists, err := ctrl.Repository.BucketlistRepo.ExistsByName(name)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Error checking name existence: %v", err)
		utils.JSON500(c, "Error checking bucketlist name existence")
		return
	}
	if exists {
		utils.JSON409(c, "Bucketlist name already exists")
		return
	}

	bucketlist.Name = name
	bucketlist.ModificationDate = entity.Today()

	tx := ctrl.Repository.BeginTransaction(ctrl.Infra.Postgres.DB)
	if err := ctrl.Repository.WithTransaction(tx).BucketlistRepo.Save(bucketlist); err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.JSON409(c, "Bucketlist name already exists")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Failed to update bucketlist: %v", err)
		utils.JSON500(c, "Failed to update bucketlist")
		return
	}
	if err := tx.Commit().Error; err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Failed to commit update: %v", err)
		utils.JSON500(c, "Failed to update bucketlist")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Bucketlist] Renamed id=%d to '%s'", bucketlist.ID, name)
	utils.JSON200(c, gin.H{"message": "Bucketlist successfully updated"})
}

func (ctrl *Controller) DeleteBucketlist(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := ctrl.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	bucketlist, found := ctrl.authorizeBucketlist(c, user)
	if !found {
		return
	}

	// Items go first so the delete cascades atomically with its parent.
	tx := ctrl.Repository.BeginTransaction(ctrl.Infra.Postgres.DB)
	txRepo := ctrl.Repository.WithTransaction(tx)

	itemsRemoved, err := txRepo.ItemRepo.DeleteByBucketlistID(bucketlist.ID)
	if err != nil {
		tx.Rollback()
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Failed to delete items of id=%d: %v", bucketlist.ID, err)
		utils.JSON500(c, "Failed to delete bucketlist")
		return
	}
	if err := txRepo.BucketlistRepo.Delete(bucketlist.ID); err != nil {
		tx.Rollback()
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Failed to delete id=%d: %v", bucketlist.ID, err)
		utils.JSON500(c, "Failed to delete bucketlist")
		return
	}
	if err := tx.Commit().Error; err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Bucketlist] Failed to commit delete: %v", err)
		utils.JSON500(c, "Failed to delete bucketlist")
		return
	}

	ctrl.publishBucketlistDeleted(c, user, bucketlist, itemsRemoved)

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Bucketlist] Deleted id=%d with %d items", bucketlist.ID, itemsRemoved)
	utils.JSON200(c, gin.H{"message": "Bucketlist successfully deleted"})
}

// authorizeBucketlist resolves the :id path parameter to a bucketlist
// owned by the caller. Missing and not-owned are indistinguishable:
// both answer 404 so other users' resources are never revealed.
func (ctrl *Controller) authorizeBucketlist(c *gin.Context, user *entity.User) (*entity.Bucketlist, bool) {
	id := parseIDParam(c, "id")
	if id == 0 {
		utils.JSON404(c, "Bucketlist does not exist")
		return nil, false
	}

	bucketlist, err := ctrl.Repository.BucketlistRepo.FindByIDAndCreator(id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON404(c, "Bucketlist does not exist")
			return nil, false
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "[Bucketlist] Error looking up id=%d: %v", id, err)
		utils.JSON500(c, "Error looking up bucketlist")
		return nil, false
	}
	return bucketlist, true
}
