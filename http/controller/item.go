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

func (ctrl *Controller) ListItems(c *gin.Context) {
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

	items, err := ctrl.Repository.ItemRepo.ListByBucketlist(bucketlist.ID, c.Query("q"))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Item] Failed to list items of bucketlist %d: %v", bucketlist.ID, err)
		utils.JSON500(c, "Failed to list items")
		return
	}

	if len(items) == 0 {
		utils.JSON200(c, gin.H{"Items": []gin.H{}})
		return
	}

	page, limit := parsePagination(c)
	pageItems, info := utils.Paginate(items, page, limit)

	list := make([]gin.H, 0, len(pageItems))
	for _, item := range pageItems {
		list = append(list, gin.H{
			"id":   item.ID,
			"name": item.Name,
			"done": item.Completed,
		})
	}

	utils.JSON200(c, gin.H{
		"Items":    list,
		"Page":     fmt.Sprintf("%d of %d", info.Page, info.TotalPages),
		"has_next": info.HasNext,
		"has_prev": info.HasPrev,
	})
}

func (ctrl *Controller) CreateItem(c *gin.Context) {
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

	var req dto.CreateItemRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Item name not supplied")
		return
	}

	name := strings.ToLower(req.Name)

	exists, err := ctrl.Repository.ItemRepo.ExistsByName(name)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Item] Error checking name existence: %v", err)
		utils.JSON500(c, "Error checking item name existence")
		return
	}
	if exists {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Item] Name '%s' already exists", name)
		utils.JSON409(c, "Item name already exists")
		return
	}

	item := &entity.Item{
		Name:             name,
		CreationDate:     entity.Today(),
		ModificationDate: entity.Today(),
		BucketlistID:     bucketlist.ID,
	}

	tx := ctrl.Repository.BeginTransaction(ctrl.Infra.Postgres.DB)
	if err := ctrl.Repository.WithTransaction(tx).ItemRepo.Create(item); err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.JSON409(c, "Item name already exists")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Item] Failed to create item: %v", err)
		utils.JSON500(c, "Failed to create item")
		return
	}
	if err := tx.Commit().Error; err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Item] Failed to commit create: %v", err)
		utils.JSON500(c, "Failed to create item")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Item] Created '%s' (id=%d) in bucketlist %d", name, item.ID, bucketlist.ID)
	utils.JSON201(c, gin.H{
		"message": "New item added successfully",
		"item": gin.H{
			"id":   item.ID,
			"name": item.Name,
			"done": item.Completed,
		},
	})
}

func (ctrl *Controller) GetItem(c *gin.Context) {
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

	item, found := ctrl.lookupItem(c, bucketlist)
	if !found {
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Item] Served detail for id=%d", item.ID)
	utils.JSON200(c, gin.H{
		"id":            item.ID,
		"name":          item.Name,
		"done":          item.Completed,
		"date_created":  entity.FormatDate(item.CreationDate),
		"date_modified": entity.FormatDate(item.ModificationDate),
	})
}

func (ctrl *Controller) UpdateItem(c *gin.Context) {
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

	var req dto.UpdateItemRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil || (req.Name == "" && req.Done == nil) {
		utils.JSON400(c, "Item name needed")
		return
	}

	item, found := ctrl.lookupItem(c, bucketlist)
	if !found {
		return
	}

	if req.Name != "" {
		name := strings.ToLower(req.Name)
		if name == item.Name {
			utils.JSON409(c, "Item name already exists")
			return
		}
		exists, err := ctrl.Repository.ItemRepo.ExistsByName(name)
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Item] Error checking name existence: %v", err)
			utils.JSON500(c, "Error checking item name existence")
			return
		}
		if exists {
			utils.JSON409(c, "Item name already exists")
			return
		}
		item.Name = name
	}
	if req.Done != nil {
		item.Completed = *req.Done
	}
	item.ModificationDate = entity.Today()

	tx := ctrl.Repository.BeginTransaction(ctrl.Infra.Postgres.DB)
	if err := ctrl.Repository.WithTransaction(tx).ItemRepo.Save(item); err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.JSON409(c, "Item name already exists")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Item] Failed to update item: %v", err)
		utils.JSON500(c, "Failed to update item")
		return
	}
	if err := tx.Commit().Error; err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Item] Failed to commit update: %v", err)
		utils.JSON500(c, "Failed to update item")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Item] Updated id=%d", item.ID)
	utils.JSON200(c, gin.H{"message": "Item updated"})
}

func (ctrl *Controller) DeleteItem(c *gin.Context) {
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

	item, found := ctrl.lookupItem(c, bucketlist)
	if !found {
		return
	}

	tx := ctrl.Repository.BeginTransaction(ctrl.Infra.Postgres.DB)
	if err := ctrl.Repository.WithTransaction(tx).ItemRepo.Delete(item.ID); err != nil {
		tx.Rollback()
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Item] Failed to delete id=%d: %v", item.ID, err)
		utils.JSON500(c, "Failed to delete item")
		return
	}
	if err := tx.Commit().Error; err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Item] Failed to commit delete: %v", err)
		utils.JSON500(c, "Failed to delete item")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Item] Deleted id=%d", item.ID)
	utils.JSON200(c, gin.H{"message": "Item deleted"})
}

// lookupItem resolves :item_id within an already-authorized bucketlist.
// The ownership chain runs item → bucketlist → user, so scoping the
// query to the bucketlist is the authorization.
func (ctrl *Controller) lookupItem(c *gin.Context, bucketlist *entity.Bucketlist) (*entity.Item, bool) {
	id := parseIDParam(c, "item_id")
	if id == 0 {
		utils.JSON404(c, "Item does not exist")
		return nil, false
	}

	item, err := ctrl.Repository.ItemRepo.FindByIDAndBucketlist(id, bucketlist.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON404(c, "Item does not exist")
			return nil, false
		}
		ctrl.Infra.Logger.ErrorWithContextf(c.Request.Context(), err, "[Item] Error looking up id=%d: %v", id, err)
		utils.JSON500(c, "Error looking up item")
		return nil, false
	}
	return item, true
}
