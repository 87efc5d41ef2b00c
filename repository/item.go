package repository

import (
	"errors"
	"strings"

	"github.com/tnqbao/gau-bucketlist-service/entity"
	"gorm.io/gorm"
)

// ItemRepository handles all database operations for the Item entity
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{
		db: db,
	}
}

func (r *ItemRepository) Create(item *entity.Item) error {
	if item == nil {
		return errors.New("item cannot be nil")
	}
	return r.db.Create(item).Error
}

// FindByIDAndBucketlist scopes the lookup to the parent bucketlist,
// which the caller has already authorized.
func (r *ItemRepository) FindByIDAndBucketlist(id, bucketlistID uint) (*entity.Item, error) {
	var item entity.Item
	err := r.db.Where("id = ? AND bucketlist_id = ?", id, bucketlistID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByBucketlist returns the bucketlist's items newest-first with an
// optional case-insensitive contains-filter on name.
func (r *ItemRepository) ListByBucketlist(bucketlistID uint, query string) ([]entity.Item, error) {
	var items []entity.Item
	tx := r.db.Where("bucketlist_id = ?", bucketlistID)
	if query != "" {
		tx = tx.Where("name LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	err := tx.Order("id DESC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Item{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ItemRepository) Save(item *entity.Item) error {
	if item == nil {
		return errors.New("item cannot be nil")
	}
	return r.db.Save(item).Error
}

func (r *ItemRepository) Delete(id uint) error {
	return r.db.Delete(&entity.Item{}, id).Error
}

// DeleteByBucketlistID removes every item of a bucketlist and reports
// how many rows went away. Used by the cascading bucketlist delete.
func (r *ItemRepository) DeleteByBucketlistID(bucketlistID uint) (int64, error) {
	result := r.db.Delete(&entity.Item{}, "bucketlist_id = ?", bucketlistID)
	return result.RowsAffected, result.Error
}
