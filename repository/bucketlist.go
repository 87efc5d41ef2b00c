package repository

import (
	"errors"
	"strings"

	"github.com/tnqbao/gau-bucketlist-service/entity"
	"gorm.io/gorm"
)

// BucketlistRepository handles all database operations for the Bucketlist entity
type BucketlistRepository struct {
	db *gorm.DB
}

func NewBucketlistRepository(db *gorm.DB) *BucketlistRepository {
	return &BucketlistRepository{
		db: db,
	}
}

func (r *BucketlistRepository) Create(bucketlist *entity.Bucketlist) error {
	if bucketlist == nil {
		return errors.New("bucketlist cannot be nil")
	}
	return r.db.Create(bucketlist).Error
}

// FindByIDAndCreator is the ownership guard: a bucketlist that exists
// but belongs to someone else is reported exactly like a missing one.
func (r *BucketlistRepository) FindByIDAndCreator(id, creatorID uint) (*entity.Bucketlist, error) {
	var bucketlist entity.Bucketlist
	err := r.db.Preload("Items").Where("id = ? AND creator_id = ?", id, creatorID).First(&bucketlist).Error
	if err != nil {
		return nil, err
	}
	return &bucketlist, nil
}

// ListByCreator returns the caller's bucketlists newest-first, with an
// optional contains-filter on name. Names are stored lower-cased, so
// lower-casing the query makes the match case-insensitive.
func (r *BucketlistRepository) ListByCreator(creatorID uint, query string) ([]entity.Bucketlist, error) {
	var bucketlists []entity.Bucketlist
	tx := r.db.Preload("Items").Where("creator_id = ?", creatorID)
	if query != "" {
		tx = tx.Where("name LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	err := tx.Order("id DESC").Find(&bucketlists).Error
	if err != nil {
		return nil, err
	}
	return bucketlists, nil
}

func (r *BucketlistRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Bucketlist{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BucketlistRepository) Save(bucketlist *entity.Bucketlist) error {
	if bucketlist == nil {
		return errors.New("bucketlist cannot be nil")
	}
	return r.db.Save(bucketlist).Error
}

func (r *BucketlistRepository) Delete(id uint) error {
	return r.db.Delete(&entity.Bucketlist{}, id).Error
}
