package repository

import (
	"github.com/tnqbao/gau-bucketlist-service/infra"
	"gorm.io/gorm"
)

type Repository struct {
	UserRepo       *UserRepository
	BucketlistRepo *BucketlistRepository
	ItemRepo       *ItemRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = &Repository{
		UserRepo:       NewUserRepository(infra.Postgres.DB),
		BucketlistRepo: NewBucketlistRepository(infra.Postgres.DB),
		ItemRepo:       NewItemRepository(infra.Postgres.DB),
	}
	return repository
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

func (r *Repository) BeginTransaction(db *gorm.DB) *gorm.DB {
	return db.Begin()
}

func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return &Repository{
		UserRepo:       NewUserRepository(tx),
		BucketlistRepo: NewBucketlistRepository(tx),
		ItemRepo:       NewItemRepository(tx),
	}
}
