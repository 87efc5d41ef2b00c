package entity

import "gorm.io/datatypes"

type Item struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"size:120;uniqueIndex;not null"`
	CreationDate     datatypes.Date `json:"creation_date" gorm:"not null"`
	ModificationDate datatypes.Date `json:"modification_date" gorm:"not null"`
	Completed        bool           `json:"completed" gorm:"not null;default:false"`
	BucketlistID     uint           `json:"bucketlist_id" gorm:"not null;index"`
	Bucketlist       *Bucketlist    `json:"bucketlist,omitempty" gorm:"foreignKey:BucketlistID"`
}
