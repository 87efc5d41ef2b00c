package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Bucketlist names are unique across the whole store, not per user.
type Bucketlist struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"size:120;uniqueIndex;not null"`
	CreationDate     datatypes.Date `json:"creation_date" gorm:"not null"`
	ModificationDate datatypes.Date `json:"modification_date" gorm:"not null"`
	CreatorID        uint           `json:"creator_id" gorm:"not null;index"`
	Creator          *User          `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Items            []Item         `json:"items,omitempty" gorm:"foreignKey:BucketlistID;constraint:OnDelete:CASCADE"`
}

// Today returns the current date truncated to day granularity.
func Today() datatypes.Date {
	return datatypes.Date(time.Now())
}

// FormatDate renders a date column as YYYY-MM-DD for response payloads.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}
