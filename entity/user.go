package entity

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"size:30;uniqueIndex;not null"`
	// Salted sha256 digest, never the plaintext.
	Password    string       `json:"-" gorm:"size:300;not null"`
	Bucketlists []Bucketlist `json:"bucketlists,omitempty" gorm:"foreignKey:CreatorID"`
}
