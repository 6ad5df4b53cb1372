package models

import "time"

// UserLike is a directed edge: UserID liked UserLikedID.
type UserLike struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"uniqueIndex:idx_userlikes_pair;not null" json:"user_id"`
	UserLikedID uint64    `gorm:"uniqueIndex:idx_userlikes_pair;index;not null" json:"user_liked_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Liker User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Likee User `gorm:"foreignKey:UserLikedID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserLike) TableName() string {
	return "userlikes"
}
