package database

import (
	"gorm.io/gorm"
)

// OrderByID orders rows by primary key, i.e. creation order.
func OrderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// HoldingToken restricts a users query to the owner of an active token.
func HoldingToken(token string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("EXISTS (SELECT 1 FROM user_tokens WHERE user_tokens.user_id = users.id AND user_tokens.token = ?)", token)
	}
}

// LikedBy restricts a userlikes query to edges from liker to likee.
func LikedBy(likerID, likeeID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND user_liked_id = ?", likerID, likeeID)
	}
}
