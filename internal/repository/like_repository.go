package repository

import (
	"context"

	"github.com/fidomax07/vetting-api/internal/database"
	"github.com/fidomax07/vetting-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLikeRepository is a GORM implementation of LikeRepository
type GormLikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &GormLikeRepository{db: db}
}

func (r *GormLikeRepository) Create(ctx context.Context, like *models.UserLike) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error
}

func (r *GormLikeRepository) Delete(ctx context.Context, likerID, likeeID uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Scopes(database.LikedBy(likerID, likeeID)).
		Delete(&models.UserLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormLikeRepository) Exists(ctx context.Context, likerID, likeeID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserLike{}).
		Scopes(database.LikedBy(likerID, likeeID)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormLikeRepository) ListReceived(ctx context.Context, userID uint64) ([]models.UserLike, error) {
	likes := []models.UserLike{}
	err := r.db.WithContext(ctx).
		Preload("Liker").
		Where("user_liked_id = ?", userID).
		Scopes(database.OrderByID).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *GormLikeRepository) ListGiven(ctx context.Context, userID uint64) ([]models.UserLike, error) {
	likes := []models.UserLike{}
	err := r.db.WithContext(ctx).
		Preload("Likee").
		Where("user_id = ?", userID).
		Scopes(database.OrderByID).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *GormLikeRepository) CountReceived(ctx context.Context, userID uint64) (int64, error) {
	return r.count(ctx, "user_liked_id = ?", userID)
}

func (r *GormLikeRepository) CountGiven(ctx context.Context, userID uint64) (int64, error) {
	return r.count(ctx, "user_id = ?", userID)
}

func (r *GormLikeRepository) count(ctx context.Context, query string, userID uint64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserLike{}).Where(query, userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type likeCountRow struct {
	UserLikedID uint64
	Total       int64
}

func (r *GormLikeRepository) CountReceivedByUser(ctx context.Context) (map[uint64]int64, error) {
	var rows []likeCountRow
	err := r.db.WithContext(ctx).
		Model(&models.UserLike{}).
		Select("user_liked_id, COUNT(*) AS total").
		Group("user_liked_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.UserLikedID] = row.Total
	}
	return counts, nil
}
